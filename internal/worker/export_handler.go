package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"wtPoster/internal/errcode"
	"wtPoster/internal/poster"
	"wtPoster/internal/render"
	"wtPoster/internal/storage"
	"wtPoster/internal/tasks"
)

// ExportTaskHandler 负责消费海报导出任务。
type ExportTaskHandler struct {
	storage            *storage.Client
	redisClient        *redis.Client
	logger             *slog.Logger
	internalSecret     string
	internalAPIBaseURL string
	settleDelay        time.Duration
	presignTTL         time.Duration
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
	internalSecret string,
	internalAPIBaseURL string,
	settleDelay time.Duration,
	presignTTL time.Duration,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		storage:            storageClient,
		redisClient:        redisClient,
		logger:             logger,
		internalSecret:     internalSecret,
		internalAPIBaseURL: strings.TrimRight(strings.TrimSpace(internalAPIBaseURL), "/"),
		settleDelay:        settleDelay,
		presignTTL:         presignTTL,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PosterExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("session_id", payload.SessionID),
		slog.String("tier", payload.Tier),
	)
	log.Info("Starting poster export task...")

	tier := tasks.ExportTier(payload.Tier)
	if !tier.Valid() {
		log.Error("unknown export tier, dropping task")
		h.releaseLock(ctx, payload.SessionID, log)
		return nil
	}

	// 失败到最后一次重试时释放锁并推送错误通知，避免会话被永久锁死。
	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		h.releaseLock(ctx, payload.SessionID, log)
		notify := ExportNotifyMessage{
			Status:        "error",
			SessionID:     payload.SessionID,
			Tier:          payload.Tier,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishExportNotify(ctx, payload.SessionID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	printData, err := fetchPrintDocument(ctx, h.internalAPIBaseURL, payload.SessionID, h.internalSecret, payload.CorrelationID)
	if err != nil {
		if errors.Is(err, errSessionGone) {
			log.Warn("session gone, skipping export")
			h.releaseLock(ctx, payload.SessionID, log)
			return nil
		}
		log.Error("fetch print document failed", slog.Any("error", err))
		return err
	}

	var doc poster.Document
	if err := json.Unmarshal(printData, &doc); err != nil {
		log.Error("decode print document failed", slog.Any("error", err))
		return err
	}

	html, err := render.RenderHTML(&doc, "")
	if err != nil {
		log.Error("render poster html failed", slog.Any("error", err))
		return err
	}

	pngBytes, err := renderPosterImage(log, html, tier.Scale(), h.settleDelay)
	if err != nil {
		log.Error("rasterize poster failed", slog.Any("error", err))
		return err
	}

	fileName := exportFileName(doc.Title, tier, time.Now())
	objectName := fmt.Sprintf("exports/%s/%s", payload.SessionID, fileName)
	reader := bytes.NewReader(pngBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, reader, int64(len(pngBytes)), "image/png"); err != nil {
		if storage.IsNoSuchBucket(err) {
			log.Error("export bucket missing", slog.Any("error", err))
		} else {
			log.Error("upload poster to minio failed", slog.Any("error", err))
		}
		return err
	}

	downloadURL, err := h.storage.GeneratePresignedURL(ctx, objectName, h.presignTTL)
	if err != nil {
		log.Error("generate download link failed", slog.Any("error", err))
		return err
	}

	h.cleanupPreviousExport(ctx, payload.SessionID, objectName, log)
	h.releaseLock(ctx, payload.SessionID, log)

	notify := ExportNotifyMessage{
		Status:        "completed",
		SessionID:     payload.SessionID,
		Tier:          payload.Tier,
		FileName:      fileName,
		DownloadURL:   downloadURL,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if err := h.publishExportNotify(ctx, payload.SessionID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("Poster export task completed successfully.", slog.String("object", objectName))
	return nil
}

// 最近导出记录的保留时间，需长于预签名链接有效期，避免误删仍可下载的对象。
const lastExportRecordTTL = 48 * time.Hour

// cleanupPreviousExport 把会话最近导出记录替换为新对象键，并删除被取代的旧产物。
// 任何一步失败只记日志：清理是尽力而为，不应影响本次导出结果。
func (h *ExportTaskHandler) cleanupPreviousExport(ctx context.Context, sessionID, objectName string, log *slog.Logger) {
	key := tasks.ExportLastObjectKey(sessionID)

	previous, err := h.redisClient.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Warn("read previous export record failed", slog.Any("error", err))
		previous = ""
	}

	if err := h.redisClient.Set(ctx, key, objectName, lastExportRecordTTL).Err(); err != nil {
		log.Warn("record export object failed", slog.Any("error", err))
	}

	if previous == "" || previous == objectName {
		return
	}
	if err := h.storage.DeleteObject(ctx, previous); err != nil {
		log.Warn("delete superseded export failed", slog.String("object", previous), slog.Any("error", err))
	}
}

func (h *ExportTaskHandler) releaseLock(ctx context.Context, sessionID string, log *slog.Logger) {
	if err := h.redisClient.Del(ctx, tasks.ExportLockKey(sessionID)).Err(); err != nil {
		log.Warn("release export lock failed", slog.Any("error", err))
	}
}

func (h *ExportTaskHandler) publishExportNotify(ctx context.Context, sessionID string, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := tasks.NotifyChannel(sessionID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}

// exportFileName 生成下载文件名：{标题}_{档位标签}_{YYYYMMDD}.png。
// 标题里的路径分隔符等字符替换为下划线，避免污染对象键。
func exportFileName(title string, tier tasks.ExportTier, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.png", sanitizeTitle(title), tier.Label(), now.Format("20060102"))
}

func sanitizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "poster"
	}
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"\n", "_",
		"\r", "_",
		" ", "_",
	)
	return replacer.Replace(title)
}
