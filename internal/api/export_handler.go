package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"wtPoster/internal/api/middleware"
	"wtPoster/internal/editor"
	"wtPoster/internal/tasks"
)

// 单个会话的导出锁存活时长，Worker 完成后主动释放。
const exportLockTTL = 2 * time.Minute

// ExportHandler 负责把导出请求入队。
type ExportHandler struct {
	registry    *editor.Registry
	asynqClient *asynq.Client
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewExportHandler 构造 ExportHandler。
func NewExportHandler(registry *editor.Registry, asynqClient *asynq.Client, redisClient *redis.Client, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		registry:    registry,
		asynqClient: asynqClient,
		redisClient: redisClient,
		logger:      logger,
	}
}

type exportRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// ExportPoster 校验档位、抢占会话级导出锁后入队，立即返回 202。
// 同一会话同一时刻只允许一个导出在途。
func (h *ExportHandler) ExportPoster(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	tier := tasks.ExportTier(req.Tier)
	if !tier.Valid() {
		BadRequest(c, fmt.Sprintf("unknown export tier %q", req.Tier))
		return
	}

	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if _, ok := h.registry.Get(sessionID); !ok {
		NotFound(c, "session not found")
		return
	}

	ctx := c.Request.Context()
	correlationID := middleware.GetCorrelationID(c)

	lockKey := tasks.ExportLockKey(sessionID)
	acquired, err := h.redisClient.SetNX(ctx, lockKey, correlationID, exportLockTTL).Result()
	if err != nil {
		h.logger.Error("acquire export lock", slog.Any("error", err))
		Internal(c, "failed to acquire export lock")
		return
	}
	if !acquired {
		Conflict(c, "an export for this session is already in progress")
		return
	}

	task, err := tasks.NewPosterExportTask(sessionID, string(tier), correlationID)
	if err != nil {
		_ = h.redisClient.Del(ctx, lockKey).Err()
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(3))
	if err != nil {
		_ = h.redisClient.Del(ctx, lockKey).Err()
		h.logger.Error("enqueue export task", slog.Any("error", err))
		Internal(c, "failed to enqueue export")
		return
	}

	h.logger.Info("export task enqueued",
		slog.String("session_id", sessionID),
		slog.String("tier", string(tier)),
		slog.String("task_id", info.ID),
	)

	c.JSON(http.StatusAccepted, gin.H{
		"message": "export request accepted",
		"task_id": info.ID,
		"tier":    string(tier),
	})
}
