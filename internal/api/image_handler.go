package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"wtPoster/internal/ai"
	"wtPoster/internal/editor"
	"wtPoster/internal/errcode"
	"wtPoster/internal/poster"
)

// 单个上传文件的大小上限。data URI 直接进文档，放任意大会拖垮渲染。
const maxUploadBytes = 15 << 20

// ImageEditor 抽象图片编辑服务，便于测试注入假实现。
type ImageEditor interface {
	EditImage(ctx context.Context, imageDataURI, instruction string) (string, error)
}

// ImageHandler 负责图片的上传、排序、清空与 AI 编辑。
type ImageHandler struct {
	registry    *editor.Registry
	imageEditor ImageEditor
	redisClient *redis.Client
	logger      *slog.Logger
	clamdAddr   string
	dailyLimit  int
}

// NewImageHandler 构造 ImageHandler。clamdAddr 为空时跳过病毒扫描。
func NewImageHandler(
	registry *editor.Registry,
	imageEditor ImageEditor,
	redisClient *redis.Client,
	logger *slog.Logger,
	clamdAddr string,
	dailyLimit int,
) *ImageHandler {
	return &ImageHandler{
		registry:    registry,
		imageEditor: imageEditor,
		redisClient: redisClient,
		logger:      logger,
		clamdAddr:   clamdAddr,
		dailyLimit:  dailyLimit,
	}
}

func (h *ImageHandler) controllerFromContext(c *gin.Context) (*editor.Controller, string, bool) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, "", false
	}

	ctrl, ok := h.registry.Get(sessionID)
	if !ok {
		NotFound(c, "session not found")
		return nil, "", false
	}
	return ctrl, sessionID, true
}

type uploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadImages 处理多文件上传：并行解码，按提交顺序追加。
// 单个文件失败只记入 failed 列表，不影响其余文件。
func (h *ImageHandler) UploadImages(c *gin.Context) {
	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		BadRequest(c, "invalid multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		BadRequest(c, "missing files")
		return
	}

	type result struct {
		img poster.Image
		err error
	}
	results := make([]result, len(files))

	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			img, err := h.ingestFile(file)
			results[i] = result{img: img, err: err}
			return nil
		})
	}
	_ = g.Wait()

	added := make([]poster.Image, 0, len(files))
	failed := make([]uploadFailure, 0)
	for i, r := range results {
		if r.err != nil {
			h.logger.Warn("upload file rejected",
				slog.String("filename", files[i].Filename),
				slog.Any("error", r.err),
			)
			failed = append(failed, uploadFailure{Filename: files[i].Filename, Error: r.err.Error()})
			continue
		}
		ctrl.AppendImage(r.img)
		added = append(added, r.img)
	}

	status := http.StatusCreated
	if len(added) == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"added": added, "failed": failed})
}

// ingestFile 读取、扫描并编码单个上传文件。
func (h *ImageHandler) ingestFile(file *multipart.FileHeader) (poster.Image, error) {
	if file.Size > maxUploadBytes {
		return poster.Image{}, fmt.Errorf("file exceeds %d bytes", maxUploadBytes)
	}

	reader, err := file.Open()
	if err != nil {
		return poster.Image{}, fmt.Errorf("open file: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxUploadBytes+1))
	if err != nil {
		return poster.Image{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) > maxUploadBytes {
		return poster.Image{}, fmt.Errorf("file exceeds %d bytes", maxUploadBytes)
	}

	if err := h.scanBytes(data); err != nil {
		return poster.Image{}, err
	}

	return editor.EncodeImage(data)
}

// scanBytes 在配置了 clamd 时对上传内容做病毒扫描。
func (h *ImageHandler) scanBytes(data []byte) error {
	if strings.TrimSpace(h.clamdAddr) == "" {
		return nil
	}

	clamdClient := clamd.NewClamd(h.clamdAddr)
	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(bytes.NewReader(data), abortChan)
	if err != nil {
		return fmt.Errorf("scan file: %w", err)
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			return errors.New("malicious file detected")
		}
	}
	return nil
}

// RemoveImage 删除指定图片。
func (h *ImageHandler) RemoveImage(c *gin.Context) {
	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	ctrl.RemoveImage(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type reorderRequest struct {
	DraggedID string `json:"draggedId" binding:"required"`
	TargetID  string `json:"targetId" binding:"required"`
}

// ReorderImages 把被拖拽图片移动到目标图片之前。
func (h *ImageHandler) ReorderImages(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	ctrl.ReorderImages(req.DraggedID, req.TargetID)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// ClearImages 两段式清空：首次调用进入待确认状态，窗口内再次调用才清空。
func (h *ImageHandler) ClearImages(c *gin.Context) {
	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	cleared := ctrl.ClearImages()
	resp := gin.H{"cleared": cleared}
	if !cleared {
		resp["message"] = "再次点击以确认清空全部图片"
	}
	c.JSON(http.StatusOK, resp)
}

// SetBackground 把上传的图片设为背景。
func (h *ImageHandler) SetBackground(c *gin.Context) {
	h.setSlotImage(c, func(ctrl *editor.Controller, dataURI string) {
		ctrl.SetBackgroundImage(dataURI)
	})
}

// SetQrCode 把上传的图片设为二维码。
func (h *ImageHandler) SetQrCode(c *gin.Context) {
	h.setSlotImage(c, func(ctrl *editor.Controller, dataURI string) {
		ctrl.SetQrImage(dataURI)
	})
}

// setSlotImage 处理背景/二维码这类单槽位图片上传。
func (h *ImageHandler) setSlotImage(c *gin.Context, apply func(*editor.Controller, string)) {
	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		BadRequest(c, "invalid multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		BadRequest(c, "missing files")
		return
	}

	img, err := h.ingestFile(files[0])
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	apply(ctrl, img.URL)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

type aiEditRequest struct {
	Instruction string `json:"instruction" binding:"required"`
}

// AIEditImage 把指定图片交给生成服务按指令编辑，成功后原位替换 URL。
// 任何失败都不触碰文档。
func (h *ImageHandler) AIEditImage(c *gin.Context) {
	var req aiEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Instruction) == "" {
		BadRequest(c, "instruction must not be empty")
		return
	}

	ctrl, sessionID, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	imageID := c.Param("id")
	img, found := ctrl.ImageByID(imageID)
	if !found {
		NotFound(c, "image not found")
		return
	}

	ctx := c.Request.Context()
	if h.dailyLimit > 0 && h.redisClient != nil {
		key := fmt.Sprintf("ai_edit_daily:%s:%s", sessionID, time.Now().Format("20060102"))
		count, err := bumpQuota(ctx, h.redisClient, key, 24*time.Hour)
		if err != nil {
			h.logger.Error("ai edit rate counter", slog.Any("error", err))
			Internal(c, "failed to check rate limit")
			return
		}
		if count > int64(h.dailyLimit) {
			TooMany(c, "daily ai edit quota exceeded")
			return
		}
	}

	edited, err := h.imageEditor.EditImage(ctx, img.URL, req.Instruction)
	if err != nil {
		if errors.Is(err, ai.ErrNoImage) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"code":  errcode.AIEditNoImage,
				"error": "generation returned no image",
			})
			return
		}
		h.logger.Error("ai edit image",
			slog.String("image_id", imageID),
			slog.Any("error", err),
		)
		Error(c, http.StatusBadGateway, "image edit service failed")
		return
	}

	if !ctrl.ReplaceImageURL(imageID, edited) {
		// 编辑期间图片被删了，放弃回写。
		NotFound(c, "image not found")
		return
	}

	updated, _ := ctrl.ImageByID(imageID)
	c.JSON(http.StatusOK, updated)
}
