package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wtPoster/internal/editor"
	"wtPoster/internal/poster"
	"wtPoster/internal/render"
)

// DocumentHandler 负责文档快照、字段变更与版块编辑。
type DocumentHandler struct {
	registry *editor.Registry
	logger   *slog.Logger
}

// NewDocumentHandler 构造 DocumentHandler。
func NewDocumentHandler(registry *editor.Registry, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		registry: registry,
		logger:   logger,
	}
}

// controllerFromContext 按上下文中的 sessionID 取出控制器。
// 会话不存在（过期或被销毁）时写出 404 并返回 false。
func (h *DocumentHandler) controllerFromContext(c *gin.Context) (*editor.Controller, string, bool) {
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

// GetDocument 返回文档的完整快照。
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// GetPreview 把文档渲染成可编辑的 HTML 预览页。
func (h *DocumentHandler) GetPreview(c *gin.Context) {
	ctrl, sessionID, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	html, err := render.RenderHTML(ctrl.Snapshot(), sessionID)
	if err != nil {
		h.logger.Error("render preview", slog.Any("error", err))
		Internal(c, "failed to render preview")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

type setFieldRequest struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

// SetField 替换单个顶层字段，其余字段保持原样。
func (h *DocumentHandler) SetField(c *gin.Context) {
	var req setFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	if err := ctrl.Set(req.Field, req.Value); err != nil {
		BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

type changeLayoutRequest struct {
	Layout poster.Layout `json:"layout" binding:"required"`
}

// ChangeLayout 切换排版模板并重置各角色字号。
func (h *DocumentHandler) ChangeLayout(c *gin.Context) {
	var req changeLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	if err := ctrl.ChangeLayout(req.Layout); err != nil {
		BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

type updateStyleRequest struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

// UpdateStyle 更新指定角色样式中的单个字段。
func (h *DocumentHandler) UpdateStyle(c *gin.Context) {
	var req updateStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	role := poster.Role(c.Param("role"))
	if err := ctrl.UpdateStyle(role, req.Field, req.Value); err != nil {
		BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

type globalColorRequest struct {
	Color string `json:"color" binding:"required"`
}

// ApplyGlobalColor 把全部角色的颜色同时设为同一个值。
func (h *DocumentHandler) ApplyGlobalColor(c *gin.Context) {
	var req globalColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	ctrl.ApplyGlobalColor(req.Color)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// AddSection 在末尾追加一个带占位文案的新版块。
func (h *DocumentHandler) AddSection(c *gin.Context) {
	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	section := ctrl.AddSection()
	c.JSON(http.StatusCreated, section)
}

// RemoveSection 删除指定版块。
func (h *DocumentHandler) RemoveSection(c *gin.Context) {
	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	ctrl.RemoveSection(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type updateSectionRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UpdateSection 替换指定版块的标题或正文。
func (h *DocumentHandler) UpdateSection(c *gin.Context) {
	var req updateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctrl, _, ok := h.controllerFromContext(c)
	if !ok {
		return
	}

	if err := ctrl.UpdateSection(c.Param("id"), req.Field, req.Value); err != nil {
		BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// GetPresets 返回背景与字体目录，供侧边栏展示。
func (h *DocumentHandler) GetPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"backgrounds": poster.BgPresets,
		"fonts":       poster.FontFamilies,
	})
}

// GetPrintDocument 返回导出渲染所需的文档快照。
// 仅供 Worker 通过内部密钥访问。
func (h *DocumentHandler) GetPrintDocument(c *gin.Context) {
	sessionID := c.Param("sid")
	ctrl, ok := h.registry.Get(sessionID)
	if !ok {
		NotFound(c, "session not found")
		return
	}

	c.JSON(http.StatusOK, ctrl.Snapshot())
}
