package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wtPoster/internal/editor"
	"wtPoster/internal/session"
)

// SessionHandler 负责编辑会话的创建与销毁。
type SessionHandler struct {
	registry *editor.Registry
	sessions *session.Service
	logger   *slog.Logger
}

// NewSessionHandler 构造 SessionHandler。
func NewSessionHandler(registry *editor.Registry, sessions *session.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		sessions: sessions,
		logger:   logger,
	}
}

// CreateSession 新建一个编辑会话：播种默认文档并签发会话令牌。
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sessionID, _ := h.registry.Create()

	token, err := h.sessions.IssueToken(sessionID)
	if err != nil {
		h.logger.Error("issue session token", slog.Any("error", err))
		h.registry.Delete(sessionID)
		Internal(c, "failed to issue session token")
		return
	}

	h.logger.Info("session created",
		slog.String("session_id", sessionID),
		slog.Int("active_sessions", h.registry.Len()),
	)

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": sessionID,
		"token":     token,
	})
}

// DeleteSession 立即销毁当前会话及其文档。
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	h.registry.Delete(sessionID)
	c.Status(http.StatusNoContent)
}
