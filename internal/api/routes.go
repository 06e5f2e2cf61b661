package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"wtPoster/internal/api/middleware"
	"wtPoster/internal/config"
	"wtPoster/internal/editor"
	"wtPoster/internal/session"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	registry *editor.Registry,
	sessions *session.Service,
	imageEditor ImageEditor,
	asynqClient *asynq.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
) {
	sessionHandler := NewSessionHandler(registry, sessions, logger)
	documentHandler := NewDocumentHandler(registry, logger)
	imageHandler := NewImageHandler(registry, imageEditor, redisClient, logger, cfg.Clamd.Addr, cfg.Gemini.DailyPerUser)
	exportHandler := NewExportHandler(registry, asynqClient, redisClient, logger)
	wsHandler := NewWsHandler(redisClient, sessions, logger, nil)
	sessionMiddleware := middleware.SessionMiddleware(sessions)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)
		v1.GET("/presets", documentHandler.GetPresets)

		v1.POST("/sessions", sessionHandler.CreateSession)
		v1.DELETE("/sessions", sessionMiddleware, sessionHandler.DeleteSession)

		posterGroup := v1.Group("/posters")
		posterGroup.Use(sessionMiddleware)
		{
			posterGroup.GET("", documentHandler.GetDocument)
			posterGroup.GET("/preview", documentHandler.GetPreview)
			posterGroup.PATCH("", documentHandler.SetField)
			posterGroup.PUT("/layout", documentHandler.ChangeLayout)
			posterGroup.PUT("/styles/:role", documentHandler.UpdateStyle)
			posterGroup.POST("/styles/global-color", documentHandler.ApplyGlobalColor)

			posterGroup.POST("/sections", documentHandler.AddSection)
			posterGroup.DELETE("/sections/:id", documentHandler.RemoveSection)
			posterGroup.PATCH("/sections/:id", documentHandler.UpdateSection)

			posterGroup.POST("/images", imageHandler.UploadImages)
			posterGroup.DELETE("/images", imageHandler.ClearImages)
			posterGroup.DELETE("/images/:id", imageHandler.RemoveImage)
			posterGroup.PUT("/images/order", imageHandler.ReorderImages)
			posterGroup.POST("/images/:id/ai-edit", imageHandler.AIEditImage)
			posterGroup.POST("/background", imageHandler.SetBackground)
			posterGroup.POST("/qrcode", imageHandler.SetQrCode)

			posterGroup.POST("/export", exportHandler.ExportPoster)
		}

		internalGroup := v1.Group("/internal")
		internalGroup.Use(middleware.InternalSecretMiddleware(cfg.API.InternalSecret))
		{
			internalGroup.GET("/posters/:sid/print", documentHandler.GetPrintDocument)
		}
	}
}
