package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wtPoster/internal/session"
)

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// SessionMiddleware 校验会话令牌并将 sessionID 注入上下文。
// 令牌优先取 Authorization: Bearer，其次取 query token（预览页跳转场景）。
func SessionMiddleware(sessions *session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := ""
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				abortUnauthorized(c)
				return
			}
			rawToken = parts[1]
		} else {
			rawToken = c.Query("token")
		}

		if strings.TrimSpace(rawToken) == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := sessions.ValidateToken(rawToken)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("sessionID", claims.SessionID)
		c.Next()
	}
}
