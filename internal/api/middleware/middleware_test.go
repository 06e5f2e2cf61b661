package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newMiddlewareRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"correlationId": GetCorrelationID(c)})
	})
	return router
}

func TestCorrelationIDGeneratedWhenMissing(t *testing.T) {
	router := newMiddlewareRouter(CorrelationIDMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if got := w.Header().Get("X-Correlation-ID"); got == "" {
		t.Fatal("response missing generated correlation id")
	}
}

func TestCorrelationIDEchoesCaller(t *testing.T) {
	router := newMiddlewareRouter(CorrelationIDMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Correlation-ID", "export-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Correlation-ID"); got != "export-42" {
		t.Fatalf("correlation id = %q, want caller's", got)
	}
}

func TestInternalSecretMiddleware(t *testing.T) {
	router := newMiddlewareRouter(InternalSecretMiddleware("s3cret"))

	// 无密钥头。
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header status = %d, want 401", w.Code)
	}

	// 错误密钥。
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Internal-Secret", "wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret status = %d, want 401", w.Code)
	}

	// 正确密钥。
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Internal-Secret", "s3cret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid secret status = %d, want 200", w.Code)
	}
}

func TestInternalSecretRequiresConfiguration(t *testing.T) {
	router := newMiddlewareRouter(InternalSecretMiddleware("  "))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Internal-Secret", "  ")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unconfigured secret status = %d, want 500", w.Code)
	}
}
