package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newMiddlewareRouter(cfg MiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware(cfg))
	r.GET("/v1/invoices", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestGinMiddlewareAssignsRequestID(t *testing.T) {
	r := newMiddlewareRouter(MiddlewareConfig{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/invoices", nil))

	if got := w.Header().Get("X-Request-Id"); len(got) != 32 {
		t.Fatalf("expected generated 32-char request id, got %q", got)
	}
}

func TestGinMiddlewareKeepsCallerRequestID(t *testing.T) {
	r := newMiddlewareRouter(MiddlewareConfig{})

	req := httptest.NewRequest(http.MethodGet, "/v1/invoices", nil)
	req.Header.Set("X-Request-Id", "caller-supplied-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "caller-supplied-id" {
		t.Fatalf("X-Request-Id = %q", got)
	}
}

func TestGinMiddlewareSkipsProbePaths(t *testing.T) {
	logs := captureGlobal(t)
	r := newMiddlewareRouter(MiddlewareConfig{SkipPaths: []string{"/healthz"}})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if got := len(logs.All()); got != 0 {
		t.Fatalf("expected no access log for skipped path, got %d entries", got)
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/invoices", nil))
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 access log entry, got %d", len(entries))
	}
	if status := entries[0].ContextMap()["status"]; status != int64(http.StatusOK) {
		t.Fatalf("status field = %v", status)
	}
}
