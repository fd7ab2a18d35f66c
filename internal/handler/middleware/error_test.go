//go:build unit

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"applytrack/internal/handler/httperr"
	"applytrack/internal/handler/middleware"
	"applytrack/internal/pkg/config"
	"applytrack/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	engine := gin.New()
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.LoggingMiddleware(logger, config.LogConfig{TimeZone: "UTC"}))
	engine.Use(middleware.ErrorHandler(logger))

	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/boom", func(*gin.Context) { panic("kaboom") })
	engine.GET("/db", func(c *gin.Context) {
		httperr.AbortWithClassified(c, errs.Mark(errs.New("conn reset"), errs.ErrDatabaseOperationFailed))
	})
	engine.GET("/missing", func(c *gin.Context) {
		httperr.AbortWithClassified(c, errs.Wrap(errs.ErrRuleNotFound, "lookup"))
	})
	engine.GET("/silent", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	return engine
}

func get(engine *gin.Engine, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(&buf)

	t.Run("generated when absent", func(t *testing.T) {
		w := get(engine, "/health", nil)
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	})

	t.Run("echoed when supplied", func(t *testing.T) {
		w := get(engine, "/health", http.Header{middleware.RequestIDHeader: {"req-42"}})
		assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, buf.String(), "request_id=req-42")
	})

	t.Run("header name is case-insensitive", func(t *testing.T) {
		w := get(engine, "/health", http.Header{"x-request-id": {"req-43"}})
		assert.Equal(t, "req-43", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("replaced when not printable", func(t *testing.T) {
		w := get(engine, "/health", http.Header{middleware.RequestIDHeader: {"bad id\x01"}})
		assert.NotEqual(t, "bad id\x01", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("replaced when too long", func(t *testing.T) {
		w := get(engine, "/health", http.Header{middleware.RequestIDHeader: {strings.Repeat("a", 200)}})
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	})
}

func TestErrorHandler(t *testing.T) {
	t.Run("server errors are logged with the cause and sanitized", func(t *testing.T) {
		var buf bytes.Buffer
		w := get(newTestEngine(&buf), "/db", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
		assert.NotContains(t, w.Body.String(), "conn reset")
		assert.Contains(t, buf.String(), "request failed")
		assert.Contains(t, buf.String(), "conn reset")
	})

	t.Run("client errors are not logged as failures", func(t *testing.T) {
		var buf bytes.Buffer
		w := get(newTestEngine(&buf), "/missing", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Rule not found")
		assert.NotContains(t, buf.String(), "request failed")
		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("bare status without body is kept", func(t *testing.T) {
		var buf bytes.Buffer
		w := get(newTestEngine(&buf), "/silent", nil)
		assert.Equal(t, http.StatusTeapot, w.Code)
	})
}

func TestCustomRecovery(t *testing.T) {
	var buf bytes.Buffer
	w := get(newTestEngine(&buf), "/boom", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.Contains(t, buf.String(), "recovered from panic")
	assert.Contains(t, buf.String(), "kaboom")
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.CORSConfig{
		AllowOrigins:  []string{"http://localhost:3000"},
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "location"},
		MaxAge:        time.Hour,
	}
	engine := gin.New()
	engine.Use(middleware.NewCORSMiddleware(cfg, slog.New(slog.DiscardHandler)))
	engine.GET("/api/jobs/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(engine, "/api/jobs/x", http.Header{"Origin": {"http://localhost:3000"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	exposed := strings.ToLower(w.Header().Get("Access-Control-Expose-Headers"))
	assert.Contains(t, exposed, "x-request-id")
	assert.Equal(t, 1, strings.Count(exposed, "location"))
}
