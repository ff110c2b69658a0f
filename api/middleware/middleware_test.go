package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"roastedin/api/middleware"
	"roastedin/trace"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestTrace())
	r.Use(middleware.RequestLoggingMiddleware())
	return r
}

func TestRequestTraceGeneratesIDs(t *testing.T) {
	r := newTestEngine()
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "0", w.Header().Get("X-Span-Id"))
}

func TestRequestTraceReusesInboundID(t *testing.T) {
	r := newTestEngine()
	r.GET("/ping", func(c *gin.Context) {
		assert.Equal(t, "req-abc", trace.RequestIDFromContext(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "req-abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-abc", w.Header().Get("X-Request-Id"))
}

// 핸들러 안에서 outbound 호출(스크레이프, LLM)마다 span 이 1,2,... 로 증가한다
func TestSpanSequenceAcrossOutboundCalls(t *testing.T) {
	r := newTestEngine()
	r.GET("/work", func(c *gin.Context) {
		ctx := c.Request.Context()

		_, first := trace.NextSpanID(ctx)
		_, second := trace.NextSpanID(ctx)
		assert.Equal(t, "1", first)
		assert.Equal(t, "2", second)
		assert.Equal(t, "2", trace.CurrentSpanID(ctx))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/work", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
