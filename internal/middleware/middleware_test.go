package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"deeplink-generator/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentity(t *testing.T) {
	r := gin.New()
	r.Use(Identity("X-Forwarded-User", "Unknown User"))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, Author(c))
	})

	w := perform(r, "/me", map[string]string{"X-Forwarded-User": " Ada Lovelace "})
	assert.Equal(t, "Ada Lovelace", w.Body.String())

	w = perform(r, "/me", nil)
	assert.Equal(t, "Unknown User", w.Body.String())
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(&config.Limit{Enabled: true, Requests: 1, Burst: 2, SkipPaths: []string{"/health"}}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, "/x", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, "/x", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, "/x", nil).Code)

	// 跳过的路径不受限流影响
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, perform(r, "/health", nil).Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(&config.Limit{Enabled: false}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, perform(r, "/x", nil).Code)
	}
}

func TestGinZapLoggerAndRecovery(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	r := gin.New()
	r.Use(GinZapRecovery(logger, false), GinZapLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	assert.Equal(t, http.StatusOK, perform(r, "/ok", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, perform(r, "/panic", nil).Code)

	assert.Equal(t, 1, logs.FilterMessage("请求完成").Len())
	assert.Equal(t, 1, logs.FilterMessage("请求处理发生 panic").Len())
}
