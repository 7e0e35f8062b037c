// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestTierLimiterKeysClientsSeparately(t *testing.T) {
	tl := newTierLimiter(rate.Every(time.Hour), 2)

	assert.True(t, tl.allow("buyer-a"))
	assert.True(t, tl.allow("buyer-a"))
	assert.False(t, tl.allow("buyer-a"))

	// A different client has its own bucket.
	assert.True(t, tl.allow("buyer-b"))
}

func TestRateLimitMiddlewareRejectsOverBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tl := newTierLimiter(rate.Every(time.Hour), 1)
	router := gin.New()
	router.GET("/ping", tl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}
