// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/atelierhub/marketplace-backend/internal/utils"
)

// Token buckets per client. Authenticated clients are keyed by user id so a
// shared storefront connection (market-hall wifi, an association's office)
// does not starve individual buyers; anonymous traffic falls back to the
// client IP.
type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type tierLimiter struct {
	clients map[string]*clientBucket
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
}

const clientIdleTTL = 5 * time.Minute

func newTierLimiter(limit rate.Limit, burst int) *tierLimiter {
	tl := &tierLimiter{
		clients: make(map[string]*clientBucket),
		limit:   limit,
		burst:   burst,
	}
	go tl.prune()
	return tl
}

// prune drops buckets idle past clientIdleTTL so the map does not grow with
// every visitor the storefront ever saw.
func (tl *tierLimiter) prune() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		tl.mu.Lock()
		for key, bucket := range tl.clients {
			if time.Since(bucket.lastSeen) > clientIdleTTL {
				delete(tl.clients, key)
			}
		}
		tl.mu.Unlock()
	}
}

func (tl *tierLimiter) allow(key string) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	bucket, ok := tl.clients[key]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(tl.limit, tl.burst)}
		tl.clients[key] = bucket
	}
	bucket.lastSeen = time.Now()
	return bucket.limiter.Allow()
}

func (tl *tierLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := utils.GetUserIDFromContext(c); ok {
			key = userID
		}

		if !tl.allow(key) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED",
				"Too many requests, please slow down", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Browsing the catalog is bursty; credential guessing and image uploads are
// deliberately tight.
var (
	browseLimiter = newTierLimiter(rate.Every(50*time.Millisecond), 20)
	authLimiter   = newTierLimiter(rate.Every(12*time.Second), 5)
	uploadLimiter = newTierLimiter(rate.Every(6*time.Second), 10)
)

func GeneralRateLimit() gin.HandlerFunc {
	return browseLimiter.Middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.Middleware()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.Middleware()
}
