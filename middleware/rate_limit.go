package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/zerofake/zerofake/config"
	"github.com/zerofake/zerofake/utils"
)

// RateLimitMiddleware applies a per-IP fixed-window limiter whose counters
// live in Redis with TTL eviction, so limits hold across instances and
// restarts. When Redis is unreachable it degrades to a per-process token
// bucket rather than failing open entirely.
func RateLimitMiddleware() gin.HandlerFunc {
	cfg := config.Get()
	limit := cfg.RateLimitPerMinute
	if limit < 1 {
		limit = 1
	}

	return func(ctx *gin.Context) {
		ip := ctx.ClientIP()
		allowed, ok := allowRedis(ip, limit)
		if !ok {
			allowed = allowLocal(ip, limit)
		}
		if !allowed {
			utils.Error(ctx, 429, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// allowRedis counts requests in a one-minute window keyed by IP. The second
// return value is false when Redis could not answer.
func allowRedis(ip string, limit int) (allowed, ok bool) {
	rc := utils.GetRedis()
	if rc == nil {
		return false, false
	}
	rctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	key := "ratelimit:" + ip + ":" + time.Now().Format("200601021504")
	n, err := rc.Incr(rctx, key).Result()
	if err != nil {
		return false, false
	}
	if n == 1 {
		// first hit in the window owns the TTL
		_ = rc.Expire(rctx, key, time.Minute).Err()
	}
	return n <= int64(limit), true
}

// In-memory fallback: classic token buckets per IP with idle eviction.
type localLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

var (
	localLimiters   = map[string]*localLimiter{}
	localLimitersMu sync.Mutex
)

func allowLocal(ip string, limit int) bool {
	localLimitersMu.Lock()
	defer localLimitersMu.Unlock()

	now := time.Now()
	for key, l := range localLimiters {
		if now.After(l.expires) {
			delete(localLimiters, key)
		}
	}

	l, ok := localLimiters[ip]
	if !ok {
		burst := limit / 2
		if burst < 1 {
			burst = 1
		}
		l = &localLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(limit)), burst)}
		localLimiters[ip] = l
	}
	l.expires = now.Add(5 * time.Minute)
	return l.limiter.Allow()
}
