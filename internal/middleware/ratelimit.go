package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig describes a fixed-window limit kept in redis
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	KeyPrefix         string
}

// clientKey identifies the caller for rate limiting. Authenticated
// admins are tracked by account so a shared office IP does not lump
// them together; everyone else is tracked by remote address.
func clientKey(r *http.Request, prefix string) string {
	if adminID, ok := GetAdminID(r.Context()); ok {
		return prefix + ":admin:" + strconv.FormatInt(adminID, 10)
	}
	return prefix + ":" + r.RemoteAddr
}

// RateLimitMiddleware enforces a fixed-window request budget backed by
// a redis counter. The counter INCR is atomic, so concurrent requests
// across replicas share one budget. When redis is unreachable the
// request is let through; the public forms matter more than the limit.
func RateLimitMiddleware(redisClient *redis.Client, config RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := clientKey(r, config.KeyPrefix)

			count, err := redisClient.Incr(ctx, key).Result()
			if err != nil {
				logger.Error("Rate limit counter unavailable", zap.Error(err), zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				redisClient.Expire(ctx, key, config.Window)
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))

			if count > int64(config.RequestsPerWindow) {
				ttl, err := redisClient.TTL(ctx, key).Result()
				if err != nil || ttl < 0 {
					ttl = config.Window
				}

				logger.Warn("Rate limit exceeded",
					zap.String("key", key),
					zap.Int64("count", count),
					zap.Int("limit", config.RequestsPerWindow),
				)

				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
				w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
				RespondWithError(w, http.StatusTooManyRequests, "too many requests, slow down")
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(config.RequestsPerWindow-int(count)))
			next.ServeHTTP(w, r)
		})
	}
}
