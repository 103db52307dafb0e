package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/eventum-app/eventum/internal/pkg/logger"
)

// RateLimiter limits public endpoints per client IP, with counters shared
// across instances through Redis. rate uses the limiter format, e.g. "100-M".
func RateLimiter(client *redis.Client, rate string) (gin.HandlerFunc, error) {
	parsedRate, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	store, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "eventum:ratelimit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	logger.Info().Str("rate", rate).Msg("Rate limiting enabled")
	return ginlimiter.NewMiddleware(limiter.New(store, parsedRate)), nil
}
