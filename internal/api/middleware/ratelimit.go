package middleware

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitPrefix = "rate_limiter:bookings"

// RateLimit ограничивает частоту запросов на участника (X-User-ID), иначе по IP.
// rate в формате limiter: "10-M", "100-H". rdb == nil - хранилище в памяти процесса.
func RateLimit(rate string, rdb *redis.Client) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	var store limiter.Store
	if rdb != nil {
		store, err = redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
			Prefix:   rateLimitPrefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis rate limit store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: parsed.Period,
		})
	}

	instance := limiter.New(store, parsed)
	mw := stdlib.NewMiddleware(instance, stdlib.WithKeyGetter(func(r *http.Request) string {
		if userID := r.Header.Get(UserIDHeader); userID != "" {
			return "user:" + userID
		}
		return "ip:" + instance.GetIPKey(r)
	}))

	return mw.Handler, nil
}
