package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/tienda-mx/checkout-api/internal/common"
)

// New builds a request limiter from a formatted rate such as "120-M",
// backed by redis so the limit holds across instances.
func New(client *redis.Client, formatted string) (Handler, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return Handler{}, err
	}
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "checkout:limiter",
	})
	if err != nil {
		return Handler{}, err
	}
	return Handler{Limiter: limiter.New(store, rate)}, nil
}

// Handler enforces a per-client-IP rate limit before delegating to the next
// handler. Store failures fail open; throttling must not take the API down
// with it.
type Handler struct {
	Limiter *limiter.Limiter
	OnError func(error)
}

// Middleware implements the http.Handler middleware interface.
func (h Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		lctx, err := h.Limiter.Get(r.Context(), common.ClientIP(r))
		if err != nil {
			if h.OnError != nil {
				h.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}

		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		headers.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			common.JSONError(w, http.StatusTooManyRequests, common.CodeRateLimited, "rate limit exceeded", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
