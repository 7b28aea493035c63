package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"bazaar/shared"
	"bazaar/shared/constant"
	"bazaar/transport/http/response"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownAgent      = "unknown"
)

const defaultLocalClients = 10000

// localBuckets throttle per process while redis is unreachable. At most size clients are
// tracked and a bucket is dropped one window after it was created.
type localBuckets struct {
	mu      sync.Mutex
	buckets *expirable.LRU[string, *rate.Limiter]
}

func newLocalBuckets(size, windowSecs int) *localBuckets {
	if size <= 0 {
		size = defaultLocalClients
	}

	ttl := time.Duration(max(1, windowSecs)) * time.Second

	return &localBuckets{buckets: expirable.NewLRU[string, *rate.Limiter](size, nil, ttl)}
}

func (l *localBuckets) limiter(key string, maxReqs, windowSecs int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.buckets.Get(key); ok {
		return lim
	}

	every := rate.Limit(float64(maxReqs) / float64(max(1, windowSecs)))
	lim := rate.NewLimiter(every, max(1, maxReqs))
	l.buckets.Add(key, lim)

	return lim
}

// RateLimit allows MaxRequests per client and user agent in each fixed window, counted in redis.
// When redis fails the process falls back to a local token bucket of the same rate.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			count, err := a.cache.Increment(r.Context(), cacheKey, windowSecs)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter cache unavailable, limiting locally")

				if !a.local.limiter(cacheKey, maxReqs, windowSecs).Allow() {
					response.WithRequestLimitExceeded(w)

					return
				}

				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-int(count))))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			if int(count) > maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return unknownAgent
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket address.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
