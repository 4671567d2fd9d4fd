package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/Ars145/ZarubaProfile-sub000/internal/config"
	"github.com/Ars145/ZarubaProfile-sub000/internal/constants"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client key. Idle buckets expire.
type RateLimiter struct {
	limiters *ttlcache.Cache[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
	keyFunc  func(r *http.Request) string
}

func NewRateLimiter(rps, burst int, keyFunc func(r *http.Request) string) *RateLimiter {
	limiters := ttlcache.New[string, *rate.Limiter](
		ttlcache.WithTTL[string, *rate.Limiter](constants.RateLimiterIdleTTL),
	)
	go limiters.Start()

	if keyFunc == nil {
		keyFunc = IPKeyFunc
	}
	return &RateLimiter{
		limiters: limiters,
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFunc:  keyFunc,
	}
}

func NewRateLimiterFromConfig(cfg *config.Config) *RateLimiter {
	return NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, IPKeyFunc)
}

func (l *RateLimiter) Allow(key string) bool {
	item, _ := l.limiters.GetOrSet(key, rate.NewLimiter(l.rps, l.burst))
	return item.Value().Allow()
}

func (l *RateLimiter) Stop() {
	l.limiters.Stop()
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.keyFunc(r)
		if !l.Allow(key) {
			zerolog.Ctx(r.Context()).Warn().Str("key", key).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(1))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func IPKeyFunc(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip: " + host
}
