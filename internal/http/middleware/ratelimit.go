package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	apierrors "github.com/pribylovaa/rfd-tracker/internal/errors"
	"golang.org/x/time/rate"
)

// limiterIdle — через сколько простаивающий лимитер пользователя выбрасывается.
const limiterIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiters — token bucket на ключ (ID пользователя или IP).
type limiters struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func (l *limiters) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdle {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > limiterIdle {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// RateLimit ограничивает частоту запросов на пользователя; анонимные
// запросы считаются по IP. rps<=0 делает мидлвар no-op.
func RateLimit(rps float64, burst int) Middleware {
	return rateLimit(rps, burst, time.Now)
}

func rateLimit(rps float64, burst int, now func() time.Time) Middleware {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	if burst < 1 {
		burst = 1
	}

	// Одно состояние на все маршруты, обёрнутые этим мидлваром.
	l := &limiters{
		rps:       rate.Limit(rps),
		burst:     burst,
		visitors:  make(map[string]*visitor),
		lastSweep: now(),
		now:       now,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(limitKey(r)) {
				w.Header().Set("Retry-After", "1")
				apierrors.WriteError(w, r, apierrors.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func limitKey(r *http.Request) string {
	if u := UserFrom(r.Context()); u != nil {
		return "user:" + u.ID.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "ip:" + host
}
