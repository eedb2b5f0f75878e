package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/rfd-tracker/internal/pkg/log"
)

// probePaths пишутся на debug: их дёргает оркестратор и Prometheus.
var probePaths = map[string]struct{}{
	"/livez":   {},
	"/healthz": {},
	"/metrics": {},
}

// Logging кладёт в контекст логгер с request_id и пишет одну запись
// "http_request" на запрос. 5xx идут на warn.
func Logging(l *slog.Logger) Middleware {
	if l == nil {
		l = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lg := l
			if rid := r.Header.Get(requestIDHeader); rid != "" {
				lg = lg.With(slog.String("request_id", rid))
			}
			ctx := log.Into(r.Context(), lg)
			r = r.WithContext(ctx)

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			status := sw.code()
			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelWarn
			case isProbe(r.URL.Path):
				level = slog.LevelDebug
			}

			lg.LogAttrs(ctx, level, "http_request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", routePattern(r)),
				slog.Int("status", status),
				slog.Int64("dur_ms", time.Since(start).Milliseconds()),
				slog.Int("bytes", sw.count),
			)
		})
	}
}

func isProbe(path string) bool {
	_, ok := probePaths[path]
	return ok
}

// routePattern — шаблон маршрута chi ("/api/rfds/{id}") после роутинга.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return ""
}
