package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/rfd-tracker/internal/http/handlers"
	"github.com/pribylovaa/rfd-tracker/internal/http/middleware"
	"github.com/pribylovaa/rfd-tracker/internal/metrics"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	Metrics *metrics.Metrics // nil: без /metrics и HTTP-метрик

	Cookie      middleware.CookieConfig
	StateSecret []byte

	RateRPS   float64
	RateBurst int

	// Ready — проверка готовности для /healthz (например, ping БД).
	Ready func(ctx context.Context) error
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Service, gate middleware.Authorizer, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования: id попадает в логгер запроса
		middleware.Logging(opts.Logger),
		opts.Metrics.Instrument,
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	registerProbes(root, opts)

	h := handlers.New(svc, handlers.Config{
		Cookie:      opts.Cookie,
		StateSecret: opts.StateSecret,
	})

	root.Group(func(r chi.Router) {
		r.Use(middleware.Session(gate, opts.Cookie))
		registerRoutes(r, h, opts)
	})

	return root
}

func registerProbes(r chi.Router, opts Options) {
	r.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if opts.Ready != nil {
			if err := opts.Ready(req.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, opts Options) {
	limit := middleware.RateLimit(opts.RateRPS, opts.RateBurst)

	// auth
	r.With(limit).Get("/auth/google", h.GoogleLogin)
	r.With(limit).Get("/auth/google/callback", h.GoogleCallback)
	r.Post("/auth/logout", h.Logout)
	r.Get("/restricted", h.Restricted)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireUser())

		r.Get("/me", h.Me)

		// rfds
		r.Get("/rfds", h.ListRFDs)
		r.Get("/rfds/number/{number}", h.GetRFDByNumber)
		r.Get("/rfds/{id}", h.GetRFD)
		r.Get("/rfds/{id}/history", h.History)
		r.Get("/rfds/{id}/endorsers", h.Endorsers)

		// tags / templates
		r.Get("/tags", h.Tags)
		r.Get("/templates", h.Templates)

		// мутации под лимитом на пользователя
		r.Group(func(r chi.Router) {
			r.Use(limit)

			r.Post("/rfds", h.CreateRFD)
			r.Put("/rfds/{id}", h.UpdateRFD)
			r.Put("/rfds/{id}/status", h.UpdateRFDStatus)
			r.Post("/rfds/{id}/endorsement", h.Endorse)
			r.Delete("/rfds/{id}/endorsement", h.Unendorse)
		})
	})
}
