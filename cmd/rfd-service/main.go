package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pribylovaa/rfd-tracker/internal/cache"
	"github.com/pribylovaa/rfd-tracker/internal/config"
	"github.com/pribylovaa/rfd-tracker/internal/docs"
	rfdhttp "github.com/pribylovaa/rfd-tracker/internal/http"
	"github.com/pribylovaa/rfd-tracker/internal/http/middleware"
	"github.com/pribylovaa/rfd-tracker/internal/identity"
	"github.com/pribylovaa/rfd-tracker/internal/metrics"
	logctx "github.com/pribylovaa/rfd-tracker/internal/pkg/log"
	"github.com/pribylovaa/rfd-tracker/internal/service"
	"github.com/pribylovaa/rfd-tracker/internal/storage/minio"
	"github.com/pribylovaa/rfd-tracker/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	// .env необязателен: секреты локального запуска.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting rfd-service", "env", cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(logctx.Into(ctx, log), cfg); err != nil {
		log.Error("service_failed", slog.String("err", err.Error()))
		cancel()
		os.Exit(1)
	}

	log.Info("service_stopped")
}

// run собирает зависимости, обслуживает HTTP и фоновую уборку сессий до отмены ctx.
func run(ctx context.Context, cfg *config.Config) error {
	log := logctx.From(ctx)

	st, err := postgres.New(ctx, cfg.DB.DatabaseURL)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer st.Close()
	log.Info("postgres_connected")

	m := metrics.New()
	opts := []service.Option{service.WithMetrics(m)}

	if cfg.Redis.RedisURL != "" {
		sc, err := cache.NewRedisCache(ctx, cfg.Redis.RedisURL, "")
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer func() {
			if cerr := sc.Close(); cerr != nil {
				log.Warn("redis_close_failed", slog.String("err", cerr.Error()))
			}
		}()

		opts = append(opts, service.WithSessionCache(sc))
		log.Info("redis_connected")
	} else {
		log.Info("session_cache_disabled")
	}

	if cfg.S3.Endpoint != "" {
		avatars, err := minio.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("minio: %w", err)
		}

		opts = append(opts, service.WithAvatars(avatars))
		log.Info("minio_connected", slog.String("bucket", cfg.S3.Bucket))
	} else {
		log.Info("avatar_storage_disabled")
	}

	idp := identity.NewGoogle(
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		strings.TrimRight(cfg.HTTP.BaseURL, "/")+"/auth/google/callback",
	)

	dc, err := docs.New(ctx, docs.Config{
		ServiceAccountKey: cfg.Drive.ServiceAccountKey,
		FolderID:          cfg.Drive.FolderID,
		TeamEmails:        cfg.Drive.TeamEmails,
	}, docs.WithTimeout(cfg.Drive.Timeout))
	if err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	if !dc.HasServiceAccount() {
		log.Warn("docs_service_account_missing")
	}

	svc := service.New(st, idp, dc, cfg, opts...)

	var ready atomic.Bool

	srv := &http.Server{
		Addr: cfg.HTTP.Addr(),
		Handler: rfdhttp.NewRouter(svc, svc, rfdhttp.Options{
			Logger:  log,
			Timeout: cfg.Timeouts.Service,
			Metrics: m,
			Cookie: middleware.CookieConfig{
				Name:   cfg.Session.CookieName,
				Secure: cfg.Env != envLocal,
			},
			StateSecret: []byte(cfg.Auth.StateSecret),
			RateRPS:     cfg.Rate.RPS,
			RateBurst:   cfg.Rate.Burst,
			Ready: func(ctx context.Context) error {
				if !ready.Load() {
					return errors.New("not ready")
				}
				return st.Ping(ctx)
			},
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	log.Info("http_listen_start", slog.String("addr", srv.Addr))

	serveErr := make(chan error, 1)
	go func() {
		defer close(serveErr)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		runJanitor(janitorCtx, svc, cfg.Session.JanitorPeriod)
	}()

	ready.Store(true)
	log.Info("service_ready")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("http serve: %w", err)
		}
	}

	ready.Store(false)
	stopJanitor()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	<-janitorDone
	return runErr
}

// runJanitor периодически удаляет истёкшие сессии до отмены ctx.
func runJanitor(ctx context.Context, svc *service.Service, period time.Duration) {
	if period <= 0 {
		return
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.DeleteExpiredSessions(ctx)
			if err != nil {
				logctx.From(ctx).Warn("session_janitor_failed", slog.String("err", err.Error()))
				continue
			}
			if n > 0 {
				logctx.From(ctx).Info("session_janitor_swept", slog.Int64("deleted", n))
			}
		}
	}
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
