// Command profile-service starts the candidate Profile Service HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quickhire/profile-engine/internal/adapter/eventbus"
	"github.com/quickhire/profile-engine/internal/adapter/httpserver"
	"github.com/quickhire/profile-engine/internal/adapter/observability"
	"github.com/quickhire/profile-engine/internal/adapter/repo/memory"
	"github.com/quickhire/profile-engine/internal/adapter/repo/postgres"
	"github.com/quickhire/profile-engine/internal/adapter/sessions"
	"github.com/quickhire/profile-engine/internal/app"
	"github.com/quickhire/profile-engine/internal/config"
	"github.com/quickhire/profile-engine/internal/domain"
	"github.com/quickhire/profile-engine/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()

	// Repository: Postgres when configured, in-memory otherwise.
	var repo domain.ProfileRepository
	var pinger app.Pinger
	if cfg.DBURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DBURL)
		if err != nil {
			slog.Error("db connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		pgRepo := postgres.NewProfileRepo(pool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			slog.Error("schema setup failed", slog.Any("error", err))
			os.Exit(1)
		}
		repo = pgRepo
		pinger = pool
		slog.Info("using postgres repository")
	} else {
		repo = memory.NewProfileRepo()
		slog.Info("using in-memory repository")
	}

	// Sessions: Redis when configured, in-memory otherwise.
	var sessionStore domain.SessionStore
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("redis url invalid", slog.Any("error", err))
			os.Exit(1)
		}
		rdb = redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
		sessionStore = sessions.NewRedisStore(rdb)
		slog.Info("using redis session store")
	} else {
		sessionStore = sessions.NewMemoryStore()
		slog.Info("using in-memory session store")
	}

	// Events: enabled only when brokers are configured.
	var events domain.EventPublisher
	if cfg.EventsEnabled() {
		pub, err := eventbus.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			slog.Error("kafka connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() { _ = pub.Close() }()
		events = pub
		slog.Info("profile.updated publishing enabled", slog.Any("brokers", cfg.KafkaBrokers))
	}

	profiles := usecase.NewProfileService(repo, events)

	if cfg.SeedFile != "" {
		if err := app.SeedProfiles(ctx, cfg.SeedFile, repo); err != nil {
			slog.Error("seeding failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	tokens := httpserver.TokenIssuer{
		Secret:   []byte(cfg.JWTSecret),
		TTL:      cfg.JWTTTL,
		Sessions: sessionStore,
	}

	dbCheck, redisCheck := app.BuildReadinessChecks(pinger, rdb)
	srv := httpserver.NewServer(cfg, profiles, tokens, dbCheck, redisCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
