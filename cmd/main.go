package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/cafe-menu-thread/internal/config"
	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
	"github.com/KasumiMercury/cafe-menu-thread/internal/handler"
	"github.com/KasumiMercury/cafe-menu-thread/internal/health"
	"github.com/KasumiMercury/cafe-menu-thread/internal/infra/menuapi"
	"github.com/KasumiMercury/cafe-menu-thread/internal/infra/poster"
	"github.com/KasumiMercury/cafe-menu-thread/internal/infra/repository"
	"github.com/KasumiMercury/cafe-menu-thread/internal/infra/threadrecorder"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/logging"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/metrics"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/middleware"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/announce"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/classifier"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/formatter"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/guard"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/poller"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/sequencer"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/window"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("cafe-menu-thread")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	announceMetrics, err := metrics.NewAnnounceMetrics()
	if err != nil {
		slog.Error("failed to initialize announce metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB locally, BigQuery under the gcloud tag
	resultRecorder, err := threadrecorder.NewRecorder(ctx, cfg.Recording)
	if err != nil {
		slog.Error("failed to initialize thread result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close thread result recorder", slog.String("error", err.Error()))
		}
	}()

	var redisClient *redis.Client
	var lastMealRepo domain.LastMealRepository

	if cfg.State.UsesRedis() {
		redisClient, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()

		lastMealRepo = repository.NewRedisLastMealRepository(redisClient, cfg.Redis.KeyPrefix)
	} else {
		lastMealRepo, err = repository.NewFileLastMealRepository(cfg.State.FilePath)
		if err != nil {
			slog.Error("failed to open state file",
				slog.String("path", cfg.State.FilePath),
				slog.String("error", err.Error()),
			)
			return 1
		}
		slog.Info("using file state", slog.String("path", cfg.State.FilePath))
	}

	menuClient := menuapi.NewClient(cfg.Menu.APIURL)

	if !checkCafe(ctx, menuClient, cfg.Menu) {
		return 1
	}

	var publisher domain.Publisher
	if cfg.Poster.DryRun() {
		slog.Warn("POST_ACCESS_TOKEN not set, posts will only be logged")
		publisher = poster.NewDryRun()
	} else {
		publisher = poster.NewClient(cfg.Poster.APIURL, cfg.Poster.AccessToken)
	}

	presentation := cfg.Menu.Presentation
	announceService := announce.NewService(
		announce.Options{
			CafeID:       cfg.Menu.CafeKey(),
			LocationName: cfg.Menu.LocationName,
		},
		menuClient,
		window.NewEvaluator(cfg.Menu.Lookahead),
		classifier.NewClassifier(),
		formatter.NewFormatter(formatter.Options{
			TriggerPhrase:     presentation.TriggerPhrase,
			CelebrationSuffix: presentation.CelebrationSuffix,
			StationEmoji:      presentation.StationEmoji,
			MaxRunes:          cfg.Poster.MaxRunes,
		}),
		guard.NewGuard(lastMealRepo),
		sequencer.NewSequencer(publisher, cfg.Poster.FailurePolicy, announceMetrics),
		domain.NewLocationClock(cfg.Menu.Location),
		resultRecorder,
		announceMetrics,
	)

	cyclePoller := poller.NewPoller(announceService, cfg.Poll.Interval, cfg.Poll.CycleTimeout, announceMetrics)
	cycleHandler := handler.NewCycleHandler(cyclePoller, cfg.Menu.Location)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/cafe-menu-thread/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, cyclePoller, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/cycle", cycleHandler.HandleCycle)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Duration("poll_interval", cfg.Poll.Interval),
			slog.Duration("meal_lookahead", cfg.Menu.Lookahead),
			slog.String("state_backend", string(cfg.State.Backend)),
			slog.String("failure_policy", string(cfg.Poster.FailurePolicy)),
			slog.Bool("dry_run", cfg.Poster.DryRun()),
		)
		serverErr <- srv.ListenAndServe()
	}()

	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		cyclePoller.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		select {
		case <-pollerDone:
		case <-shutdownCtx.Done():
			slog.Warn("poller did not stop before shutdown deadline")
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		cancel()
		<-pollerDone
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

// checkCafe reports false only when the menu API does not know the
// configured cafe. Fetch and parse failures are left to the poller's retry.
func checkCafe(ctx context.Context, menuClient *menuapi.Client, cfg *config.MenuConfig) bool {
	cafeName, err := menuClient.CafeName(ctx, cfg.CafeKey())
	switch {
	case err == nil:
		slog.Info("cafe resolved",
			slog.String("cafe_id", cfg.CafeKey()),
			slog.String("cafe_name", cafeName),
			slog.String("location_name", cfg.LocationName),
		)
		return true
	case errors.Is(err, domain.ErrCafeNotFound):
		slog.Error("configured cafe not found in menu",
			slog.String("cafe_id", cfg.CafeKey()),
			slog.String("error", err.Error()),
		)
		return false
	default:
		slog.Warn("could not resolve cafe at startup, continuing",
			slog.String("cafe_id", cfg.CafeKey()),
			slog.String("error", err.Error()),
		)
		return true
	}
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Addr),
		slog.String("key_prefix", cfg.KeyPrefix),
	)

	return redisClient, nil
}
