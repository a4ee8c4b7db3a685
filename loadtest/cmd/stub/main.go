package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/logging"
	"github.com/KasumiMercury/cafe-menu-thread/loadtest/internal/stub"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	slog.SetDefault(logging.NewLogger(os.Stdout, logging.Config{
		ServiceInfo:   logging.ServiceInfo{Name: "menu-stub"},
		Environment:   logging.EnvDev,
		Level:         slog.LevelDebug,
		DefaultModule: logging.Module("stub"),
	}))

	port := os.Getenv("STUB_PORT")
	if port == "" {
		port = "8081"
	}

	storage := stub.NewStorage()
	if cafeID := os.Getenv("STUB_SEED_CAFE_ID"); cafeID != "" {
		storage.SetMenu(cafeID, stub.SampleMenu(cafeID, "Commons", time.Now()))
		slog.Info("seeded sample menu", slog.String("cafe_id", cafeID))
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	stub.NewHandler(storage).Register(r)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting stub server", slog.String("port", port))
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown stub server", slog.String("error", err.Error()))
			return 1
		}
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("stub server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
