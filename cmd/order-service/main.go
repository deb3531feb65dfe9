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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ecomdemo/shop/internal/order-service/adapters/productclient"
	"github.com/ecomdemo/shop/internal/order-service/app"
	"github.com/ecomdemo/shop/internal/order-service/httpx"
	"github.com/ecomdemo/shop/internal/order-service/orderlog"
	"github.com/ecomdemo/shop/internal/order-service/orderlog/sqlite"
	"github.com/ecomdemo/shop/internal/order-service/store"
	"github.com/ecomdemo/shop/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "order-service"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("telemetry shutdown", "error", err)
		}
	}()

	timeout, err := time.ParseDuration(getEnv("PRODUCT_CLIENT_TIMEOUT", "5s"))
	if err != nil {
		slog.Error("invalid PRODUCT_CLIENT_TIMEOUT", "error", err)
		os.Exit(1)
	}
	catalogClient := productclient.New(getEnv("PRODUCT_SERVICE_URL", "http://localhost:8081"), timeout)

	// The event log is optional: when it cannot be opened the service runs
	// without an audit trail rather than refusing to start.
	var events orderlog.Repository
	logPath := getEnv("ORDER_LOG_PATH", "./data/orders.db")
	if repo, err := sqlite.Open(logPath); err != nil {
		slog.Warn("order event log disabled", "path", logPath, "error", err)
	} else {
		defer repo.Close()
		events = repo
	}

	orderService := app.NewOrderService(catalogClient, store.New(), events)
	router := httpx.NewRouter(httpx.NewHandler(orderService))

	addr := ":" + getEnv("PORT", "8082")
	srv := &http.Server{
		Addr:    addr,
		Handler: otelhttp.NewHandler(router, "order-service"),
	}

	go func() {
		slog.Info("order service running", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
