package main

import (
	"context"

	"github.com/Behyna/collect-gateway/internal/api"
	v1 "github.com/Behyna/collect-gateway/internal/api/v1"
	"github.com/Behyna/collect-gateway/internal/api/v1/middleware"
	"github.com/Behyna/collect-gateway/internal/config"
	"github.com/Behyna/collect-gateway/internal/database"
	apperrors "github.com/Behyna/collect-gateway/internal/errors"
	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/Behyna/collect-gateway/internal/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,
			NewFiberApp,

			database.NewRepositories,
			validator.NewXValidator,

			service.NewTransactionService,
			service.NewCallbackRegistryService,
			service.NewTransactionUpdateService,

			api.NewHandler,
			v1.NewHandler,
		),
		fx.Invoke(seedCallback, startSystemCollector, startServer),
	).Run()
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewFiberApp(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.API.ServiceName,
		ErrorHandler: apperrors.ErrorHandler(logger),
	})
	app.Use(middleware.HTTPMetricsMiddleware(m, logger))

	return app
}

func seedCallback(cfg *config.Config, registry service.CallbackRegistryService, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return registry.Init(ctx, cfg.Callback.DefaultURL)
		},
	})
}

func startSystemCollector(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger, lc fx.Lifecycle) {
	collector := metrics.NewSystemCollector(m, logger, cfg.API.ServiceName)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(cfg.Metrics.CollectInterval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			return nil
		},
	})
}

func startServer(app *fiber.App, handler *api.Handler, v1Handler *v1.Handler, cfg *config.Config,
	logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, v1Handler)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()
			logger.Info("http server started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
