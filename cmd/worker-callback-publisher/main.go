package main

import (
	"context"
	"time"

	"github.com/Behyna/collect-gateway/internal/api"
	"github.com/Behyna/collect-gateway/internal/config"
	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/Behyna/collect-gateway/internal/database"
	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/internal/publishers"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/Behyna/collect-gateway/pkg/mq"
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

			database.NewRepositories,
			NewMQConnection,
			NewMQPublisher,

			service.NewEventQueueService,

			publishers.NewTransactionCreatedPublisher,
		),
		fx.Invoke(runTransactionCreatedPublisher, startMetricsServer),
	).Run()
}

func runTransactionCreatedPublisher(cfg *config.Config, publisher publishers.TransactionCreatedPublisher,
	logger *zap.Logger, rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{constants.QueueTransactionCreated}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", constants.QueueTransactionCreated))

			go func() {
				defer close(done)

				ticker := time.NewTicker(cfg.Callback.PublishInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish transaction events", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("transaction event publisher started",
				zap.Duration("interval", cfg.Callback.PublishInterval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping transaction event publisher")
			cancel()
			<-done
			return rabbit.Close()
		},
	})
}

func startMetricsServer(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	if cfg.Metrics.PublisherAddr == "" {
		return
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api.SetupMetricsRoute(app)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.Metrics.PublisherAddr); err != nil {
					logger.Error("metrics server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
