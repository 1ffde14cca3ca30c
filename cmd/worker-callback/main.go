package main

import (
	"context"

	"github.com/Behyna/collect-gateway/internal/api"
	"github.com/Behyna/collect-gateway/internal/config"
	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/Behyna/collect-gateway/internal/consumers"
	"github.com/Behyna/collect-gateway/internal/database"
	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/Behyna/collect-gateway/internal/validator"
	"github.com/Behyna/collect-gateway/pkg/callbackclient"
	"github.com/Behyna/collect-gateway/pkg/httpclient"
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
			NewMQConsumer,
			NewNotifier,
			validator.NewXValidator,

			service.NewTransactionService,
			service.NewCallbackRegistryService,
			service.NewDispatcherService,

			consumers.NewCallbackConsumer,
		),
		fx.Invoke(runCallbackConsumer, startMetricsServer),
	).Run()
}

// runCallbackConsumer stops by cancelling the consume context: handlers still
// waiting for their delay return a temporary error, so their events are
// requeued before the connection closes.
func runCallbackConsumer(consumer consumers.CallbackConsumer, logger *zap.Logger, rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
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
				if err := consumer.Consume(appCtx); err != nil && appCtx.Err() == nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("callback consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping callback consumer")
			cancel()

			select {
			case <-done:
			case <-ctx.Done():
				logger.Warn("callback consumer did not drain before shutdown deadline")
			}

			return rabbit.Close()
		},
	})
}

func startMetricsServer(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	if cfg.Metrics.CallbackAddr == "" {
		return
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api.SetupMetricsRoute(app)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.Metrics.CallbackAddr); err != nil {
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

func NewNotifier(cfg *config.Config) callbackclient.Notifier {
	client := httpclient.NewHTTPClient(cfg.Callback.Client.Timeout)
	return callbackclient.NewNotifier(client)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
