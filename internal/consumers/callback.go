package consumers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/collect-gateway/internal/config"
	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/Behyna/collect-gateway/pkg/mq"
	"go.uber.org/zap"
)

type CallbackConsumer interface {
	Consume(ctx context.Context) error
}

type callbackConsumer struct {
	service  service.DispatcherService
	consumer mq.Consumer
	prefetch int
	logger   *zap.Logger
}

func NewCallbackConsumer(service service.DispatcherService, consumer mq.Consumer, config *config.Config,
	logger *zap.Logger) CallbackConsumer {
	return &callbackConsumer{
		service:  service,
		consumer: consumer,
		prefetch: config.RabbitMQ.Prefetch,
		logger:   logger,
	}
}

func (c *callbackConsumer) Consume(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.prefetch, constants.QueueTransactionCreated, c.handleMessage)
}

func (c *callbackConsumer) handleMessage(ctx context.Context, body []byte) error {
	c.logger.Debug("received transaction event", zap.ByteString("body", body))

	var event service.TransactionCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.Warn("invalid transaction event", zap.Error(err))
		return err
	}

	return c.service.Dispatch(ctx, event)
}
