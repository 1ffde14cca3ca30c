package publishers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/collect-gateway/internal/config"
	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/Behyna/collect-gateway/pkg/mq"
	"go.uber.org/zap"
)

type TransactionCreatedPublisher interface {
	Publish(ctx context.Context) error
}

type transactionCreatedPublisher struct {
	service   service.EventQueueService
	publisher mq.Publisher
	batchSize int
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewTransactionCreatedPublisher(service service.EventQueueService, publisher mq.Publisher, config *config.Config,
	logger *zap.Logger, metrics *metrics.Metrics) TransactionCreatedPublisher {
	return &transactionCreatedPublisher{
		service:   service,
		publisher: publisher,
		batchSize: config.Callback.PublishBatch,
		logger:    logger,
		metrics:   metrics,
	}
}

// Publish relays one batch of unpublished transactions. A row is marked only
// after the broker accepted its event, so a failed publish is retried on the
// next tick.
func (p *transactionCreatedPublisher) Publish(ctx context.Context) error {
	events, err := p.service.FindTransactionsToQueue(ctx, p.batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	p.logger.Info("Publishing transaction events", zap.Int("count", len(events)))

	successCount := 0
	for _, event := range events {
		body, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("Failed to encode event",
				zap.Error(err),
				zap.String("transactionID", event.TransactionID))
			continue
		}

		if err := p.publisher.Publish(ctx, "", constants.QueueTransactionCreated, event.TransactionID, body); err != nil {
			p.logger.Error("Failed to publish event",
				zap.Error(err),
				zap.String("transactionID", event.TransactionID))
			p.metrics.RecordEventPublished("error")
			continue
		}
		p.metrics.RecordEventPublished("success")

		if err := p.service.MarkTransactionAsQueued(ctx, event.TransactionID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published transaction events",
			zap.Int("published", successCount),
			zap.Int("total", len(events)))
	}

	return nil
}
