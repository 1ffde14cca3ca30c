package service

import (
	"context"
	"time"

	"github.com/Behyna/collect-gateway/internal/repository"
	"go.uber.org/zap"
)

// EventQueueService feeds the creation-event relay from the transactions
// table: unpublished rows become TransactionCreatedEvents.
type EventQueueService interface {
	FindTransactionsToQueue(ctx context.Context, limit int) ([]TransactionCreatedEvent, error)
	MarkTransactionAsQueued(ctx context.Context, transactionID string) error
}

type eventQueue struct {
	repo   repository.TransactionRepository
	logger *zap.Logger
}

func NewEventQueueService(repo repository.TransactionRepository, logger *zap.Logger) EventQueueService {
	return &eventQueue{repo: repo, logger: logger}
}

func (e *eventQueue) FindTransactionsToQueue(ctx context.Context, limit int) ([]TransactionCreatedEvent, error) {
	e.logger.Debug("Finding transactions to publish", zap.Int("batchSize", limit))

	txs, err := e.repo.FindUnpublished(ctx, limit)
	if err != nil {
		e.logger.Error("Failed to find unpublished transactions", zap.Error(err))
		return nil, err
	}

	if len(txs) == 0 {
		e.logger.Debug("No transactions found to publish")
		return nil, nil
	}

	events := make([]TransactionCreatedEvent, 0, len(txs))
	for _, tx := range txs {
		events = append(events, TransactionCreatedEvent{
			TransactionID: tx.TransactionID,
			OrderID:       tx.OrderID,
			CreatedAt:     tx.CreatedAt,
		})
	}

	return events, nil
}

func (e *eventQueue) MarkTransactionAsQueued(ctx context.Context, transactionID string) error {
	if err := e.repo.MarkPublished(ctx, transactionID, time.Now()); err != nil {
		e.logger.Error("Failed to mark transaction as published",
			zap.Error(err),
			zap.String("transactionID", transactionID))
		return err
	}

	e.logger.Debug("Successfully marked transaction as published",
		zap.String("transactionID", transactionID))

	return nil
}
