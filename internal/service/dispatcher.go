package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Behyna/collect-gateway/internal/config"
	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/pkg/callbackclient"
	"github.com/Behyna/collect-gateway/pkg/mq"
	"go.uber.org/zap"
)

const (
	OutcomeDelivered    = "delivered"
	OutcomeRejected     = "rejected"
	OutcomeFailed       = "failed"
	OutcomeUnregistered = "unregistered"
	OutcomeError        = "error"
)

type DispatcherService interface {
	Dispatch(ctx context.Context, event TransactionCreatedEvent) error
}

type dispatcher struct {
	transactions TransactionService
	registry     CallbackRegistryService
	notifier     callbackclient.Notifier
	delay        time.Duration
	inFlight     sync.Map
	logger       *zap.Logger
	metrics      *metrics.Metrics
}

func NewDispatcherService(transactions TransactionService, registry CallbackRegistryService,
	notifier callbackclient.Notifier, config *config.Config, logger *zap.Logger, metrics *metrics.Metrics) DispatcherService {
	return &dispatcher{
		transactions: transactions,
		registry:     registry,
		notifier:     notifier,
		delay:        config.Callback.Delay,
		logger:       logger,
		metrics:      metrics,
	}
}

// Dispatch delivers the outcome of one new transaction to the registered
// callback URL once the configured delay after its creation has elapsed.
// The record is marked as sent whatever the POST outcome. Only a failure to
// load the record or a shutdown during the wait is returned, both temporary.
func (d *dispatcher) Dispatch(ctx context.Context, event TransactionCreatedEvent) error {
	if event.TransactionID == "" {
		d.logger.Warn("No data associated with the event")
		return nil
	}

	if _, loaded := d.inFlight.LoadOrStore(event.TransactionID, struct{}{}); loaded {
		d.logger.Info("Transaction already waiting for dispatch, dropping duplicate delivery",
			zap.String("transactionID", event.TransactionID))
		return nil
	}
	defer d.inFlight.Delete(event.TransactionID)

	tx, err := d.transactions.GetTransactionByID(ctx, event.TransactionID)
	if errors.Is(err, ErrTransactionNotFound) {
		d.logger.Warn("No transaction found for event",
			zap.String("transactionID", event.TransactionID))
		return nil
	}

	if err != nil {
		return mq.Temporary(err)
	}

	if tx.CallbackSent {
		d.logger.Info("Callback already sent, ignoring duplicate delivery",
			zap.String("transactionID", tx.TransactionID))
		return nil
	}

	if err := d.wait(ctx, tx.CreatedAt); err != nil {
		d.logger.Info("Dispatch interrupted before delay elapsed",
			zap.String("transactionID", tx.TransactionID))
		return mq.Temporary(ErrDispatchInterrupted)
	}

	// Past the delay the attempt runs to completion even during shutdown.
	ctx = context.WithoutCancel(ctx)

	url, err := d.registry.GetRegisteredURL(ctx)
	if errors.Is(err, ErrCallbackNotRegistered) {
		d.logger.Error("No callback url registered, dropping callback",
			zap.String("transactionID", tx.TransactionID))
		d.metrics.RecordCallbackDispatch(OutcomeUnregistered, time.Since(tx.CreatedAt))
		return nil
	}

	if err != nil {
		d.logger.Error("Failed to load callback url",
			zap.String("transactionID", tx.TransactionID),
			zap.Error(err))
		d.metrics.RecordCallbackDispatch(OutcomeError, time.Since(tx.CreatedAt))
		return nil
	}

	payload, err := json.Marshal(tx)
	if err != nil {
		d.logger.Error("Failed to encode callback payload",
			zap.String("transactionID", tx.TransactionID),
			zap.Error(err))
		return nil
	}

	d.notify(ctx, url, tx.TransactionID, payload, tx.CreatedAt)

	if err := d.transactions.MarkCallbackSent(ctx, tx.TransactionID); err != nil {
		d.logger.Error("Failed to mark callback as sent",
			zap.String("transactionID", tx.TransactionID),
			zap.Error(err))
	}

	return nil
}

func (d *dispatcher) notify(ctx context.Context, url, transactionID string, payload []byte, createdAt time.Time) {
	resp, err := d.notifier.Notify(ctx, url, payload)
	since := time.Since(createdAt)

	switch {
	case err == nil:
		d.logger.Info("Callback delivered",
			zap.String("transactionID", transactionID),
			zap.String("callbackURL", url),
			zap.Int("statusCode", resp.StatusCode))
		d.metrics.RecordCallbackDispatch(OutcomeDelivered, since)

	case resp.StatusCode != 0:
		d.logger.Warn("Callback rejected by receiver",
			zap.String("transactionID", transactionID),
			zap.String("callbackURL", url),
			zap.Int("statusCode", resp.StatusCode),
			zap.Error(err))
		d.metrics.RecordCallbackDispatch(OutcomeRejected, since)

	default:
		d.logger.Error("Callback delivery failed",
			zap.String("transactionID", transactionID),
			zap.String("callbackURL", url),
			zap.Error(err))
		d.metrics.RecordCallbackDispatch(OutcomeFailed, since)
	}
}

// wait blocks until createdAt plus the configured delay.
func (d *dispatcher) wait(ctx context.Context, createdAt time.Time) error {
	remaining := time.Until(createdAt.Add(d.delay))
	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
