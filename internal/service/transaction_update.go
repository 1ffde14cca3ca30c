package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/Behyna/collect-gateway/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type TransactionUpdateService interface {
	Store(ctx context.Context, payload []byte) error
}

type transactionUpdate struct {
	repo    repository.TransactionUpdateRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewTransactionUpdateService(repo repository.TransactionUpdateRepository, logger *zap.Logger,
	metrics *metrics.Metrics) TransactionUpdateService {
	return &transactionUpdate{repo: repo, logger: logger, metrics: metrics}
}

// Store keeps payload verbatim under its order_id, replacing any earlier one.
func (t *transactionUpdate) Store(ctx context.Context, payload []byte) error {
	orderID := orderIDOf(payload)
	if orderID == "" {
		t.logger.Warn("Transaction update without order_id")
		t.metrics.RecordTransactionUpdate("invalid")
		return NewServiceError(constants.ErrCodeMissingOrderID, ErrMissingOrderID)
	}

	update := model.TransactionUpdate{
		OrderID:   orderID,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: time.Now(),
	}

	start := time.Now()
	if err := t.repo.Upsert(ctx, &update); err != nil {
		t.logger.Error("Failed to store transaction update",
			zap.String("orderID", orderID),
			zap.Error(err))
		t.metrics.RecordDBQuery("upsert", "transaction_updates", "error", time.Since(start))
		t.metrics.RecordTransactionUpdate("error")
		return NewServiceError(ErrCodeDatabase, err)
	}
	t.metrics.RecordDBQuery("upsert", "transaction_updates", "success", time.Since(start))
	t.metrics.RecordTransactionUpdate("success")

	t.logger.Info("Transaction update stored", zap.String("orderID", orderID))

	return nil
}

// orderIDOf reads order_id from a JSON object. Anything else, including a
// non-string order_id, yields "".
func orderIDOf(payload []byte) string {
	var ref struct {
		OrderID any `json:"order_id"`
	}
	if err := json.Unmarshal(payload, &ref); err != nil {
		return ""
	}

	orderID, _ := ref.OrderID.(string)
	return orderID
}
