package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/Behyna/collect-gateway/internal/repository"
	"github.com/Behyna/collect-gateway/internal/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const transactionIDPrefix = "CCT"

type TransactionService interface {
	CreateTransaction(ctx context.Context, cmd CreateTransactionCommand) error
	GetTransactionByOrderID(ctx context.Context, orderID string) (model.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string) (model.Transaction, error)
	MarkCallbackSent(ctx context.Context, transactionID string) error
}

type transaction struct {
	repo      repository.TransactionRepository
	validator validator.IXValidator
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewTransactionService(repo repository.TransactionRepository, validator validator.IXValidator,
	logger *zap.Logger, metrics *metrics.Metrics) TransactionService {
	return &transaction{repo: repo, validator: validator, logger: logger, metrics: metrics}
}

// NewTransactionID returns "CCT" followed by 32 upper-case hex characters.
func NewTransactionID() string {
	return transactionIDPrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// CreateTransaction records a collection request. The duplicate check and the
// insert are not atomic: two concurrent requests with the same reference can
// both be stored.
func (t *transaction) CreateTransaction(ctx context.Context, cmd CreateTransactionCommand) error {
	if errs := t.validator.Validate(cmd); len(errs) > 0 {
		t.logger.Warn("Collection request is missing required fields",
			zap.String("field", errs[0].FailedField),
			zap.String("externalReference", cmd.ExternalReference))
		t.metrics.RecordCollectionError("missing_fields")
		return NewServiceError(constants.ErrCodeMissingRequiredFields, ErrMissingRequiredFields)
	}

	start := time.Now()
	exists, err := t.repo.ExistsByOrderID(ctx, cmd.ExternalReference)
	if err != nil {
		t.logger.Error("Failed to check existing transaction",
			zap.String("externalReference", cmd.ExternalReference),
			zap.Error(err))
		t.metrics.RecordDBQuery("select", "transactions", "error", time.Since(start))
		t.metrics.RecordCollectionError("database")
		return NewServiceError(ErrCodeDatabase, err)
	}
	t.metrics.RecordDBQuery("select", "transactions", "success", time.Since(start))

	if exists {
		t.logger.Warn("Duplicate external reference",
			zap.String("externalReference", cmd.ExternalReference))
		t.metrics.RecordCollectionError("duplicate")
		return NewServiceError(constants.ErrCodeDuplicateExternalID, ErrDuplicateExternalID)
	}

	accountNumber := cmd.AccountNumber
	if accountNumber == "" {
		accountNumber = model.AccountNumberUnavailable
	}

	finalStatus, message := model.FinalStatusFor(cmd.StatusHint)
	now := time.Now()

	tx := model.Transaction{
		TransactionID:   NewTransactionID(),
		OrderID:         cmd.ExternalReference,
		Amount:          cmd.Amount,
		Currency:        cmd.Currency,
		PayerNumber:     cmd.PayerNumber,
		AccountNumber:   accountNumber,
		Narration:       cmd.PaymentNarration,
		FinalStatus:     finalStatus,
		ResponseCode:    model.ResponseCodeAccepted,
		ResponseMessage: message,
		CallbackSent:    false,
		Published:       false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	start = time.Now()
	if err := t.repo.Create(ctx, &tx); err != nil {
		t.logger.Error("Failed to create transaction",
			zap.String("externalReference", cmd.ExternalReference),
			zap.Error(err))
		t.metrics.RecordDBQuery("insert", "transactions", "error", time.Since(start))
		t.metrics.RecordCollectionError("database")
		return NewServiceError(ErrCodeDatabase, err)
	}
	t.metrics.RecordDBQuery("insert", "transactions", "success", time.Since(start))
	t.metrics.RecordCollection(strconv.Itoa(finalStatus), tx.Currency, tx.Amount)

	t.logger.Info("Transaction recorded",
		zap.String("transactionID", tx.TransactionID),
		zap.String("orderID", tx.OrderID),
		zap.Int("finalStatus", finalStatus))

	return nil
}

// GetTransactionByOrderID returns the latest record for orderID once its
// callback has been delivered.
func (t *transaction) GetTransactionByOrderID(ctx context.Context, orderID string) (model.Transaction, error) {
	start := time.Now()
	tx, err := t.repo.GetLatestByOrderID(ctx, orderID)
	if errors.Is(err, repository.ErrTransactionNotFound) {
		t.metrics.RecordDBQuery("select", "transactions", "not_found", time.Since(start))
		t.metrics.RecordStatusQuery("not_found")
		return model.Transaction{}, NewServiceError(constants.ErrCodeTransactionNotFound, ErrTransactionNotFound)
	}

	if err != nil {
		t.logger.Error("Failed to fetch transaction",
			zap.String("orderID", orderID),
			zap.Error(err))
		t.metrics.RecordDBQuery("select", "transactions", "error", time.Since(start))
		t.metrics.RecordStatusQuery("error")
		return model.Transaction{}, NewServiceError(ErrCodeDatabase, err)
	}
	t.metrics.RecordDBQuery("select", "transactions", "success", time.Since(start))

	if !tx.CallbackSent {
		t.logger.Debug("Transaction callback not sent yet", zap.String("orderID", orderID))
		t.metrics.RecordStatusQuery("pending")
		return model.Transaction{}, NewServiceError(constants.ErrCodeTransactionNotFound, ErrTransactionNotFound)
	}

	t.metrics.RecordStatusQuery("found")

	return *tx, nil
}

func (t *transaction) GetTransactionByID(ctx context.Context, transactionID string) (model.Transaction, error) {
	tx, err := t.repo.GetByID(ctx, transactionID)
	if errors.Is(err, repository.ErrTransactionNotFound) {
		return model.Transaction{}, NewServiceError(constants.ErrCodeTransactionNotFound, ErrTransactionNotFound)
	}

	if err != nil {
		t.logger.Error("Failed to load transaction",
			zap.String("transactionID", transactionID),
			zap.Error(err))
		return model.Transaction{}, NewServiceError(ErrCodeDatabase, ErrDatabase)
	}

	return *tx, nil
}

func (t *transaction) MarkCallbackSent(ctx context.Context, transactionID string) error {
	start := time.Now()
	err := t.repo.MarkCallbackSent(ctx, transactionID)
	if errors.Is(err, repository.ErrTransactionNotFound) {
		t.metrics.RecordDBQuery("update", "transactions", "not_found", time.Since(start))
		return NewServiceError(constants.ErrCodeTransactionNotFound, ErrTransactionNotFound)
	}

	if err != nil {
		t.logger.Error("Failed to mark callback as sent",
			zap.String("transactionID", transactionID),
			zap.Error(err))
		t.metrics.RecordDBQuery("update", "transactions", "error", time.Since(start))
		return NewServiceError(ErrCodeDatabase, err)
	}
	t.metrics.RecordDBQuery("update", "transactions", "success", time.Since(start))

	return nil
}
