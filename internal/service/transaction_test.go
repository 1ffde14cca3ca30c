package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/internal/mocks"
	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/Behyna/collect-gateway/internal/repository"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/Behyna/collect-gateway/internal/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func validCreateCommand() service.CreateTransactionCommand {
	return service.CreateTransactionCommand{
		PayerNumber:       "233241234567",
		ExternalReference: "ref-1001",
		PaymentNarration:  "school fees",
		Currency:          "GHS",
		Amount:            "12.50",
		StatusHint:        "success",
	}
}

func newTransactionService(repo *mocks.TransactionRepository) service.TransactionService {
	m := newTestMetrics()
	return service.NewTransactionService(repo, validator.NewXValidator(m), zap.NewNop(), m)
}

func assertServiceErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var serviceErr service.Error
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, code, serviceErr.Code)
}

func TestNewTransactionID(t *testing.T) {
	pattern := regexp.MustCompile(`^CCT[0-9A-F]{32}$`)

	first := service.NewTransactionID()
	second := service.NewTransactionID()

	assert.Regexp(t, pattern, first)
	assert.Regexp(t, pattern, second)
	assert.NotEqual(t, first, second)
}

func TestTransaction_CreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending record with success status", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("ExistsByOrderID", ctx, "ref-1001").Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(tx *model.Transaction) bool {
			return tx.OrderID == "ref-1001" &&
				tx.Amount == "12.50" &&
				tx.Currency == "GHS" &&
				tx.PayerNumber == "233241234567" &&
				tx.Narration == "school fees" &&
				tx.AccountNumber == "N/A" &&
				tx.FinalStatus == 300 &&
				tx.ResponseMessage == "Transaction successful" &&
				tx.ResponseCode == 202 &&
				!tx.CallbackSent &&
				!tx.Published &&
				len(tx.TransactionID) == 35 &&
				!tx.CreatedAt.IsZero()
		})).Return(nil)

		err := svc.CreateTransaction(ctx, validCreateCommand())

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("any other status hint fails the transaction", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		cmd := validCreateCommand()
		cmd.StatusHint = ""
		cmd.AccountNumber = "ACC-9"

		repo.On("ExistsByOrderID", ctx, "ref-1001").Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(tx *model.Transaction) bool {
			return tx.FinalStatus == 301 &&
				tx.ResponseMessage == "Transaction failed" &&
				tx.AccountNumber == "ACC-9"
		})).Return(nil)

		err := svc.CreateTransaction(ctx, cmd)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing required field is a validation error", func(t *testing.T) {
		fields := []func(*service.CreateTransactionCommand){
			func(c *service.CreateTransactionCommand) { c.PayerNumber = "" },
			func(c *service.CreateTransactionCommand) { c.ExternalReference = "" },
			func(c *service.CreateTransactionCommand) { c.PaymentNarration = "" },
			func(c *service.CreateTransactionCommand) { c.Currency = "" },
			func(c *service.CreateTransactionCommand) { c.Amount = "" },
		}

		for _, unset := range fields {
			repo := &mocks.TransactionRepository{}
			svc := newTransactionService(repo)

			cmd := validCreateCommand()
			unset(&cmd)

			err := svc.CreateTransaction(ctx, cmd)

			assertServiceErrorCode(t, err, "MISSING_REQUIRED_FIELDS")
			assert.ErrorIs(t, err, service.ErrMissingRequiredFields)
			repo.AssertNotCalled(t, "ExistsByOrderID", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		}
	})

	t.Run("existing reference is a duplicate", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("ExistsByOrderID", ctx, "ref-1001").Return(true, nil)

		err := svc.CreateTransaction(ctx, validCreateCommand())

		assertServiceErrorCode(t, err, "DUPLICATE_EXTERNAL_ID")
		assert.ErrorIs(t, err, service.ErrDuplicateExternalID)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure is a database error", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("ExistsByOrderID", ctx, "ref-1001").Return(false, errors.New("connection refused"))

		err := svc.CreateTransaction(ctx, validCreateCommand())

		assertServiceErrorCode(t, err, service.ErrCodeDatabase)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("insert failure is a database error", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("ExistsByOrderID", ctx, "ref-1001").Return(false, nil)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

		err := svc.CreateTransaction(ctx, validCreateCommand())

		assertServiceErrorCode(t, err, service.ErrCodeDatabase)
		repo.AssertExpectations(t)
	})
}

func TestTransaction_GetTransactionByOrderID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns record once callback was sent", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		stored := &model.Transaction{TransactionID: "CCT1", OrderID: "ref-1", CallbackSent: true, FinalStatus: 300}
		repo.On("GetLatestByOrderID", ctx, "ref-1").Return(stored, nil)

		tx, err := svc.GetTransactionByOrderID(ctx, "ref-1")

		assert.NoError(t, err)
		assert.Equal(t, *stored, tx)
	})

	t.Run("pending record is not found", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("GetLatestByOrderID", ctx, "ref-1").
			Return(&model.Transaction{TransactionID: "CCT1", OrderID: "ref-1"}, nil)

		_, err := svc.GetTransactionByOrderID(ctx, "ref-1")

		assertServiceErrorCode(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("GetLatestByOrderID", ctx, "missing").Return(nil, repository.ErrTransactionNotFound)

		_, err := svc.GetTransactionByOrderID(ctx, "missing")

		assertServiceErrorCode(t, err, "TRANSACTION_NOT_FOUND")
		assert.ErrorIs(t, err, service.ErrTransactionNotFound)
	})

	t.Run("storage failure is a database error", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("GetLatestByOrderID", ctx, "ref-1").Return(nil, errors.New("timeout"))

		_, err := svc.GetTransactionByOrderID(ctx, "ref-1")

		assertServiceErrorCode(t, err, service.ErrCodeDatabase)
	})
}

func TestTransaction_GetTransactionByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns pending record", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("GetByID", ctx, "CCT1").Return(&model.Transaction{TransactionID: "CCT1"}, nil)

		tx, err := svc.GetTransactionByID(ctx, "CCT1")

		assert.NoError(t, err)
		assert.Equal(t, "CCT1", tx.TransactionID)
	})

	t.Run("maps repository errors", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("GetByID", ctx, "missing").Return(nil, repository.ErrTransactionNotFound)
		repo.On("GetByID", ctx, "broken").Return(nil, errors.New("io"))

		_, err := svc.GetTransactionByID(ctx, "missing")
		assert.ErrorIs(t, err, service.ErrTransactionNotFound)

		_, err = svc.GetTransactionByID(ctx, "broken")
		assert.ErrorIs(t, err, service.ErrDatabase)
	})
}

func TestTransaction_MarkCallbackSent(t *testing.T) {
	ctx := context.Background()

	t.Run("marks record", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("MarkCallbackSent", ctx, "CCT1").Return(nil).Twice()

		assert.NoError(t, svc.MarkCallbackSent(ctx, "CCT1"))
		assert.NoError(t, svc.MarkCallbackSent(ctx, "CCT1"))
		repo.AssertExpectations(t)
	})

	t.Run("unknown record is not found", func(t *testing.T) {
		repo := &mocks.TransactionRepository{}
		svc := newTransactionService(repo)

		repo.On("MarkCallbackSent", ctx, "missing").Return(repository.ErrTransactionNotFound)

		err := svc.MarkCallbackSent(ctx, "missing")

		assert.ErrorIs(t, err, service.ErrTransactionNotFound)
	})
}
