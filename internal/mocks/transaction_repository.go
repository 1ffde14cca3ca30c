package mocks

import (
	"context"
	"time"

	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (t *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	args := t.Called(ctx, tx)
	return args.Error(0)
}

func (t *TransactionRepository) ExistsByOrderID(ctx context.Context, orderID string) (bool, error) {
	args := t.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (t *TransactionRepository) GetLatestByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	args := t.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (t *TransactionRepository) GetByID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	args := t.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (t *TransactionRepository) MarkCallbackSent(ctx context.Context, transactionID string) error {
	args := t.Called(ctx, transactionID)
	return args.Error(0)
}

func (t *TransactionRepository) FindUnpublished(ctx context.Context, limit int) ([]model.Transaction, error) {
	args := t.Called(ctx, limit)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (t *TransactionRepository) MarkPublished(ctx context.Context, transactionID string, publishedAt time.Time) error {
	args := t.Called(ctx, transactionID, publishedAt)
	return args.Error(0)
}
