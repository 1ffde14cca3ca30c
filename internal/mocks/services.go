package mocks

import (
	"context"

	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type TransactionService struct {
	mock.Mock
}

func (t *TransactionService) CreateTransaction(ctx context.Context, cmd service.CreateTransactionCommand) error {
	args := t.Called(ctx, cmd)
	return args.Error(0)
}

func (t *TransactionService) GetTransactionByOrderID(ctx context.Context, orderID string) (model.Transaction, error) {
	args := t.Called(ctx, orderID)
	return args.Get(0).(model.Transaction), args.Error(1)
}

func (t *TransactionService) GetTransactionByID(ctx context.Context, transactionID string) (model.Transaction, error) {
	args := t.Called(ctx, transactionID)
	return args.Get(0).(model.Transaction), args.Error(1)
}

func (t *TransactionService) MarkCallbackSent(ctx context.Context, transactionID string) error {
	args := t.Called(ctx, transactionID)
	return args.Error(0)
}

type CallbackRegistryService struct {
	mock.Mock
}

func (c *CallbackRegistryService) Register(ctx context.Context, cmd service.RegisterCallbackCommand) error {
	args := c.Called(ctx, cmd)
	return args.Error(0)
}

func (c *CallbackRegistryService) GetRegisteredURL(ctx context.Context) (string, error) {
	args := c.Called(ctx)
	return args.String(0), args.Error(1)
}

func (c *CallbackRegistryService) Init(ctx context.Context, defaultURL string) error {
	args := c.Called(ctx, defaultURL)
	return args.Error(0)
}

type TransactionUpdateService struct {
	mock.Mock
}

func (t *TransactionUpdateService) Store(ctx context.Context, payload []byte) error {
	args := t.Called(ctx, payload)
	return args.Error(0)
}

type DispatcherService struct {
	mock.Mock
}

func (d *DispatcherService) Dispatch(ctx context.Context, event service.TransactionCreatedEvent) error {
	args := d.Called(ctx, event)
	return args.Error(0)
}

type EventQueueService struct {
	mock.Mock
}

func (e *EventQueueService) FindTransactionsToQueue(ctx context.Context, limit int) ([]service.TransactionCreatedEvent, error) {
	args := e.Called(ctx, limit)
	return args.Get(0).([]service.TransactionCreatedEvent), args.Error(1)
}

func (e *EventQueueService) MarkTransactionAsQueued(ctx context.Context, transactionID string) error {
	args := e.Called(ctx, transactionID)
	return args.Error(0)
}
