package mocks

import (
	"context"

	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type CallbackRepository struct {
	mock.Mock
}

func (c *CallbackRepository) Save(ctx context.Context, registration *model.CallbackRegistration) error {
	args := c.Called(ctx, registration)
	return args.Error(0)
}

func (c *CallbackRepository) Get(ctx context.Context) (*model.CallbackRegistration, error) {
	args := c.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CallbackRegistration), args.Error(1)
}

type TransactionUpdateRepository struct {
	mock.Mock
}

func (t *TransactionUpdateRepository) Upsert(ctx context.Context, update *model.TransactionUpdate) error {
	args := t.Called(ctx, update)
	return args.Error(0)
}
