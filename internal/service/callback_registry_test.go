package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/collect-gateway/internal/mocks"
	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/Behyna/collect-gateway/internal/repository"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/Behyna/collect-gateway/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newCallbackRegistry(repo *mocks.CallbackRepository) service.CallbackRegistryService {
	m := newTestMetrics()
	return service.NewCallbackRegistryService(repo, validator.NewXValidator(m), zap.NewNop(), m)
}

func TestCallbackRegistry_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the singleton registration", func(t *testing.T) {
		repo := &mocks.CallbackRepository{}
		svc := newCallbackRegistry(repo)

		repo.On("Save", ctx, mock.MatchedBy(func(r *model.CallbackRegistration) bool {
			return r.ID == model.CallbackRegistrationID &&
				r.CallbackURL == "https://merchant.example/cb" &&
				!r.UpdatedAt.IsZero()
		})).Return(nil)

		err := svc.Register(ctx, service.RegisterCallbackCommand{CallbackURL: "https://merchant.example/cb"})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("empty url is rejected", func(t *testing.T) {
		repo := &mocks.CallbackRepository{}
		svc := newCallbackRegistry(repo)

		err := svc.Register(ctx, service.RegisterCallbackCommand{})

		assertServiceErrorCode(t, err, "MISSING_CALLBACK_URL")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("storage failure is a database error", func(t *testing.T) {
		repo := &mocks.CallbackRepository{}
		svc := newCallbackRegistry(repo)

		repo.On("Save", ctx, mock.Anything).Return(errors.New("down"))

		err := svc.Register(ctx, service.RegisterCallbackCommand{CallbackURL: "https://a"})

		assertServiceErrorCode(t, err, service.ErrCodeDatabase)
	})
}

func TestCallbackRegistry_GetRegisteredURL(t *testing.T) {
	ctx := context.Background()

	t.Run("returns registered url", func(t *testing.T) {
		repo := &mocks.CallbackRepository{}
		svc := newCallbackRegistry(repo)

		repo.On("Get", ctx).Return(&model.CallbackRegistration{CallbackURL: "https://a"}, nil)

		url, err := svc.GetRegisteredURL(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "https://a", url)
	})

	t.Run("nothing registered", func(t *testing.T) {
		repo := &mocks.CallbackRepository{}
		svc := newCallbackRegistry(repo)

		repo.On("Get", ctx).Return(nil, repository.ErrCallbackNotFound)

		_, err := svc.GetRegisteredURL(ctx)

		assert.ErrorIs(t, err, service.ErrCallbackNotRegistered)
	})

	t.Run("empty stored url counts as unregistered", func(t *testing.T) {
		repo := &mocks.CallbackRepository{}
		svc := newCallbackRegistry(repo)

		repo.On("Get", ctx).Return(&model.CallbackRegistration{}, nil)

		_, err := svc.GetRegisteredURL(ctx)

		assert.ErrorIs(t, err, service.ErrCallbackNotRegistered)
	})
}

func TestCallbackRegistry_Init(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds default when nothing registered", func(t *testing.T) {
		repo := &mocks.CallbackRepository{}
		svc := newCallbackRegistry(repo)

		repo.On("Get", ctx).Return(nil, repository.ErrCallbackNotFound)
		repo.On("Save", ctx, mock.MatchedBy(func(r *model.CallbackRegistration) bool {
			return r.CallbackURL == "https://default"
		})).Return(nil)

		assert.NoError(t, svc.Init(ctx, "https://default"))
		repo.AssertExpectations(t)
	})

	t.Run("keeps existing registration", func(t *testing.T) {
		repo := &mocks.CallbackRepository{}
		svc := newCallbackRegistry(repo)

		repo.On("Get", ctx).Return(&model.CallbackRegistration{CallbackURL: "https://merchant"}, nil)

		assert.NoError(t, svc.Init(ctx, "https://default"))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("no default configured is a no-op", func(t *testing.T) {
		repo := &mocks.CallbackRepository{}
		svc := newCallbackRegistry(repo)

		assert.NoError(t, svc.Init(ctx, ""))
		repo.AssertNotCalled(t, "Get", mock.Anything)
	})
}
