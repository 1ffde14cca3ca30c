package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/Behyna/collect-gateway/internal/repository"
	"github.com/Behyna/collect-gateway/internal/validator"
	"go.uber.org/zap"
)

type CallbackRegistryService interface {
	Register(ctx context.Context, cmd RegisterCallbackCommand) error
	GetRegisteredURL(ctx context.Context) (string, error)
	Init(ctx context.Context, defaultURL string) error
}

type callbackRegistry struct {
	repo      repository.CallbackRepository
	validator validator.IXValidator
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewCallbackRegistryService(repo repository.CallbackRepository, validator validator.IXValidator,
	logger *zap.Logger, metrics *metrics.Metrics) CallbackRegistryService {
	return &callbackRegistry{repo: repo, validator: validator, logger: logger, metrics: metrics}
}

// Register replaces the single global callback target.
func (c *callbackRegistry) Register(ctx context.Context, cmd RegisterCallbackCommand) error {
	if errs := c.validator.Validate(cmd); len(errs) > 0 {
		c.logger.Warn("Callback registration without url")
		c.metrics.RecordCallbackRegistration("invalid")
		return NewServiceError(constants.ErrCodeMissingCallbackURL, ErrMissingCallbackURL)
	}

	if err := c.save(ctx, cmd.CallbackURL); err != nil {
		c.logger.Error("Failed to register callback url",
			zap.String("callbackURL", cmd.CallbackURL),
			zap.Error(err))
		c.metrics.RecordCallbackRegistration("error")
		return NewServiceError(ErrCodeDatabase, err)
	}

	c.logger.Info("Callback url registered", zap.String("callbackURL", cmd.CallbackURL))
	c.metrics.RecordCallbackRegistration("success")

	return nil
}

func (c *callbackRegistry) GetRegisteredURL(ctx context.Context) (string, error) {
	registration, err := c.repo.Get(ctx)
	if errors.Is(err, repository.ErrCallbackNotFound) {
		return "", NewServiceError(constants.ErrCodeCallbackNotRegistered, ErrCallbackNotRegistered)
	}

	if err != nil {
		c.logger.Error("Failed to load callback registration", zap.Error(err))
		return "", NewServiceError(ErrCodeDatabase, err)
	}

	if registration.CallbackURL == "" {
		return "", NewServiceError(constants.ErrCodeCallbackNotRegistered, ErrCallbackNotRegistered)
	}

	return registration.CallbackURL, nil
}

// Init seeds defaultURL when nothing is registered yet. An existing
// registration is kept.
func (c *callbackRegistry) Init(ctx context.Context, defaultURL string) error {
	if defaultURL == "" {
		return nil
	}

	_, err := c.GetRegisteredURL(ctx)
	if err == nil {
		c.logger.Debug("Callback already registered, keeping it")
		return nil
	}

	if !errors.Is(err, ErrCallbackNotRegistered) {
		return err
	}

	if err := c.save(ctx, defaultURL); err != nil {
		c.logger.Error("Failed to seed default callback url", zap.Error(err))
		return NewServiceError(ErrCodeDatabase, err)
	}

	c.logger.Info("Default callback url registered", zap.String("callbackURL", defaultURL))

	return nil
}

func (c *callbackRegistry) save(ctx context.Context, url string) error {
	start := time.Now()

	err := c.repo.Save(ctx, &model.CallbackRegistration{
		ID:          model.CallbackRegistrationID,
		CallbackURL: url,
		UpdatedAt:   time.Now(),
	})

	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordDBQuery("upsert", "callbacks", status, time.Since(start))

	return err
}
