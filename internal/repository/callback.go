package repository

import (
	"context"
	"errors"

	"github.com/Behyna/collect-gateway/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCallbackNotFound = errors.New("CALLBACK_NOT_FOUND")

type CallbackRepository interface {
	Save(ctx context.Context, registration *model.CallbackRegistration) error
	Get(ctx context.Context) (*model.CallbackRegistration, error)
}

type Callback struct {
	db *gorm.DB
}

func NewCallbackRepository(db *gorm.DB) CallbackRepository {
	return &Callback{db: db}
}

// Save replaces the singleton registration.
func (c *Callback) Save(ctx context.Context, registration *model.CallbackRegistration) error {
	registration.ID = model.CallbackRegistrationID

	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"callback_url", "updated_at"}),
		}).
		Create(registration).Error
}

func (c *Callback) Get(ctx context.Context) (*model.CallbackRegistration, error) {
	var registration model.CallbackRegistration

	err := c.db.WithContext(ctx).Where("id = ?", model.CallbackRegistrationID).First(&registration).Error
	if err == nil {
		return &registration, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCallbackNotFound
	}

	return nil, err
}
