package validator

import (
	"errors"
	"time"

	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/go-playground/validator/v10"
)

type Error struct {
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(metrics *metrics.Metrics) IXValidator {
	return &XValidator{
		validator: validator.New(validator.WithRequiredStructEnabled()),
		metrics:   metrics,
	}
}

// Validate checks the struct tags of data and returns one Error per failed
// field. Empty result means data is valid.
func (x *XValidator) Validate(data interface{}) []Error {
	start := time.Now()

	err := x.validator.Struct(data)
	if err == nil {
		x.recordDuration("validation_success", start)
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		x.recordDuration("validation_error", start)
		return []Error{{Tag: "invalid"}}
	}

	result := make([]Error, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		result = append(result, Error{
			FailedField: fieldErr.Field(),
			Tag:         fieldErr.Tag(),
			Value:       fieldErr.Value(),
		})

		if x.metrics != nil {
			x.metrics.RecordValidationError(fieldErr.Field(), fieldErr.Tag())
		}
	}

	x.recordDuration("validation_error", start)

	return result
}

func (x *XValidator) recordDuration(outcome string, start time.Time) {
	if x.metrics != nil {
		x.metrics.RecordValidationDuration(outcome, time.Since(start))
	}
}
