package service

import "errors"

const (
	ErrCodeDatabase = "DATABASE_ERROR"
)

var (
	ErrMissingRequiredFields = errors.New("MISSING_REQUIRED_FIELDS")
	ErrMissingOrderID        = errors.New("MISSING_ORDER_ID")
	ErrMissingCallbackURL    = errors.New("MISSING_CALLBACK_URL")
	ErrDuplicateExternalID   = errors.New("DUPLICATE_EXTERNAL_ID")
	ErrTransactionNotFound   = errors.New("TRANSACTION_NOT_FOUND")
	ErrCallbackNotRegistered = errors.New("CALLBACK_NOT_REGISTERED")
	ErrDispatchInterrupted   = errors.New("DISPATCH_INTERRUPTED")
	ErrDatabase              = errors.New("DATABASE_ERROR")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
