package callbackclient

import (
	"errors"
	"net/http"
)

const (
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeNetworkError     = "NETWORK_ERROR"
	ErrCodeClientError      = "CLIENT_ERROR"
	ErrCodeServerError      = "SERVER_ERROR"
	ErrCodeUnexpectedStatus = "UNEXPECTED_STATUS"
)

var (
	ErrTimeout          = errors.New(ErrCodeTimeout)
	ErrNetwork          = errors.New(ErrCodeNetworkError)
	ErrClientError      = errors.New(ErrCodeClientError)
	ErrServerError      = errors.New(ErrCodeServerError)
	ErrUnexpectedStatus = errors.New(ErrCodeUnexpectedStatus)
)

// MapStatusToError classifies a non-2xx callback response.
func MapStatusToError(statusCode int) error {
	switch {
	case statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError:
		return ErrClientError
	case statusCode >= http.StatusInternalServerError:
		return ErrServerError
	default:
		return ErrUnexpectedStatus
	}
}
