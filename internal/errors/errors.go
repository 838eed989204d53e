package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyAssigned  = errors.New("plan already assigned")
	ErrAlreadyPaid      = errors.New("invoice already paid")
	ErrPaymentFailed    = errors.New("payment failed")
	ErrValidation       = errors.New("validation error")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrDatabase         = errors.New("database error")
	ErrSystem           = errors.New("system error")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:         http.StatusNotFound,
		ErrAlreadyAssigned:  http.StatusBadRequest,
		ErrAlreadyPaid:      http.StatusBadRequest,
		ErrPaymentFailed:    http.StatusPaymentRequired,
		ErrValidation:       http.StatusBadRequest,
		ErrInvalidOperation: http.StatusBadRequest,
		ErrDatabase:         http.StatusInternalServerError,
		ErrSystem:           http.StatusInternalServerError,
	}
)

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyAssigned checks if an error is a plan-change no-op error
func IsAlreadyAssigned(err error) bool {
	return errors.Is(err, ErrAlreadyAssigned)
}

// IsAlreadyPaid checks if an error is a double-settlement guard error
func IsAlreadyPaid(err error) bool {
	return errors.Is(err, ErrAlreadyPaid)
}

// IsPaymentFailed checks if an error is a simulated decline (retry scheduled)
func IsPaymentFailed(err error) bool {
	return errors.Is(err, ErrPaymentFailed)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
