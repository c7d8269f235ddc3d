package services

import "errors"

type ErrorCode string

const (
	ErrorInvalid           ErrorCode = "invalid"
	ErrorNotFound          ErrorCode = "not_found"
	ErrorUnauthorized      ErrorCode = "unauthorized"
	ErrorForbidden         ErrorCode = "forbidden"
	ErrorStore             ErrorCode = "store"
	ErrorUnsupportedFormat ErrorCode = "unsupported_format"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error   { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error  { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewForbiddenError(msg string) error { return &ServiceError{Code: ErrorForbidden, Message: msg} }
func NewStoreError(msg string) error     { return &ServiceError{Code: ErrorStore, Message: msg} }

func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

func NewUnsupportedFormatError(msg string) error {
	return &ServiceError{Code: ErrorUnsupportedFormat, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// storeFailure normalizes errors coming back from a store implementation:
// ServiceErrors pass through, anything else (driver faults, connectivity)
// surfaces as a store error. Retrying is the caller's responsibility.
func storeFailure(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsServiceError(err); ok {
		return err
	}
	return NewStoreError(err.Error())
}
