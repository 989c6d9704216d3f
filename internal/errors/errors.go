package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"sheetboard/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeOf(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if err is or wraps an AppError, otherwise the code derived from domain sentinels
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeOf(err)
}

// Predefined error codes
const (
	CodeConfigInvalid         = "CONFIG_INVALID"
	CodeDatabaseError         = "DATABASE_ERROR"
	CodeValidationError       = "VALIDATION_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeInternalError         = "INTERNAL_ERROR"
	CodeClassifierUnavailable = "CLASSIFIER_UNAVAILABLE"
	CodeClassifierRateLimited = "CLASSIFIER_RATE_LIMITED"
	CodeClassifierBadOutput   = "CLASSIFIER_BAD_OUTPUT"
	CodeClassifierTransport   = "CLASSIFIER_TRANSPORT"
)

// CodeOf derives an error code from the domain error families
func CodeOf(err error) string {
	switch {
	case err == nil:
		return ""
	case core.IsInputError(err):
		return CodeValidationError
	case stderrors.Is(err, core.ErrClassifierUnavailable):
		return CodeClassifierUnavailable
	case stderrors.Is(err, core.ErrClassifierRateLimited):
		return CodeClassifierRateLimited
	case stderrors.Is(err, core.ErrClassifierBadOutput):
		return CodeClassifierBadOutput
	case core.IsClassifierError(err):
		return CodeClassifierTransport
	case core.IsNotFoundError(err):
		return CodeNotFound
	case stderrors.Is(err, core.ErrPersistence):
		return CodeDatabaseError
	default:
		return CodeInternalError
	}
}

// HTTPStatus maps an error to the status code transports answer with
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeValidationError:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeClassifierUnavailable:
		return http.StatusServiceUnavailable
	case CodeClassifierRateLimited:
		return http.StatusTooManyRequests
	case CodeClassifierBadOutput, CodeClassifierTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}
