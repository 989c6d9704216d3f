package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInputValidation    = errors.New("invalid input")
	ErrMissingFile        = fmt.Errorf("%w: no file uploaded", ErrInputValidation)
	ErrMissingDescription = fmt.Errorf("%w: description is required", ErrInputValidation)
	ErrUnsupportedFile    = fmt.Errorf("%w: unsupported file type", ErrInputValidation)
	ErrEmptySheet         = fmt.Errorf("%w: sheet has no rows", ErrInputValidation)
	ErrNoHeaders          = fmt.Errorf("%w: header row has no non-empty cells", ErrInputValidation)
	ErrInvalidBriefing    = fmt.Errorf("%w: briefing does not match the sheet", ErrInputValidation)

	// Classifier errors
	ErrClassifier            = errors.New("classifier failure")
	ErrClassifierUnavailable = fmt.Errorf("%w: credential not configured", ErrClassifier)
	ErrClassifierRateLimited = fmt.Errorf("%w: rate limited", ErrClassifier)
	ErrClassifierBadOutput   = fmt.Errorf("%w: unparseable output", ErrClassifier)
	ErrClassifierTransport   = fmt.Errorf("%w: transport error", ErrClassifier)

	// Persistence errors
	ErrPersistence = errors.New("persistence failure")
	ErrNotFound    = errors.New("resource not found")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewPersistenceError(entity string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, entity, err)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrInputValidation)
}

func IsClassifierError(err error) bool {
	return errors.Is(err, ErrClassifier)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
