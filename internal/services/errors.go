package services

import (
	"errors"
	"fmt"

	"boutique/internal/repositories"
)

var (
	// ErrValidation marks input rejected before any write.
	ErrValidation = errors.New("validation failed")
	// ErrFileTooLarge is the validation error for oversize uploads.
	ErrFileTooLarge = fmt.Errorf("%w: file too large", ErrValidation)
	// ErrUnauthorized marks a missing, invalid or foreign credential.
	ErrUnauthorized = errors.New("not authorized")
	// ErrNotFound is shared with the repositories so store misses match too.
	ErrNotFound = repositories.ErrNotFound
	// ErrConflict marks a write that lost against a unique key.
	ErrConflict = errors.New("conflict")
)
