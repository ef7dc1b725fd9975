package services

import (
	"errors"
	"fmt"

	"inventory_backend/internal/policy"
	"inventory_backend/internal/repositories"
	"inventory_backend/internal/validation"
)

// Errors shared by every service. Handlers map them to HTTP status codes.
var (
	// ErrValidation matches every validation.Errors value returned by a service.
	ErrValidation = validation.ErrInvalid
	// ErrForbidden is returned when the record exists but belongs to another user.
	ErrForbidden = policy.ErrForbidden
	ErrNotFound  = errors.New("resource not found")
	ErrInUse     = errors.New("resource cannot be deleted while products reference it")
)

// QuickSearchLimit caps quick search results and the form lookups of the product list.
const QuickSearchLimit = 10

// translateRepoError maps repository sentinels onto service errors.
func translateRepoError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrForeignKey):
		return fmt.Errorf("%w: %s", ErrInUse, action)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
