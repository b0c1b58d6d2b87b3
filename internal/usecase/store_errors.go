package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/cricket-fantasy/internal/platform/storage"
)

var taxonomy = []error{
	ErrInvalidInput,
	ErrNotFound,
	ErrForbidden,
	ErrInvalidState,
	ErrConflict,
	ErrUnauthorized,
	ErrDependencyUnavailable,
}

// storeError keeps errors that already carry a taxonomy kind, translates
// storage sentinels and marks everything else as a dependency failure.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, op, err)
	}
	for _, kind := range taxonomy {
		if errors.Is(err, kind) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
}
