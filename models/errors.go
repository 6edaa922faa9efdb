package models

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryReference is returned when a product points at a category
	// that does not exist.
	ErrCategoryReference = errors.New("category does not exist")

	// ErrDuplicate is returned when a write collides with an existing key.
	ErrDuplicate = errors.New("record already exists")
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// translateError maps driver specific failures onto the package sentinels.
// Errors it does not recognise are wrapped with op.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrCategoryReference)
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
	}

	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, ErrCategoryReference)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}

	return fmt.Errorf("%s: %w", op, err)
}
