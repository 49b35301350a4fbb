package persistence

import (
	"errors"
	"fmt"

	"github.com/bistro/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// storeErr maps GORM errors onto the domain sentinels and wraps the rest with op.
// It relies on gorm.Config.TranslateError for dialect-independent duplicate keys.
func storeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// affected reports ErrNotFound for a write that matched no row
func affected(op string, result *gorm.DB) error {
	if result.Error != nil {
		return storeErr(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
