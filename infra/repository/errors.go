package repository

import (
	"errors"
	"fmt"

	"github.com/amirasaad/spendwise/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors found anywhere in the chain to
// domain errors. Unknown errors are returned unchanged.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return err
}

// WrapError runs a GORM operation and maps its error.
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
