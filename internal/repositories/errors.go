package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the referenced id does not exist or is not
	// visible under the applied ownership scope.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a uniqueness rule was broken or a foreign key
	// would dangle.
	ErrConflict = errors.New("constraint violation")
	// ErrUnavailable means the store did not answer within its deadline.
	// No retry happens at this layer.
	ErrUnavailable = errors.New("store unavailable")
)

// translate maps gorm/database errors onto the repository sentinels.
// Requires gorm.Config{TranslateError: true} on the connection.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrUnavailable
	}
	return err
}
