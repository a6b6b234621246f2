package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// translateError maps driver errors to storage sentinels. Errors without a
// sentinel are returned unchanged.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrDuplicate
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return storage.ErrDuplicate
	}

	return err
}
