package repository

import (
	"errors"
	"fmt"
	"strings"

	"recipemarket/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrDuplicate is a unique constraint violation.
	ErrDuplicate = fmt.Errorf("%w: duplicate key", domain.ErrConflict)
	// ErrStaleWrite means the row vanished or changed between read and write.
	ErrStaleWrite = fmt.Errorf("%w: row changed before commit", domain.ErrConflict)
	// ErrInUse means the row is still referenced by other records.
	ErrInUse = fmt.Errorf("%w: row is referenced by other records", domain.ErrConflict)
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "SQLSTATE 23505")
}

// notFound converts gorm's missing-row error into the domain kind.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
