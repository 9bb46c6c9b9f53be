package repository

import (
	"errors"
	"strings"

	"ai-calling-agent/internal/domain/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isDuplicateKeyError checks if the error is a unique constraint violation,
// either translated by gorm or a raw PostgreSQL 23505.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

// notFound maps gorm.ErrRecordNotFound to the domain NotFoundError.
func notFound(err error, entityName, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entityName, id)
	}
	return err
}

func newID() string {
	return uuid.NewString()
}

// orderAppointments sorts by date then time; both names are quoted because
// they are keywords in PostgreSQL.
const orderAppointments = `"date" ASC, "time" ASC`
