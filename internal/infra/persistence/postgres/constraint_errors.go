package postgres

import (
	"identity/internal/errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	usernameUniqueConstraint = "users_username_key"
	emailUniqueConstraint    = "users_email_key"
)

// uniqueViolation reports whether err is a unique-constraint violation and,
// when the driver exposes it, the name of the violated constraint.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgerrcode.UniqueViolation
	}

	return "", errors.Is(err, gorm.ErrDuplicatedKey)
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.CheckViolation
	}

	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}
