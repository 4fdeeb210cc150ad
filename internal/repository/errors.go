package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested record does not exist. Handlers map
// it to a 404.
var ErrNotFound = errors.New("record not found")

// ErrInUse is returned when a delete is blocked because other records still
// reference the row. Handlers map it to a 409.
var ErrInUse = errors.New("record still referenced")

// notFoundOr maps pgx.ErrNoRows onto ErrNotFound so callers never depend on
// driver errors.
func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// inUseOr maps foreign key violations (SQLSTATE 23503) onto ErrInUse.
func inUseOr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrInUse
	}
	return err
}
