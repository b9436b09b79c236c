package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx; los repos lo reciben para funcionar con pool o tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503), p. ej. DELETE bloqueado por RESTRICT.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// isStringTooLong valor que excede un VARCHAR (22001).
func isStringTooLong(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22001" // string_data_right_truncation
}

// mapWriteError traduce violaciones conocidas a errores de dominio.
func mapWriteError(err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrReferenced
	case isStringTooLong(err):
		return domain.NewValidationError("", "un valor excede el largo máximo permitido")
	}
	return err
}

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isUUID evita enviar a PostgreSQL ids mal formados (error de sintaxis en columnas UUID).
// Un id inválido se trata como inexistente.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
