package sqlite

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
)

// Querier lo común entre *sqlx.DB y *sqlx.Tx.
type Querier interface {
	sqlx.ExtContext
}

// timeLayout ancho fijo y en UTC para que el orden lexicográfico coincida con el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// mapWriteError traduce violaciones de constraints del driver a errores de dominio.
func mapWriteError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return domain.ErrDuplicate
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return domain.ErrReferenced
	}
	return err
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var timeNow = time.Now
