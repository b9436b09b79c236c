// Package sqlitetest helpers de prueba: base SQLite temporal con esquema y datos mínimos.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite"
)

// Open crea una base en un directorio temporal del test; se cierra al terminar.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SeedUser inserta un usuario activo con el rol indicado.
func SeedUser(t testing.TB, db *sqlx.DB, username, role string) *entity.User {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		FullName:     username,
		PasswordHash: "x",
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, sqlite.NewUserRepository(db).Create(context.Background(), u))
	return u
}

// SeedClient inserta un cliente sin documento.
func SeedClient(t testing.TB, db *sqlx.DB, fullName string) *entity.Client {
	t.Helper()
	c := &entity.Client{ID: uuid.New().String(), FullName: fullName, CreatedAt: time.Now().UTC()}
	require.NoError(t, sqlite.NewClientRepository(db).Create(context.Background(), c))
	return c
}

// SeedProduct inserta un producto sin categoría con precio en texto ("2.50").
func SeedProduct(t testing.TB, db *sqlx.DB, name string, stock int, price string) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Stock:     stock,
		Price:     decimal.RequireFromString(price),
		Unit:      entity.DefaultUnit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, sqlite.NewProductRepository(db).Create(context.Background(), p))
	return p
}

// Stock lee el stock actual del producto.
func Stock(t testing.TB, db *sqlx.DB, productID string) int {
	t.Helper()
	p, err := sqlite.NewProductRepository(db).GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// Count filas de una tabla.
func Count(t testing.TB, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
