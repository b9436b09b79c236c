// Package sqlite adaptador de persistencia embebido (modernc.org/sqlite, sin cgo) para instalaciones de un solo equipo.
package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open abre (o crea) la base en path y aplica el esquema.
//
// Se usa una sola conexión y transacciones BEGIN IMMEDIATE: las ventas concurrentes se serializan
// y la verificación de stock de una ve siempre lo que confirmó la anterior.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Set("_txlock", "immediate")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + q.Encode()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		name_key    TEXT NOT NULL UNIQUE,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		name_key     TEXT NOT NULL UNIQUE,
		category_id  TEXT REFERENCES categories(id) ON DELETE SET NULL,
		stock        INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		price        TEXT NOT NULL,
		unit         TEXT NOT NULL DEFAULT 'Unidad',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id          TEXT PRIMARY KEY,
		full_name   TEXT NOT NULL UNIQUE,
		tax_id      TEXT UNIQUE,
		address     TEXT NOT NULL DEFAULT '',
		phone       TEXT NOT NULL DEFAULT '',
		email       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id             TEXT PRIMARY KEY,
		username       TEXT NOT NULL UNIQUE,
		full_name      TEXT NOT NULL,
		email          TEXT NOT NULL DEFAULT '',
		password_hash  TEXT NOT NULL,
		role           TEXT NOT NULL CHECK (role IN ('admin', 'vendedor')),
		active         INTEGER NOT NULL DEFAULT 1,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		seller_id   TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		total       TEXT NOT NULL DEFAULT '0',
		status      TEXT NOT NULL DEFAULT 'paid',
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sale_lines (
		id          TEXT PRIMARY KEY,
		sale_id     TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id  TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
		quantity    INTEGER NOT NULL CHECK (quantity > 0),
		unit_price  TEXT NOT NULL,
		subtotal    TEXT NOT NULL,
		UNIQUE (sale_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id          TEXT PRIMARY KEY,
		product_id  TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
		quantity    INTEGER NOT NULL,
		type        TEXT NOT NULL CHECK (type IN ('inbound', 'outbound')),
		sale_id     TEXT REFERENCES sales(id) ON DELETE SET NULL,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		note        TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		CHECK ((type = 'inbound' AND quantity > 0) OR (type = 'outbound' AND quantity < 0))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_lines_sale ON sale_lines (sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_created_at ON stock_movements (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_product ON stock_movements (product_id)`,
}

// Migrate crea las tablas si no existen. Es idempotente.
func Migrate(ctx context.Context, db sqlx.ExecerContext) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: sentencia %d: %w", i+1, err)
		}
	}
	return nil
}
