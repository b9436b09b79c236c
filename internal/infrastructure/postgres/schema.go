package postgres

import (
	"context"
	"fmt"
)

// schema tablas del sistema. Las cláusulas ON DELETE implementan la política de borrado por relación:
// categoría → SET NULL; cliente, vendedor, producto y usuario del movimiento → RESTRICT;
// líneas → CASCADE con la venta; venta en movimientos → SET NULL.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          UUID PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		name_key    TEXT NOT NULL UNIQUE,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id           UUID PRIMARY KEY,
		name         VARCHAR(200) NOT NULL,
		name_key     TEXT NOT NULL UNIQUE,
		category_id  UUID REFERENCES categories(id) ON DELETE SET NULL,
		stock        INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		price        NUMERIC(10,2) NOT NULL,
		unit         VARCHAR(50) NOT NULL DEFAULT 'Unidad',
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id          UUID PRIMARY KEY,
		full_name   VARCHAR(200) NOT NULL UNIQUE,
		tax_id      VARCHAR(20) UNIQUE,
		address     TEXT NOT NULL DEFAULT '',
		phone       VARCHAR(20) NOT NULL DEFAULT '',
		email       VARCHAR(254) NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id             UUID PRIMARY KEY,
		username       VARCHAR(150) NOT NULL UNIQUE,
		full_name      VARCHAR(200) NOT NULL,
		email          VARCHAR(254) NOT NULL DEFAULT '',
		password_hash  TEXT NOT NULL,
		role           VARCHAR(20) NOT NULL CHECK (role IN ('admin', 'vendedor')),
		active         BOOLEAN NOT NULL DEFAULT TRUE,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id          UUID PRIMARY KEY,
		client_id   UUID NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		seller_id   UUID NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		total       NUMERIC(12,2) NOT NULL DEFAULT 0,
		status      VARCHAR(20) NOT NULL DEFAULT 'paid',
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sale_lines (
		id          UUID PRIMARY KEY,
		sale_id     UUID NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id  UUID NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
		quantity    INTEGER NOT NULL CHECK (quantity > 0),
		unit_price  NUMERIC(10,2) NOT NULL CHECK (unit_price >= 0),
		subtotal    NUMERIC(12,2) NOT NULL,
		UNIQUE (sale_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id          UUID PRIMARY KEY,
		product_id  UUID NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
		quantity    INTEGER NOT NULL,
		type        VARCHAR(10) NOT NULL CHECK (type IN ('inbound', 'outbound')),
		sale_id     UUID REFERENCES sales(id) ON DELETE SET NULL,
		user_id     UUID NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		note        TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		CHECK ((type = 'inbound' AND quantity > 0) OR (type = 'outbound' AND quantity < 0))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_lines_sale ON sale_lines (sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_created_at ON stock_movements (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_product ON stock_movements (product_id)`,
	// name_key puede ser más largo que name tras el plegado Unicode.
	`ALTER TABLE categories ALTER COLUMN name_key TYPE TEXT`,
	`ALTER TABLE products ALTER COLUMN name_key TYPE TEXT`,
}

// Migrate crea las tablas si no existen. Es idempotente.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: sentencia %d: %w", i+1, err)
		}
	}
	return nil
}
