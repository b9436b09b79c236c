package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/inventory"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite (BEGIN IMMEDIATE por DSN).
type TxRunner struct {
	db *sqlx.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sqlx.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run transacción con los repositorios de stock.
func (r *TxRunner) Run(ctx context.Context, fn func(tx inventory.StockTx) error) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return fn(inventory.StockTx{
			Products:  NewProductRepository(tx),
			Movements: NewStockMovementRepository(tx),
		})
	})
}

// RunSale transacción con todos los repositorios de una venta.
func (r *TxRunner) RunSale(ctx context.Context, fn func(tx sales.SaleTx) error) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return fn(sales.SaleTx{
			StockTx: inventory.StockTx{
				Products:  NewProductRepository(tx),
				Movements: NewStockMovementRepository(tx),
			},
			Clients: NewClientRepository(tx),
			Users:   NewUserRepository(tx),
			Sales:   NewSaleRepository(tx),
		})
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
