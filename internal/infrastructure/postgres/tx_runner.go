package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/inventory"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
)

// Ensure TxRunner implements inventory.TxRunner and sales.SaleTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción con los repositorios de stock (productos y movimientos).
func (r *TxRunner) Run(ctx context.Context, fn func(tx inventory.StockTx) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(stockTx(tx))
	})
}

// RunSale transacción con todos los repositorios que participan de una venta.
func (r *TxRunner) RunSale(ctx context.Context, fn func(tx sales.SaleTx) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(sales.SaleTx{
			StockTx: stockTx(tx),
			Clients: NewClientRepository(tx),
			Users:   NewUserRepository(tx),
			Sales:   NewSaleRepository(tx),
		})
	})
}

func stockTx(q Querier) inventory.StockTx {
	return inventory.StockTx{Products: NewProductRepository(q), Movements: NewStockMovementRepository(q)}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
