// Package storage arma los repositorios según el motor configurado (PostgreSQL o SQLite).
package storage

import (
	"context"
	"fmt"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/inventory"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/postgres"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/sqlite"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/config"
)

// TxRunner transacciones de inventario y de venta.
type TxRunner interface {
	inventory.TxRunner
	sales.SaleTxRunner
}

// Storage repositorios listos para usar más el cierre de la conexión.
type Storage struct {
	Driver     string
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Clients    repository.ClientRepository
	Users      repository.UserRepository
	Sales      repository.SaleRepository
	Movements  repository.StockMovementRepository
	Tx         TxRunner

	close func()
}

// Close libera la conexión subyacente.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta al motor indicado en cfg.Driver y aplica el esquema.
func Open(ctx context.Context, cfg config.DBConfig) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Storage{
			Driver:     config.DriverPostgres,
			Categories: postgres.NewCategoryRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Clients:    postgres.NewClientRepository(pool),
			Users:      postgres.NewUserRepository(pool),
			Sales:      postgres.NewSaleRepository(pool),
			Movements:  postgres.NewStockMovementRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Driver:     config.DriverSQLite,
			Categories: sqlite.NewCategoryRepository(db),
			Products:   sqlite.NewProductRepository(db),
			Clients:    sqlite.NewClientRepository(db),
			Users:      sqlite.NewUserRepository(db),
			Sales:      sqlite.NewSaleRepository(db),
			Movements:  sqlite.NewStockMovementRepository(db),
			Tx:         sqlite.NewTxRunner(db),
			close:      func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
	}
}
