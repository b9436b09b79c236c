package inventory

import (
	"context"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

// StockTx repositorios atados a una misma transacción. Todo cambio de stock se hace a través de
// Products y va acompañado de su registro en Movements.
type StockTx struct {
	Products  repository.ProductRepository
	Movements repository.StockMovementRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si retorna nil, rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx StockTx) error) error
}
