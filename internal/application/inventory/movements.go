package inventory

import (
	"context"
	"time"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

// RecordOutboundInTx registra una salida con los repositorios de la transacción del caller:
// guarda el movimiento con cantidad negativa y descuenta el stock con un UPDATE condicional.
// Si otra transacción consumió el stock antes, retorna InsufficientStockError y el caller hace rollback.
func RecordOutboundInTx(
	ctx context.Context,
	tx StockTx,
	product *entity.Product,
	quantity int,
	saleID, userID string,
	now time.Time,
) error {
	mov, err := entity.NewStockMovement(product.ID, userID, saleID, entity.MovementTypeOutbound, -quantity, "", now)
	if err != nil {
		return err
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return err
	}
	ok, err := tx.Products.DecrementStock(ctx, product.ID, quantity)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	available := 0
	current, err := tx.Products.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if current != nil {
		available = current.Stock
	}
	return &domain.InsufficientStockError{
		ProductID:   product.ID,
		ProductName: product.Name,
		Available:   available,
		Requested:   quantity,
	}
}

// recordInboundInTx suma stock y guarda el movimiento de entrada.
func recordInboundInTx(
	ctx context.Context,
	tx StockTx,
	productID string,
	quantity int,
	userID, note string,
	now time.Time,
) (*entity.StockMovement, error) {
	mov, err := entity.NewStockMovement(productID, userID, "", entity.MovementTypeInbound, quantity, note, now)
	if err != nil {
		return nil, err
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := tx.Products.IncrementStock(ctx, productID, quantity); err != nil {
		return nil, err
	}
	return mov, nil
}
