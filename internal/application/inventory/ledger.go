package inventory

import (
	"context"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

// LedgerUseCase consulta del libro de movimientos (solo lectura).
type LedgerUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(movRepo repository.StockMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{movRepo: movRepo}
}

// List devuelve los movimientos más recientes primero, opcionalmente de un solo producto.
func (uc *LedgerUseCase) List(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ProductID: productID,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
