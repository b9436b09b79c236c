package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

// RegisterInboundUseCase registra entradas de mercadería (reposición) de forma transaccional.
type RegisterInboundUseCase struct {
	txRunner TxRunner
}

// NewRegisterInboundUseCase construye el caso de uso.
func NewRegisterInboundUseCase(txRunner TxRunner) *RegisterInboundUseCase {
	return &RegisterInboundUseCase{txRunner: txRunner}
}

// RegisterInbound bloquea la fila del producto, suma la cantidad y guarda el movimiento IN.
func (uc *RegisterInboundUseCase) RegisterInbound(ctx context.Context, userID string, in dto.InboundRequest) (*dto.MovementResponse, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	if in.ProductID == "" {
		return nil, domain.NewValidationError("product_id", "es requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	var out *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(tx StockTx) error {
		product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.NotFoundError{Entity: "producto", ID: in.ProductID}
		}
		mov, err := recordInboundInTx(ctx, tx, product.ID, in.Quantity, userID, strings.TrimSpace(in.Note), now)
		if err != nil {
			return err
		}
		mov.ProductName = product.Name
		r := toMovementResponse(mov)
		out = &r
		return nil
	})
	if err != nil {
		return nil, domain.Integrity("registrar entrada", err)
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Type:        m.Type,
		SaleID:      m.SaleID,
		UserID:      m.UserID,
		Username:    m.Username,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt,
	}
}
