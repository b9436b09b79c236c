package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
)

// Tipos de movimiento de stock.
const (
	MovementTypeInbound  = "inbound"  // entrada (compra, reposición)
	MovementTypeOutbound = "outbound" // salida (venta)
)

// StockMovement entrada inmutable del libro de movimientos de stock.
// Quantity lleva signo: positivo en entradas, negativo en salidas.
type StockMovement struct {
	ID          string
	ProductID   string
	ProductName string // solo lectura, listados
	Quantity    int
	Type        string
	SaleID      string // vacío si no proviene de una venta o si la venta se borró
	UserID      string
	Username    string // solo lectura, listados
	Note        string
	CreatedAt   time.Time
}

// NewStockMovement construye un movimiento validando que el signo coincida con el tipo.
func NewStockMovement(productID, userID, saleID, movType string, quantity int, note string, now time.Time) (*StockMovement, error) {
	switch movType {
	case MovementTypeInbound:
		if quantity <= 0 {
			return nil, domain.NewValidationError("quantity", "una entrada debe tener cantidad positiva")
		}
	case MovementTypeOutbound:
		if quantity >= 0 {
			return nil, domain.NewValidationError("quantity", "una salida debe tener cantidad negativa")
		}
	default:
		return nil, domain.NewValidationError("type", "tipo de movimiento inválido")
	}
	return &StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  quantity,
		Type:      movType,
		SaleID:    saleID,
		UserID:    userID,
		Note:      note,
		CreatedAt: now,
	}, nil
}
