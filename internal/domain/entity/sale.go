package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
)

// SaleStatusPaid estado por defecto de una venta.
const SaleStatusPaid = "paid"

// Sale cabecera de venta. Es dueña de sus líneas; Total siempre se deriva de ellas.
type Sale struct {
	ID         string
	ClientID   string
	ClientName string // solo lectura
	SellerID   string
	SellerName string // solo lectura
	Total      decimal.Decimal
	Status     string
	CreatedAt  time.Time
	Lines      []*SaleLine
}

// NewSale crea la cabecera con total 0 y estado pagada.
func NewSale(clientID, sellerID string, now time.Time) *Sale {
	return &Sale{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		SellerID:  sellerID,
		Total:     decimal.Zero,
		Status:    SaleStatusPaid,
		CreatedAt: now,
	}
}

// AddLine agrega la línea y recalcula el total.
func (s *Sale) AddLine(l *SaleLine) {
	l.SaleID = s.ID
	s.Lines = append(s.Lines, l)
	s.RecomputeTotal()
}

// RecomputeTotal suma exacta de los subtotales de las líneas.
func (s *Sale) RecomputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Subtotal)
	}
	s.Total = total
	return total
}

// SaleLine detalle de venta. UnitPrice es una foto del precio al momento de vender.
type SaleLine struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // solo lectura
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// NewSaleLine valida cantidad y precio y calcula el subtotal (cantidad × precio unitario).
func NewSaleLine(productID string, quantity int, unitPrice decimal.Decimal) (*SaleLine, error) {
	if productID == "" {
		return nil, domain.NewValidationError("product_id", "es requerido")
	}
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	if unitPrice.IsNegative() {
		return nil, domain.NewValidationError("unit_price", "no puede ser negativo")
	}
	if unitPrice.Exponent() < -2 && !unitPrice.Equal(unitPrice.Round(2)) {
		return nil, domain.NewValidationError("unit_price", "admite como máximo 2 decimales")
	}
	return &SaleLine{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}
