package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterSaleRequest entrada para registrar una venta. El vendedor sale del token.
type RegisterSaleRequest struct {
	ClientID string            `json:"client_id"`
	Lines    []SaleLineRequest `json:"lines"`
}

// SaleLineRequest una línea de la venta. Sin unit_price se toma el precio vigente del producto.
type SaleLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// SaleLineResponse línea persistida.
type SaleLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID         string             `json:"id"`
	ClientID   string             `json:"client_id"`
	ClientName string             `json:"client_name,omitempty"`
	SellerID   string             `json:"seller_id"`
	SellerName string             `json:"seller_name,omitempty"`
	Total      decimal.Decimal    `json:"total"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	Lines      []SaleLineResponse `json:"lines,omitempty"`
}

// SaleListResponse lista paginada de ventas (sin líneas).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
