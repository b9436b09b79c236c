package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen de la pantalla de inicio.
type DashboardResponse struct {
	LastSale     *SaleResponse    `json:"last_sale,omitempty"`
	LastProduct  *ProductResponse `json:"last_product,omitempty"`
	SalesTotal   decimal.Decimal  `json:"sales_total"`
	ProductCount int              `json:"product_count"`
}
