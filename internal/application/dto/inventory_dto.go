package dto

import "time"

// InboundRequest entrada de mercadería (reposición de stock).
type InboundRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

// MovementResponse un registro del libro de movimientos.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Type        string    `json:"type"`
	SaleID      string    `json:"sale_id,omitempty"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
