package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o editar un producto.
// Price y Stock son punteros para distinguir "no enviado" de cero.
type ProductRequest struct {
	Name       string           `json:"name"`
	CategoryID string           `json:"category_id"`
	Stock      *int             `json:"stock"`
	Price      *decimal.Decimal `json:"price"`
	Unit       string           `json:"unit"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	Unit         string          `json:"unit"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
