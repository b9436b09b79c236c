package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnit unidad de medida por defecto.
const DefaultUnit = "Unidad"

// Product representa un producto del inventario.
// Stock solo cambia por edición administrativa o por movimientos (venta, entrada).
type Product struct {
	ID           string
	Name         string
	CategoryID   string // vacío si no tiene categoría
	CategoryName string // solo lectura, se llena en listados
	Stock        int
	Price        decimal.Decimal // 2 decimales
	Unit         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
