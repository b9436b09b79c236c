package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/inventory"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

// SaleTx todos los repositorios que toca una venta, atados a la misma transacción.
type SaleTx struct {
	inventory.StockTx
	Clients repository.ClientRepository
	Users   repository.UserRepository
	Sales   repository.SaleRepository
}

// SaleTxRunner ejecuta fn en una transacción; cualquier error deshace la venta completa.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(tx SaleTx) error) error
}

// Recorder recibe el resultado de cada intento de venta (métricas).
type Recorder interface {
	SaleRegistered(total decimal.Decimal, lines int)
	SaleRejected(reason string)
}

// ReceiptGenerator genera el comprobante de venta en PDF.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, client *entity.Client) ([]byte, error)
}

type nopRecorder struct{}

func (nopRecorder) SaleRegistered(decimal.Decimal, int) {}
func (nopRecorder) SaleRejected(string)                 {}
