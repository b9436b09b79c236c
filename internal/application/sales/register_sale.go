package sales

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/inventory"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

// LineInput una línea pedida. UnitPrice nil toma el precio vigente del producto.
type LineInput struct {
	ProductID string
	Quantity  int
	UnitPrice *decimal.Decimal
}

// RegisterSaleUseCase registra una venta completa (cabecera, líneas, movimientos y stock) en una sola transacción.
type RegisterSaleUseCase struct {
	txRunner SaleTxRunner
	recorder Recorder
	now      func() time.Time
}

// NewRegisterSaleUseCase construye el caso de uso. recorder puede ser nil.
func NewRegisterSaleUseCase(txRunner SaleTxRunner, recorder Recorder) *RegisterSaleUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &RegisterSaleUseCase{txRunner: txRunner, recorder: recorder, now: time.Now}
}

// RegisterSale valida la entrada antes de tocar la BD y luego, dentro de la transacción:
//  1. resuelve cliente y vendedor
//  2. crea la cabecera con total 0
//  3. bloquea los productos de todas las líneas (en orden de ID)
//  4. por cada línea, en el orden recibido: verifica stock, guarda línea y movimiento OUT y descuenta stock
//  5. guarda el total recalculado desde las líneas
//
// Cualquier error deja la BD como estaba (rollback).
func (uc *RegisterSaleUseCase) RegisterSale(ctx context.Context, clientID, sellerID string, lines []LineInput) (*entity.Sale, error) {
	clientID = strings.TrimSpace(clientID)
	lines = append([]LineInput(nil), lines...)
	if err := validateRequest(clientID, sellerID, lines); err != nil {
		uc.recorder.SaleRejected(rejectReason(err))
		return nil, err
	}

	now := uc.now().UTC()
	var sale *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(tx SaleTx) error {
		client, err := tx.Clients.GetByID(ctx, clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return &domain.NotFoundError{Entity: "cliente", ID: clientID}
		}
		seller, err := tx.Users.GetByID(ctx, sellerID)
		if err != nil {
			return err
		}
		if seller == nil {
			return &domain.NotFoundError{Entity: "usuario", ID: sellerID}
		}

		s := entity.NewSale(client.ID, seller.ID, now)
		s.ClientName = client.FullName
		s.SellerName = seller.Username
		if err := tx.Sales.Create(ctx, s); err != nil {
			return err
		}

		locked, err := lockProducts(ctx, tx, lines)
		if err != nil {
			return err
		}
		for _, in := range lines {
			product := locked[in.ProductID]
			if product == nil {
				return &domain.NotFoundError{Entity: "producto", ID: in.ProductID}
			}
			if in.Quantity > product.Stock {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   in.Quantity,
				}
			}

			price := product.Price
			if in.UnitPrice != nil {
				price = *in.UnitPrice
			}
			line, err := entity.NewSaleLine(product.ID, in.Quantity, price)
			if err != nil {
				return err
			}
			line.ProductName = product.Name
			s.AddLine(line)
			if err := tx.Sales.CreateLine(ctx, line); err != nil {
				return err
			}
			if err := inventory.RecordOutboundInTx(ctx, tx.StockTx, product, in.Quantity, s.ID, seller.ID, now); err != nil {
				return err
			}
		}

		if err := tx.Sales.UpdateTotal(ctx, s.ID, s.RecomputeTotal()); err != nil {
			return err
		}
		sale = s
		return nil
	})
	if err != nil {
		uc.recorder.SaleRejected(rejectReason(err))
		return nil, domain.Integrity("registrar venta", err)
	}

	uc.recorder.SaleRegistered(sale.Total, len(sale.Lines))
	return sale, nil
}

// lockProducts bloquea las filas de los productos en orden de ID para que dos ventas con los
// mismos productos en distinto orden no se bloqueen mutuamente. Un ID inexistente queda en nil.
func lockProducts(ctx context.Context, tx SaleTx, lines []LineInput) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(lines))
	for _, in := range lines {
		ids = append(ids, in.ProductID)
	}
	slices.Sort(ids)
	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		product, err := tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = product
	}
	return locked, nil
}

// validateRequest precondiciones que se verifican sin acceder a la BD.
func validateRequest(clientID, sellerID string, lines []LineInput) error {
	if clientID == "" {
		return domain.NewValidationError("client_id", "es requerido")
	}
	if sellerID == "" {
		return domain.NewValidationError("seller_id", "es requerido")
	}
	if len(lines) == 0 {
		return domain.NewValidationError("lines", "la venta debe tener al menos una línea")
	}
	seen := make(map[string]struct{}, len(lines))
	for i := range lines {
		lines[i].ProductID = strings.TrimSpace(lines[i].ProductID)
		in := lines[i]
		price := decimal.Zero
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		if _, err := entity.NewSaleLine(in.ProductID, in.Quantity, price); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return domain.NewValidationError(fmt.Sprintf("lines[%d].%s", i, ve.Field), ve.Reason)
			}
			return err
		}
		if _, dup := seen[in.ProductID]; dup {
			return domain.NewValidationError(fmt.Sprintf("lines[%d].product_id", i), "el producto está repetido en la venta")
		}
		seen[in.ProductID] = struct{}{}
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "internal"
	}
}
