package sales

import (
	"context"
	"fmt"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta ya registrada.
type ReceiptUseCase struct {
	query      *QueryUseCase
	clientRepo repository.ClientRepository
	generator  ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(query *QueryUseCase, clientRepo repository.ClientRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{query: query, clientRepo: clientRepo, generator: generator}
}

// DownloadReceipt devuelve los bytes del PDF y un nombre de archivo sugerido.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.query.GetSale(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	client, err := uc.clientRepo.GetByID(ctx, sale.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener cliente: %w", err)
	}
	if client == nil {
		return nil, "", &domain.NotFoundError{Entity: "cliente", ID: sale.ClientID}
	}
	pdf, err := uc.generator.GenerateSaleReceipt(ctx, sale, client)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("venta-%s.pdf", shortID(sale.ID)), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
