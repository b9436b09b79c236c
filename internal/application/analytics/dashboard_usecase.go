// Package analytics contiene el resumen de la pantalla de inicio.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/usecase"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

// DashboardUseCase arma el resumen: última venta, último producto, total vendido y cantidad de productos.
//
// Solo lectura; no participa de transacciones y tolera datos levemente desactualizados.
type DashboardUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{saleRepo: saleRepo, productRepo: productRepo}
}

// GetSummary ejecuta las cuatro consultas en paralelo y compone el DTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	type saleResult struct {
		sale *entity.Sale
		err  error
	}
	type productResult struct {
		product *entity.Product
		err     error
	}
	type totalResult struct {
		total decimal.Decimal
		err   error
	}
	type countResult struct {
		count int
		err   error
	}

	saleCh := make(chan saleResult, 1)
	productCh := make(chan productResult, 1)
	totalCh := make(chan totalResult, 1)
	countCh := make(chan countResult, 1)

	go func() {
		s, err := uc.saleRepo.Latest(ctx)
		saleCh <- saleResult{s, err}
	}()
	go func() {
		p, err := uc.productRepo.Latest(ctx)
		productCh <- productResult{p, err}
	}()
	go func() {
		t, err := uc.saleRepo.SumTotals(ctx)
		totalCh <- totalResult{t, err}
	}()
	go func() {
		n, err := uc.productRepo.Count(ctx)
		countCh <- countResult{n, err}
	}()

	last := <-saleCh
	product := <-productCh
	total := <-totalCh
	count := <-countCh

	if last.err != nil {
		return nil, fmt.Errorf("dashboard: última venta: %w", last.err)
	}
	if product.err != nil {
		return nil, fmt.Errorf("dashboard: último producto: %w", product.err)
	}
	if total.err != nil {
		return nil, fmt.Errorf("dashboard: total vendido: %w", total.err)
	}
	if count.err != nil {
		return nil, fmt.Errorf("dashboard: cantidad de productos: %w", count.err)
	}

	out := &dto.DashboardResponse{
		SalesTotal:   total.total,
		ProductCount: count.count,
	}
	if last.sale != nil {
		s := sales.ToSaleResponse(last.sale)
		out.LastSale = &s
	}
	if product.product != nil {
		out.LastProduct = usecase.ToProductResponse(product.product)
	}
	return out, nil
}
