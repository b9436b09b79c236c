package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
// Stock se puede fijar aquí (edición administrativa); el resto de cambios van por movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{ID: uuid.New().String()}
	if err := uc.apply(ctx, product, in); err != nil {
		return nil, err
	}
	dup := productDuplicate(product.Name)
	if err := ensureUnique(ctx, dup, domain.NameKey(product.Name), "", uc.repo.ExistsByName); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, asDuplicate(err, dup)
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista productos por nombre con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update reemplaza los datos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, product, in); err != nil {
		return nil, err
	}
	dup := productDuplicate(product.Name)
	if err := ensureUnique(ctx, dup, domain.NameKey(product.Name), id, uc.repo.ExistsByName); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, asDuplicate(err, dup)
	}
	return ToProductResponse(product), nil
}

// Delete elimina el producto. Si tiene ventas o movimientos se conserva y se informa Deleted=false.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReferenced) {
			return &dto.DeleteResponse{Deleted: false, Message: "el producto tiene ventas o movimientos asociados"}, nil
		}
		return nil, err
	}
	return &dto.DeleteResponse{Deleted: true}, nil
}

// apply valida la entrada y la copia sobre product.
func (uc *ProductUseCase) apply(ctx context.Context, product *entity.Product, in dto.ProductRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.NewValidationError("name", "es requerido")
	}
	if in.Price == nil {
		return domain.NewValidationError("price", "es requerido")
	}
	if in.Price.IsNegative() {
		return domain.NewValidationError("price", "no puede ser negativo")
	}
	if !in.Price.Equal(in.Price.Round(2)) {
		return domain.NewValidationError("price", "admite como máximo 2 decimales")
	}
	if in.Stock == nil {
		return domain.NewValidationError("stock", "es requerido")
	}
	if *in.Stock < 0 {
		return domain.NewValidationError("stock", "no puede ser negativo")
	}
	categoryID := strings.TrimSpace(in.CategoryID)
	categoryName := ""
	if categoryID != "" {
		category, err := uc.categoryRepo.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return &domain.NotFoundError{Entity: "categoría", ID: categoryID}
		}
		categoryName = category.Name
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = entity.DefaultUnit
	}
	if err := checkLengths(fieldLimit{"name", name, maxProductName}, fieldLimit{"unit", unit, maxUnit}); err != nil {
		return err
	}

	product.Name = name
	product.CategoryID = categoryID
	product.CategoryName = categoryName
	product.Price = in.Price.Round(2)
	product.Stock = *in.Stock
	product.Unit = unit
	return nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: id}
	}
	return product, nil
}

func productDuplicate(name string) *domain.DuplicateError {
	return &domain.DuplicateError{Entity: "producto", Field: "name", Value: name}
}

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Stock:        p.Stock,
		Price:        p.Price,
		Unit:         p.Unit,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

