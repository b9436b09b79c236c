package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre no puede repetirse (sin distinguir mayúsculas).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre de la categoría no puede estar vacío")
	}
	if err := checkLengths(fieldLimit{"name", name, maxCategoryName}); err != nil {
		return nil, err
	}
	dup := categoryDuplicate(name)
	if err := ensureUnique(ctx, dup, domain.NameKey(name), "", uc.repo.ExistsByName); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, asDuplicate(err, dup)
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update renombra una categoría. Renombrar a un nombre de otra categoría retorna DuplicateError
// y no modifica ninguno de los dos registros.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre de la categoría no puede estar vacío")
	}
	if err := checkLengths(fieldLimit{"name", name, maxCategoryName}); err != nil {
		return nil, err
	}
	category, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := categoryDuplicate(name)
	if err := ensureUnique(ctx, dup, domain.NameKey(name), id, uc.repo.ExistsByName); err != nil {
		return nil, err
	}
	category.Rename(name, time.Now().UTC())
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, asDuplicate(err, dup)
	}
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría; sus productos quedan sin categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResponse{Deleted: true}, nil
}

func (uc *CategoryUseCase) get(ctx context.Context, id string) (*entity.Category, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &domain.NotFoundError{Entity: "categoría", ID: id}
	}
	return category, nil
}

func categoryDuplicate(name string) *domain.DuplicateError {
	return &domain.DuplicateError{Entity: "categoría", Field: "name", Value: name}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
