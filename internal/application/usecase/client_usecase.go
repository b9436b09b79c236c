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

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. Nombre completo y cédula/RUC (si se informa) son únicos.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	client := &entity.Client{ID: uuid.New().String(), CreatedAt: time.Now().UTC()}
	if err := uc.apply(ctx, client, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, uc.asClientDuplicate(ctx, client, err)
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List clientes ordenados por nombre.
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update edita un cliente. La fecha de creación no cambia.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, client, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, uc.asClientDuplicate(ctx, client, err)
	}
	return toClientResponse(client), nil
}

// Delete elimina el cliente salvo que tenga ventas; en ese caso no hace nada y responde Deleted=false.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReferenced) {
			return &dto.DeleteResponse{Deleted: false, Message: "el cliente tiene ventas registradas"}, nil
		}
		return nil, err
	}
	return &dto.DeleteResponse{Deleted: true}, nil
}

// apply valida unicidad (excluyendo al propio cliente) y copia los campos.
func (uc *ClientUseCase) apply(ctx context.Context, client *entity.Client, in dto.ClientRequest) error {
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return domain.NewValidationError("full_name", "es requerido")
	}
	taxID := strings.TrimSpace(in.TaxID)
	address := strings.TrimSpace(in.Address)
	phone := strings.TrimSpace(in.Phone)
	email := strings.TrimSpace(in.Email)
	if err := checkLengths(
		fieldLimit{"full_name", fullName, maxFullName},
		fieldLimit{"tax_id", taxID, maxTaxID},
		fieldLimit{"phone", phone, maxPhone},
		fieldLimit{"email", email, maxEmail},
	); err != nil {
		return err
	}

	if err := ensureUnique(ctx, clientDuplicate("full_name", fullName), fullName, client.ID, uc.repo.ExistsByFullName); err != nil {
		return err
	}
	if taxID != "" {
		if err := ensureUnique(ctx, clientDuplicate("tax_id", taxID), taxID, client.ID, uc.repo.ExistsByTaxID); err != nil {
			return err
		}
	}

	client.FullName = fullName
	client.TaxID = taxID
	client.Address = address
	client.Phone = phone
	client.Email = email
	return nil
}

// asClientDuplicate ante una violación de unicidad del almacenamiento vuelve a consultar
// la cédula/RUC para informar el campo que realmente colisionó.
func (uc *ClientUseCase) asClientDuplicate(ctx context.Context, client *entity.Client, err error) error {
	if !errors.Is(err, domain.ErrDuplicate) || client.TaxID == "" {
		return asDuplicate(err, clientDuplicate("full_name", client.FullName))
	}
	taken, checkErr := uc.repo.ExistsByTaxID(ctx, client.TaxID, client.ID)
	if checkErr == nil && taken {
		return asDuplicate(err, clientDuplicate("tax_id", client.TaxID))
	}
	return asDuplicate(err, clientDuplicate("full_name", client.FullName))
}

func (uc *ClientUseCase) get(ctx context.Context, id string) (*entity.Client, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, &domain.NotFoundError{Entity: "cliente", ID: id}
	}
	return client, nil
}

func clientDuplicate(field, value string) *domain.DuplicateError {
	return &domain.DuplicateError{Entity: "cliente", Field: field, Value: value}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		TaxID:     c.TaxID,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}
