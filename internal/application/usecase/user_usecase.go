package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength largo mínimo de contraseña.
const MinPasswordLength = 6

// UserUseCase administración de usuarios (solo administradores) y alta usada por el registro.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create da de alta un usuario. Rol vacío se toma como vendedor.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.NewValidationError("username", "es requerido")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.NewValidationError("password", fmt.Sprintf("debe tener al menos %d caracteres", MinPasswordLength))
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	if !entity.ValidRole(role) {
		return nil, domain.NewValidationError("role", "rol inválido")
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		fullName = username
	}
	email := strings.TrimSpace(in.Email)
	if err := checkLengths(
		fieldLimit{"username", username, maxUsername},
		fieldLimit{"full_name", fullName, maxFullName},
		fieldLimit{"email", email, maxEmail},
	); err != nil {
		return nil, err
	}
	dup := userDuplicate(username)
	if err := ensureUnique(ctx, dup, username, "", uc.repo.ExistsByUsername); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, asDuplicate(err, dup)
	}
	return ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List todos los usuarios salvo actingID.
func (uc *UserUseCase) List(ctx context.Context, actingID string) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx, actingID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// Update edita un usuario. Campos de texto y password vacíos conservan el valor actual.
// Un administrador no puede quitarse su propio rol ni desactivarse.
func (uc *UserUseCase) Update(ctx context.Context, actingID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = user.Username
	}
	role := in.Role
	if role == "" {
		role = user.Role
	}
	if !entity.ValidRole(role) {
		return nil, domain.NewValidationError("role", "rol inválido")
	}
	if id == actingID && role != entity.RoleAdmin && user.Role == entity.RoleAdmin {
		return nil, domain.NewValidationError("role", "no puede quitarse su propio rol de administrador")
	}
	if id == actingID && in.Active != nil && !*in.Active {
		return nil, domain.NewValidationError("active", "no puede desactivar su propio usuario")
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		fullName = user.FullName
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = user.Email
	}
	if err := checkLengths(
		fieldLimit{"username", username, maxUsername},
		fieldLimit{"full_name", fullName, maxFullName},
		fieldLimit{"email", email, maxEmail},
	); err != nil {
		return nil, err
	}
	dup := userDuplicate(username)
	if err := ensureUnique(ctx, dup, username, id, uc.repo.ExistsByUsername); err != nil {
		return nil, err
	}
	if in.Password != "" {
		if len(in.Password) < MinPasswordLength {
			return nil, domain.NewValidationError("password", fmt.Sprintf("debe tener al menos %d caracteres", MinPasswordLength))
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	user.Username = username
	user.FullName = fullName
	user.Email = email
	user.Role = role
	if in.Active != nil {
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, asDuplicate(err, dup)
	}
	return ToUserResponse(user), nil
}

// Delete elimina un usuario. No se permite borrarse a sí mismo; si tiene ventas o movimientos se conserva.
func (uc *UserUseCase) Delete(ctx context.Context, actingID, id string) (*dto.DeleteResponse, error) {
	if id == actingID {
		return nil, fmt.Errorf("%w: no puede eliminar su propio usuario", domain.ErrForbidden)
	}
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReferenced) {
			return &dto.DeleteResponse{Deleted: false, Message: "el usuario tiene ventas o movimientos registrados"}, nil
		}
		return nil, err
	}
	return &dto.DeleteResponse{Deleted: true}, nil
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.NotFoundError{Entity: "usuario", ID: id}
	}
	return user, nil
}

func userDuplicate(username string) *domain.DuplicateError {
	return &domain.DuplicateError{Entity: "usuario", Field: "username", Value: username}
}

// ToUserResponse convierte la entidad al DTO sin el hash de contraseña.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
