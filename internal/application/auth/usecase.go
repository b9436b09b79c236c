package auth

import (
	"context"
	"strings"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/usecase"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/repository"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	users    *usecase.UserUseCase
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, users: usecase.NewUserUseCase(userRepo), jwtCfg: jwtCfg}
}

// RegisterUser auto-registro: siempre crea un vendedor. Mismas reglas que el alta administrativa
// (usuario único, contraseña de al menos 6 caracteres).
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, domain.NewValidationError("full_name", "es requerido")
	}
	return uc.users.Create(ctx, dto.CreateUserRequest{
		Username: in.Username,
		FullName: in.FullName,
		Email:    in.Email,
		Password: in.Password,
		Role:     entity.RoleVendedor,
	})
}

// Login verifica usuario/password, genera JWT y retorna token + usuario.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.NewValidationError("", "usuario y contraseña son requeridos")
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return uc.users.GetByID(ctx, userID)
}
