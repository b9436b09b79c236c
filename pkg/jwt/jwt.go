// Package jwt emite y valida los tokens de sesión (HS256) que lleva cada petición a /api.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrEmptySecret sin clave de firma configurada.
	ErrEmptySecret = errors.New("jwt: secret vacío")
	// ErrExpired token vencido; el cliente debe volver a iniciar sesión.
	ErrExpired = errors.New("jwt: token expirado")
	// ErrInvalid firma, formato o claims incorrectos.
	ErrInvalid = errors.New("jwt: token inválido")
)

// leeway tolerancia de reloj entre servidor y cliente.
const leeway = 30 * time.Second

// Claims datos de sesión: quién es el usuario y con qué rol opera.
// El middleware RBAC decide con Role sin consultar la BD.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // "admin" | "vendedor"
}

// Generate firma un token para el usuario con vencimiento en expMinutes.
func Generate(secret, userID, username, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("jwt: firmar: %w", err)
	}
	return signed, nil
}

// Parse verifica firma (solo HS256) y vencimiento y devuelve los claims.
// Los errores se reducen a ErrExpired o ErrInvalid.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	)
	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	case claims.UserID == "":
		return nil, fmt.Errorf("%w: sin user_id", ErrInvalid)
	}
	return claims, nil
}
