package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/VictorBenitezR/sistema-de-gestion/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "ana", "vendedor", "gestion", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "vendedor", claims.Role)
	assert.Equal(t, "gestion", claims.Issuer)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "ana", "admin", "gestion", -5)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "ana", "admin", "gestion", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "ana", "admin", "gestion", 60)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
	_, err = pkgjwt.Parse("", "x")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}

func TestParse_Basura(t *testing.T) {
	_, err := pkgjwt.Parse(secret, "no.es.un.token")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}
