package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	id := Identity{UserID: "u1", CompanyID: "c2", Role: "Admin"}

	tok, err := Generate(secret, id, "portal-admin", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Errores(t *testing.T) {
	tok, err := Generate(secret, Identity{UserID: "u1", CompanyID: "c1", Role: "Viewer"}, "portal-admin", 60)
	require.NoError(t, err)
	expired, err := Generate(secret, Identity{UserID: "u1"}, "portal-admin", -1)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")

	_, err = Parse(secret, expired)
	assert.Error(t, err, "token expirado debe retornar error")

	_, err = Parse("", tok)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestParse_IdentidadIncompleta(t *testing.T) {
	tok, err := Generate(secret, Identity{UserID: "u1"}, "portal-admin", 60)
	require.NoError(t, err)

	_, err = Parse(secret, tok)
	assert.ErrorIs(t, err, ErrIncompleteIdentity)
}

func TestParse_RechazaOtroAlgoritmo(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u1",
		CompanyID:        "c1",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", Identity{UserID: "u1"}, "portal-admin", 60)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
