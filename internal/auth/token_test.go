package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-it/helpdesk-service/internal/domain"
)

func TestSignAndParseRoundtrip(t *testing.T) {
	tm := NewTokenManager("unit-secret")

	token, err := tm.SignToken("user-42", domain.RoleTechnician, time.Minute)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, domain.RoleTechnician, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").SignToken("user-42", domain.RoleAdmin, time.Minute)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").ParseToken(token)
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("unit-secret")
	token, err := tm.SignToken("user-42", domain.RoleStudent, -time.Minute)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestParseRejectsWrongSigningMethod(t *testing.T) {
	claims := &Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("unit-secret").ParseToken(signed)
	require.Error(t, err)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	claims := &Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("unit-secret").ParseToken(signed)
	require.Error(t, err)
}
