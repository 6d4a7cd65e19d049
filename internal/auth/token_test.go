package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airport-booking/internal/auth"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestExtractTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/orders", nil)
	_, err := auth.ExtractTokenFromRequest(req)
	assert.Error(t, err)

	req.Header.Set("Authorization", "Basic abc123")
	_, err = auth.ExtractTokenFromRequest(req)
	assert.Error(t, err)

	req.Header.Set("Authorization", "Bearer some-token")
	token, err := auth.ExtractTokenFromRequest(req)
	assert.NoError(t, err)
	assert.Equal(t, "some-token", token)

	req.Header.Set("Authorization", "bearer some-token")
	token, err = auth.ExtractTokenFromRequest(req)
	assert.NoError(t, err)
	assert.Equal(t, "some-token", token)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tokenString := signedToken(t, jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()})

	got, err := auth.TokenExpiry(tokenString)
	require.NoError(t, err)
	assert.WithinDuration(t, exp, got, time.Second)
}

func TestTokenExpiry_MissingClaim(t *testing.T) {
	tokenString := signedToken(t, jwt.MapClaims{"sub": "user-1"})

	_, err := auth.TokenExpiry(tokenString)
	assert.Error(t, err)
}

func TestTokenExpiry_Garbage(t *testing.T) {
	_, err := auth.TokenExpiry("not-a-jwt")
	assert.Error(t, err)
}

func TestIdentityHasRole(t *testing.T) {
	identity := auth.Identity{UserID: "user-1", Roles: []string{"admin", "staff"}}
	assert.True(t, identity.HasRole("admin"))
	assert.False(t, identity.HasRole("auditor"))

	empty := auth.Identity{}
	assert.False(t, empty.HasRole("admin"))
}
