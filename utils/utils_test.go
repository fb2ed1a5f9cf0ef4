package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret!"))
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.GenerateToken(Claims{ID: "abc", Email: "a@b.c", Role: "Admin", EmployeeID: 3})
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.ID)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, int64(3), claims.EmployeeID)

	_, err = NewTokenIssuer("other-secret", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)
	token, err := issuer.GenerateToken(Claims{Role: "Employee"})
	require.NoError(t, err)

	_, err = issuer.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRespondWithMessage(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithMessage(w, http.StatusNotFound, "Manager not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Manager not found"}`, w.Body.String())
}
