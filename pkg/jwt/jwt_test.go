package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters-long"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, "coachhub", 24)

	token, err := tm.GenerateToken(7, "coach@example.com", "Asha", "mentor")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "coach@example.com", claims.Email)
	assert.Equal(t, "mentor", claims.Role)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, 24*time.Hour, tm.GetExpirationTime())
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret, "coachhub", 1).GenerateToken(1, "a@b.c", "A", "user")
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-that-is-at-least-32-chars", "coachhub", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsWrongIssuer(t *testing.T) {
	token, err := NewTokenManager(testSecret, "someone-else", 1).GenerateToken(1, "a@b.c", "A", "user")
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, "coachhub", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	claims := UserClaims{
		UserID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "coachhub",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, "coachhub", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_MissingUserID(t *testing.T) {
	claims := UserClaims{
		Email: "nobody@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "coachhub",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, "coachhub", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaim)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager(testSecret, "", 1).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
