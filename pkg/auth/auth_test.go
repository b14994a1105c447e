package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(userID, "admin@example.com", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a", time.Hour).GenerateToken(uuid.New(), "a@b.c", "admin")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)
	token, _, err := svc.GenerateToken(uuid.New(), "a@b.c", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsTampered(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	token, _, err := svc.GenerateToken(uuid.New(), "a@b.c", "admin")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = svc.ValidateToken(tampered)
	assert.Error(t, err)
}

func TestJWTService_EmptySecretRefusesEverything(t *testing.T) {
	svc := NewJWTService("", time.Hour)

	_, _, err := svc.GenerateToken(uuid.New(), "a@b.c", "admin")
	assert.ErrorIs(t, err, ErrNoSigningKey)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{
		UserID: uuid.New(),
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	assert.ErrorIs(t, err, ErrNoSigningKey)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("12345")
	require.NoError(t, err)

	assert.NotEqual(t, "12345", hash)
	assert.True(t, CheckPasswordHash("12345", hash))
	assert.False(t, CheckPasswordHash("54321", hash))
	assert.False(t, CheckPasswordHash("12345", "not-a-hash"))
}
