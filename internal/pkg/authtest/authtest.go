// Package authtest builds requester tokens and admin key hashes for tests.
package authtest

import (
	"checkout-service/internal/pkg/utils"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// RequesterToken signs an HS256 token the Authenticate middleware accepts
// when configured with secret. A negative ttl yields an expired token.
func RequesterToken(t testing.TB, requesterID, requesterType, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := utils.RequesterClaims{
		RequesterType: requesterType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   requesterID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func APIKeyHash(t testing.TB, apiKey string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}
