package utils

import (
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/exceptions"
	"errors"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

func CheckAPIKeyHash(apiKey, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey))
	return err == nil
}

type RequesterClaims struct {
	RequesterType string `json:"requester_type,omitempty"`
	jwt.RegisteredClaims
}

// ParseRequesterJWT validates an HS256 token and returns the requester id
// carried in the subject claim.
func ParseRequesterJWT(tokenString, secret string) (*RequesterClaims, error) {
	claims := &RequesterClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(errors.New(constvars.ErrDevAuthTokenInvalid))
	}
	return claims, nil
}
