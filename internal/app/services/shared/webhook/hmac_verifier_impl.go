package webhook

import (
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/pkg/exceptions"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

const signaturePrefix = "sha256="

var ErrEmptySecret = errors.New("webhook secret must not be empty")

type hmacVerifier struct {
	secret []byte
}

// NewVerifier refuses to build a verifier without a secret so that unsigned
// notifications can never be accepted.
func NewVerifier(secret string) (contracts.WebhookVerifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &hmacVerifier{secret: []byte(secret)}, nil
}

// Verify checks signature against the lowercase hex HMAC-SHA256 of payload.
// payload must be the body exactly as received. Only an exact lowercase
// "sha256=" prefix is tolerated; any other difference is a mismatch.
func (v *hmacVerifier) Verify(payload []byte, signature string) error {
	if signature == "" {
		return exceptions.ErrMissingWebhookSignature()
	}
	signature = strings.TrimPrefix(signature, signaturePrefix)

	expected := hex.EncodeToString(v.sum(payload))
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return exceptions.ErrInvalidWebhookSignature()
	}
	return nil
}

func (v *hmacVerifier) sum(payload []byte) []byte {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

// Sign returns the hex signature a sender holding secret would attach to
// payload.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
