package utils

import (
	"checkout-service/internal/pkg/dto/requests"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeCardPaymentRequest(t *testing.T) {
	t.Run("Token Trimmed", func(t *testing.T) {
		request := &requests.CardPaymentRequest{CardToken: "  tok_123  ", Installments: 3}

		SanitizeCardPaymentRequest(request)

		assert.Equal(t, "tok_123", request.CardToken, "card token should be trimmed")
		assert.Equal(t, 3, request.Installments, "installments should be kept")
	})

	t.Run("Default Installments", func(t *testing.T) {
		request := &requests.CardPaymentRequest{CardToken: "tok_123"}

		SanitizeCardPaymentRequest(request)

		assert.Equal(t, 1, request.Installments, "missing installments should default to one")
	})
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "12345678909", OnlyDigits("123.456.789-09"))
	assert.Equal(t, "5511999998888", OnlyDigits("+55 (11) 99999-8888"))
	assert.Equal(t, "", OnlyDigits("abc"))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****5678", MaskSecret("12345678"))
	assert.Equal(t, "***", MaskSecret("abc"))
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(1999), ToCents(decimal.RequireFromString("19.99")))
	assert.Equal(t, int64(1000), ToCents(decimal.NewFromInt(10)))
	assert.Equal(t, int64(101), ToCents(decimal.RequireFromString("1.005")))
}
