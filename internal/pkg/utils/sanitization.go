package utils

import (
	"checkout-service/internal/pkg/dto/requests"
	"strings"
	"unicode"
)

func OnlyDigits(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, input)
}

func SanitizeCardPaymentRequest(input *requests.CardPaymentRequest) {
	input.CardToken = strings.TrimSpace(input.CardToken)
	if input.Installments == 0 {
		input.Installments = 1
	}
}

// MaskSecret keeps the last four characters so log lines stay correlatable.
func MaskSecret(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
