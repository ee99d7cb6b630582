package utils

import "golang.org/x/time/rate"

// NewRateLimiter returns an unlimited limiter when no rate is configured.
func NewRateLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
