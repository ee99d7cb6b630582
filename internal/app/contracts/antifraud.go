package contracts

import (
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/dto/responses"
	"context"
)

type AntifraudService interface {
	Analyze(ctx context.Context, request *requests.AntifraudRequest) (*responses.AntifraudResult, error)
}
