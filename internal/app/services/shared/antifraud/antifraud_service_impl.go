package antifraud

import (
	"bytes"
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/dto/responses"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const analysesPath = "/analyses"

type antifraudService struct {
	BaseUrl string
	Token   string
	Client  *http.Client
	Limiter *rate.Limiter
	Metrics contracts.PaymentMetrics
	Log     *zap.Logger
}

func NewAntifraudService(internalConfig *config.InternalConfig, metrics contracts.PaymentMetrics, logger *zap.Logger) contracts.AntifraudService {
	return &antifraudService{
		BaseUrl: strings.TrimRight(internalConfig.Antifraud.BaseUrl, "/"),
		Token:   internalConfig.Antifraud.Token,
		Client: &http.Client{
			Timeout: time.Duration(internalConfig.Antifraud.RequestTimeoutInSecond) * time.Second,
		},
		Limiter: utils.NewRateLimiter(internalConfig.Antifraud.RequestsPerSecond, internalConfig.Antifraud.Burst),
		Metrics: metrics,
		Log:     logger,
	}
}

// Analyze asks the scoring service for a verdict. Without a configured
// service every analysis is approved.
func (s *antifraudService) Analyze(ctx context.Context, request *requests.AntifraudRequest) (*responses.AntifraudResult, error) {
	requestID := utils.GetRequestID(ctx)
	if s.BaseUrl == "" {
		s.Log.Warn("antifraudService.Analyze skipped, no antifraud service configured",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		)
		return &responses.AntifraudResult{Decision: string(models.FraudDecisionApproved)}, nil
	}

	start := time.Now()
	result, err := s.analyze(ctx, request)
	outcome := constvars.ResponseSuccess
	if err != nil {
		outcome = constvars.ResponseError
	}
	s.Metrics.ObserveGatewayCall(constvars.OperationAntifraudAnalysis, outcome, time.Since(start))

	if err != nil {
		s.Log.Error("antifraudService.Analyze failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, request.OrderID),
			zap.Error(err),
		)
		return nil, exceptions.ErrAntifraudRequest(err)
	}

	s.Log.Info("antifraudService.Analyze succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		zap.String(constvars.LoggingFraudDecisionKey, result.Decision),
	)
	return result, nil
}

func (s *antifraudService) analyze(ctx context.Context, request *requests.AntifraudRequest) (*responses.AntifraudResult, error) {
	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.BaseUrl+analysesPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if s.Token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+s.Token)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result responses.AntifraudResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	switch models.FraudDecision(strings.ToUpper(result.Decision)) {
	case models.FraudDecisionApproved, models.FraudDecisionDenied, models.FraudDecisionReview:
		result.Decision = strings.ToUpper(result.Decision)
	default:
		return nil, fmt.Errorf("unknown antifraud decision %q", result.Decision)
	}
	return &result, nil
}
