package payment_gateway

import (
	"bytes"
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/dto/responses"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	maxErrorBodyLength = 512
	maxImageSize       = 1 << 20
)

var errGatewayResourceNotFound = errors.New("gateway resource not found")

type pagBankService struct {
	BaseUrl         string
	Token           string
	PixExpiration   time.Duration
	RedirectBaseUrl string
	Client          *http.Client
	Limiter         *rate.Limiter
	Metrics         contracts.PaymentMetrics
	Log             *zap.Logger
}

func NewPagBankService(internalConfig *config.InternalConfig, metrics contracts.PaymentMetrics, logger *zap.Logger) contracts.PaymentGatewayService {
	gatewayConfig := internalConfig.PaymentGateway
	return &pagBankService{
		BaseUrl:         strings.TrimRight(gatewayConfig.BaseUrl, "/"),
		Token:           gatewayConfig.Token,
		PixExpiration:   time.Duration(internalConfig.Payment.PixExpirationInMinutes) * time.Minute,
		RedirectBaseUrl: strings.TrimRight(internalConfig.Payment.RedirectBaseUrl, "/"),
		Client: &http.Client{
			Timeout: time.Duration(gatewayConfig.RequestTimeoutInSecond) * time.Second,
		},
		Limiter: utils.NewRateLimiter(gatewayConfig.RequestsPerSecond, gatewayConfig.Burst),
		Metrics: metrics,
		Log:     logger,
	}
}

func (s *pagBankService) CreatePixCharge(ctx context.Context, payload *requests.PaymentPayload, callbackURL string) (*responses.GatewayPixCharge, error) {
	expiresAt := time.Now().Add(s.PixExpiration).UTC().Truncate(time.Second)
	request := s.buildOrderRequest(payload, callbackURL)
	request.QRCodes = []gatewayQRCodeRequest{
		{
			Amount:         gatewayAmount{Value: payload.AmountInCents},
			ExpirationDate: &expiresAt,
		},
	}

	var response gatewayOrderResponse
	_, err := s.doJSON(ctx, constvars.OperationCreatePixCharge, constvars.MethodPost, constvars.GatewayPathOrders, payload.ReferenceID, request, &response)
	if err != nil {
		return nil, err
	}

	result := &responses.GatewayPixCharge{
		TransactionID: response.ID,
		Status:        constvars.GatewayStatusWaiting,
		ReferenceCode: response.ReferenceID,
		ExpiresAt:     &expiresAt,
	}
	if len(response.QRCodes) > 0 {
		qrCode := response.QRCodes[0]
		result.QRCodeText = qrCode.Text
		result.QRCodeImage = qrCode.ImageURL(constvars.GatewayLinkRelQRCodePNG)
		if qrCode.ExpirationDate != nil {
			result.ExpiresAt = qrCode.ExpirationDate
		}
		if result.QRCodeImage != "" {
			result.QRCodeImageData = s.downloadImage(ctx, result.QRCodeImage)
		}
	}
	if len(response.Charges) > 0 && response.Charges[0].Status != "" {
		result.Status = response.Charges[0].Status
	}
	return result, nil
}

func (s *pagBankService) ProcessCardCharge(ctx context.Context, payload *requests.CardPaymentPayload, callbackURL string) (*responses.GatewayCardCharge, error) {
	request := s.buildOrderRequest(&payload.PaymentPayload, callbackURL)
	request.Charges = []gatewayChargeRequest{
		{
			ReferenceID: payload.ReferenceID,
			Description: payload.Description,
			Amount: gatewayAmount{
				Value:    payload.AmountInCents,
				Currency: constvars.GatewayCurrencyBRL,
			},
			PaymentMethod: gatewayPaymentMethod{
				Type:         constvars.GatewayPaymentTypeCard,
				Installments: payload.Installments,
				Capture:      true,
				Card:         gatewayCard{Encrypted: payload.CardToken},
			},
		},
	}

	var response gatewayOrderResponse
	_, err := s.doJSON(ctx, constvars.OperationProcessCardCharge, constvars.MethodPost, constvars.GatewayPathOrders, payload.ReferenceID, request, &response)
	if err != nil {
		return nil, err
	}

	result := &responses.GatewayCardCharge{
		TransactionID: response.ID,
		Status:        constvars.GatewayStatusPending,
	}
	if len(response.Charges) > 0 {
		charge := response.Charges[0]
		result.Status = charge.Status
		result.TransactionRef = charge.PaymentResponse.Reference
		if result.TransactionRef == "" {
			result.TransactionRef = charge.ID
		}
	}
	return result, nil
}

func (s *pagBankService) CreateCheckout(ctx context.Context, payload *requests.PaymentPayload, callbackURL string) (*responses.GatewayCheckout, error) {
	orderRequest := s.buildOrderRequest(payload, callbackURL)
	request := gatewayCheckoutRequest{
		ReferenceID:             orderRequest.ReferenceID,
		Customer:                orderRequest.Customer,
		Items:                   orderRequest.Items,
		Shipping:                orderRequest.Shipping,
		NotificationURLs:        orderRequest.NotificationURLs,
		PaymentNotificationURLs: orderRequest.NotificationURLs,
	}
	if s.RedirectBaseUrl != "" {
		request.RedirectURL = s.RedirectBaseUrl + fmt.Sprintf(constvars.PaymentRedirectPathFormat, payload.ReferenceID)
	}

	var response gatewayCheckoutResponse
	_, err := s.doJSON(ctx, constvars.OperationCreateCheckout, constvars.MethodPost, constvars.GatewayPathCheckouts, payload.ReferenceID, request, &response)
	if err != nil {
		return nil, err
	}

	return &responses.GatewayCheckout{
		CheckoutID:  response.ID,
		RedirectURL: findLink(response.Links, constvars.GatewayLinkRelPay),
	}, nil
}

// GetCheckoutDetails looks the id up as a checkout first and as an order when
// the gateway does not know such checkout.
func (s *pagBankService) GetCheckoutDetails(ctx context.Context, checkoutID string) (*responses.GatewayCheckoutDetails, error) {
	var checkout responses.GatewayCheckoutDetails
	_, err := s.doJSON(ctx, constvars.OperationGetCheckoutDetails, constvars.MethodGet, constvars.GatewayPathCheckouts+"/"+url.PathEscape(checkoutID), "", nil, &checkout)
	if err == nil {
		return &checkout, nil
	}
	if !errors.Is(err, errGatewayResourceNotFound) {
		return nil, err
	}

	order, err := s.getOrder(ctx, checkoutID)
	if err != nil {
		return nil, err
	}

	details := &responses.GatewayCheckoutDetails{
		ID:          order.ID,
		ReferenceID: order.ReferenceID,
	}
	for _, charge := range order.Charges {
		details.Charges = append(details.Charges, responses.GatewayCharge{ID: charge.ID, Status: charge.Status})
	}
	return details, nil
}

func (s *pagBankService) GetOrderDetails(ctx context.Context, orderID string) (*responses.GatewayOrderDetails, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	details := &responses.GatewayOrderDetails{
		ID:      order.ID,
		QRCodes: order.QRCodes,
	}
	for _, charge := range order.Charges {
		details.Charges = append(details.Charges, responses.GatewayCharge{ID: charge.ID, Status: charge.Status})
	}
	return details, nil
}

func (s *pagBankService) getOrder(ctx context.Context, orderID string) (*gatewayOrderResponse, error) {
	var order gatewayOrderResponse
	_, err := s.doJSON(ctx, constvars.OperationGetOrderDetails, constvars.MethodGet, constvars.GatewayPathOrders+"/"+url.PathEscape(orderID), "", nil, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *pagBankService) buildOrderRequest(payload *requests.PaymentPayload, callbackURL string) gatewayOrderRequest {
	items := make([]gatewayItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, gatewayItem{
			ReferenceID: item.ReferenceID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitAmount:  item.UnitAmountCent,
		})
	}

	request := gatewayOrderRequest{
		ReferenceID: payload.ReferenceID,
		Customer: gatewayCustomer{
			Name:   payload.Customer.Name,
			Email:  payload.Customer.Email,
			TaxID:  utils.OnlyDigits(payload.Customer.TaxID),
			Phones: buildPhones(payload.Customer.Phone),
		},
		Items:            items,
		NotificationURLs: []string{callbackURL},
	}

	if payload.Shipping.Street != "" {
		request.Shipping = &gatewayShipping{
			Address: gatewayAddress{
				Street:     payload.Shipping.Street,
				Number:     payload.Shipping.Number,
				Complement: payload.Shipping.Complement,
				Locality:   payload.Shipping.District,
				City:       payload.Shipping.City,
				RegionCode: payload.Shipping.State,
				Country:    constvars.GatewayAddressCountry,
				PostalCode: utils.OnlyDigits(payload.Shipping.PostalCode),
			},
		}
	}
	return request
}

// buildPhones splits a national number into area code and subscriber number.
func buildPhones(phone string) []gatewayPhone {
	digits := utils.OnlyDigits(phone)
	if len(digits) >= 12 && strings.HasPrefix(digits, constvars.GatewayPhoneCountryBR) {
		digits = digits[len(constvars.GatewayPhoneCountryBR):]
	}
	if len(digits) < 10 {
		return nil
	}
	return []gatewayPhone{
		{
			Country: constvars.GatewayPhoneCountryBR,
			Area:    digits[:2],
			Number:  digits[2:],
			Type:    constvars.GatewayPhoneTypeMobile,
		},
	}
}

func (s *pagBankService) doJSON(ctx context.Context, operation, method, path, idempotencyKey string, body, out interface{}) (int, error) {
	start := time.Now()
	statusCode, err := s.send(ctx, method, path, idempotencyKey, body, out)

	outcome := constvars.ResponseSuccess
	if err != nil {
		outcome = constvars.ResponseError
	}
	s.Metrics.ObserveGatewayCall(operation, outcome, time.Since(start))

	if err != nil {
		s.Log.Warn("pagBankService call failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingOperationKey, operation),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
	}
	return statusCode, err
}

func (s *pagBankService) send(ctx context.Context, method, path, idempotencyKey string, body, out interface{}) (int, error) {
	if err := s.Limiter.Wait(ctx); err != nil {
		return 0, exceptions.ErrSendHTTPRequest(err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, exceptions.ErrCannotMarshalJSON(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.BaseUrl+path, reader)
	if err != nil {
		return 0, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+s.Token)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	if idempotencyKey != "" {
		req.Header.Set(constvars.HeaderIdempotencyKey, idempotencyKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		return resp.StatusCode, exceptions.BuildNewCustomError(errGatewayResourceNotFound, constvars.StatusBadGateway, constvars.ErrClientGatewayFailure, path)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		return resp.StatusCode, exceptions.ErrGatewayUnexpectedStatus(resp.StatusCode, string(bodyBytes))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, exceptions.ErrDecodeResponse(err, path)
		}
	}
	return resp.StatusCode, nil
}

// downloadImage fetches the QR code image. A failure only loses the archived
// copy, so it returns nil instead of an error.
func (s *pagBankService) downloadImage(ctx context.Context, imageURL string) []byte {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, imageURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+s.Token)

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Log.Warn("pagBankService.downloadImage failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingURLKey, imageURL),
			zap.Error(err),
		)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil
	}
	return data
}

func findLink(links []responses.GatewayLink, rel string) string {
	for _, link := range links {
		if strings.EqualFold(link.Rel, rel) {
			return link.Href
		}
	}
	return ""
}
