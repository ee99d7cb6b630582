package payment_gateway

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/services/shared/metrics"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/exceptions"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testToken = "gateway-token"

func newTestService(t *testing.T, handler http.Handler) *pagBankService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	internalConfig := &config.InternalConfig{
		PaymentGateway: config.AppPaymentGateway{
			BaseUrl:                server.URL + "/",
			Token:                  testToken,
			RequestTimeoutInSecond: 5,
		},
		Payment: config.AppPayment{
			RedirectBaseUrl:        "https://shop.example.com",
			PixExpirationInMinutes: 30,
		},
	}
	return NewPagBankService(internalConfig, metrics.NewNoopMetrics(), zap.NewNop()).(*pagBankService)
}

func testPayload() *requests.PaymentPayload {
	return &requests.PaymentPayload{
		ReferenceID:   "order-1",
		Description:   "Order order-1",
		Amount:        decimal.RequireFromString("150.50"),
		AmountInCents: 15050,
		Customer: requests.GatewayCustomer{
			Name:  "Ana Souza",
			Email: "ana@example.com",
			Phone: "+55 (11) 98765-4321",
			TaxID: "123.456.789-09",
		},
		Shipping: requests.GatewayShippingAddress{
			Street:     "Rua A",
			Number:     "10",
			District:   "Centro",
			City:       "Sao Paulo",
			State:      "SP",
			PostalCode: "01000-000",
		},
		Items: []requests.GatewayItem{
			{ReferenceID: "prod-1", Name: "Mug", Quantity: 2, UnitAmountCent: 7525},
		},
	}
}

func TestPagBankService_CreatePixCharge(t *testing.T) {
	var received gatewayOrderRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get(constvars.HeaderAuthorization))
		assert.Equal(t, "order-1", r.Header.Get(constvars.HeaderIdempotencyKey))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		io.WriteString(w, `{
			"id": "ORDE_1",
			"reference_id": "order-1",
			"qr_codes": [{
				"id": "QRCO_1",
				"text": "00020101021226830014br.gov.bcb.pix",
				"links": [{"rel": "QRCODE.PNG", "href": "`+"http://"+r.Host+`/qrcode/QRCO_1/png"}]
			}]
		}`)
	})
	mux.HandleFunc("/qrcode/QRCO_1/png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png-bytes"))
	})
	service := newTestService(t, mux)

	charge, err := service.CreatePixCharge(context.Background(), testPayload(), "https://api.example.com/api/v1/webhooks/payments")

	require.NoError(t, err)
	assert.Equal(t, "ORDE_1", charge.TransactionID)
	assert.Equal(t, constvars.GatewayStatusWaiting, charge.Status)
	assert.Equal(t, "00020101021226830014br.gov.bcb.pix", charge.QRCodeText)
	assert.Contains(t, charge.QRCodeImage, "/qrcode/QRCO_1/png")
	assert.Equal(t, []byte("png-bytes"), charge.QRCodeImageData)
	require.NotNil(t, charge.ExpiresAt)

	require.Len(t, received.QRCodes, 1)
	assert.Equal(t, int64(15050), received.QRCodes[0].Amount.Value)
	assert.Equal(t, "12345678909", received.Customer.TaxID)
	require.Len(t, received.Customer.Phones, 1)
	assert.Equal(t, "11", received.Customer.Phones[0].Area)
	assert.Equal(t, "987654321", received.Customer.Phones[0].Number)
	require.NotNil(t, received.Shipping)
	assert.Equal(t, "01000000", received.Shipping.Address.PostalCode)
	assert.Equal(t, []string{"https://api.example.com/api/v1/webhooks/payments"}, received.NotificationURLs)
}

func TestPagBankService_ProcessCardCharge(t *testing.T) {
	var received gatewayOrderRequest
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		io.WriteString(w, `{
			"id": "ORDE_2",
			"charges": [{"id": "CHAR_2", "status": "PAID", "payment_response": {"code": "20000", "reference": "REF-123"}}]
		}`)
	}))

	payload := &requests.CardPaymentPayload{
		PaymentPayload: *testPayload(),
		CardToken:      "encrypted-card",
		Installments:   3,
	}
	charge, err := service.ProcessCardCharge(context.Background(), payload, "https://callback")

	require.NoError(t, err)
	assert.Equal(t, "ORDE_2", charge.TransactionID)
	assert.Equal(t, "PAID", charge.Status)
	assert.Equal(t, "REF-123", charge.TransactionRef)

	require.Len(t, received.Charges, 1)
	assert.Equal(t, constvars.GatewayPaymentTypeCard, received.Charges[0].PaymentMethod.Type)
	assert.Equal(t, "encrypted-card", received.Charges[0].PaymentMethod.Card.Encrypted)
	assert.Equal(t, 3, received.Charges[0].PaymentMethod.Installments)
	assert.Empty(t, received.QRCodes)
}

func TestPagBankService_CreateCheckout(t *testing.T) {
	var received gatewayCheckoutRequest
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, constvars.GatewayPathCheckouts, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		io.WriteString(w, `{
			"id": "CHEC_3",
			"links": [{"rel": "SELF", "href": "https://gw/checkouts/CHEC_3"}, {"rel": "PAY", "href": "https://pay.gw/CHEC_3"}]
		}`)
	}))

	checkout, err := service.CreateCheckout(context.Background(), testPayload(), "https://callback")

	require.NoError(t, err)
	assert.Equal(t, "CHEC_3", checkout.CheckoutID)
	assert.Equal(t, "https://pay.gw/CHEC_3", checkout.RedirectURL)
	assert.Equal(t, "https://shop.example.com/orders/order-1/payment-result", received.RedirectURL)
	assert.Equal(t, []string{"https://callback"}, received.PaymentNotificationURLs)
}

func TestPagBankService_GetCheckoutDetailsFallsBackToOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/checkouts/ORDE_1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/orders/ORDE_1", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": "ORDE_1", "reference_id": "order-1", "charges": [{"id": "CHAR_1", "status": "PAID"}]}`)
	})
	service := newTestService(t, mux)

	details, err := service.GetCheckoutDetails(context.Background(), "ORDE_1")

	require.NoError(t, err)
	assert.Equal(t, "ORDE_1", details.ID)
	assert.Equal(t, "order-1", details.ReferenceID)
	assert.Empty(t, details.Status)
	assert.Equal(t, []string{"PAID"}, details.ChargeStatuses())
}

func TestPagBankService_UnexpectedStatusIsGatewayFailure(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"error_messages": [{"code": "40002", "description": "invalid_parameter"}]}`)
	}))

	_, err := service.CreateCheckout(context.Background(), testPayload(), "https://callback")

	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindGatewayFailure))
	assert.Contains(t, err.Error(), "422")
}

func TestPagBankService_GetOrderDetails(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.Header.Get(constvars.HeaderIdempotencyKey))
		io.WriteString(w, `{"id": "ORDE_1", "qr_codes": [{"id": "QRCO_1", "text": "pix-code"}]}`)
	}))

	details, err := service.GetOrderDetails(context.Background(), "ORDE_1")

	require.NoError(t, err)
	require.Len(t, details.QRCodes, 1)
	assert.Equal(t, "pix-code", details.QRCodes[0].Text)
}

func TestPagBankService_IDStaysInOnePathSegment(t *testing.T) {
	var requestURIs []string
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestURIs = append(requestURIs, r.RequestURI)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := service.GetCheckoutDetails(context.Background(), "../refunds/X?amount=1")

	require.Error(t, err)
	assert.Equal(t, []string{
		"/checkouts/..%2Frefunds%2FX%3Famount=1",
		"/orders/..%2Frefunds%2FX%3Famount=1",
	}, requestURIs)
}

func TestBuildPhones(t *testing.T) {
	tests := []struct {
		name   string
		phone  string
		area   string
		number string
	}{
		{name: "with country code", phone: "+55 11 98765-4321", area: "11", number: "987654321"},
		{name: "national", phone: "(21) 3456-7890", area: "21", number: "34567890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phones := buildPhones(tt.phone)
			require.Len(t, phones, 1)
			assert.Equal(t, tt.area, phones[0].Area)
			assert.Equal(t, tt.number, phones[0].Number)
		})
	}

	assert.Nil(t, buildPhones("1234"))
}
