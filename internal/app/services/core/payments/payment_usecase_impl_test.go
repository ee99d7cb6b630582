package payments

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/app/models"
	"checkout-service/internal/app/services/shared/metrics"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/dto/responses"
	"checkout-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testUserID  = "user-1"
	testGuestID = "guest-1"
)

type fixture struct {
	orders       *fakeOrderRepository
	transactions *fakeTransactionRepository
	gateway      *fakeGateway
	antifraud    *fakeAntifraud
	locker       *fakeLocker
	storage      *fakeStorage
	notifier     *fakeNotifier
	config       *config.InternalConfig
}

func newFixture() *fixture {
	userID, guestID := testUserID, testGuestID
	items := []models.OrderItem{
		{ProductID: "prod-1", ProductName: "Mug", Quantity: 2, UnitPrice: decimal.RequireFromString("50.25")},
		{ProductID: "prod-2", ProductName: "Tea", Quantity: 1, UnitPrice: decimal.RequireFromString("50.00")},
	}
	orders := &fakeOrderRepository{orders: map[string]*models.Order{
		"order-1": {
			ID:             "order-1",
			Status:         models.OrderStatusPending,
			UserID:         &userID,
			Total:          decimal.RequireFromString("150.50"),
			ShippingStreet: "Rua A",
			ShippingCity:   "Sao Paulo",
			Customer:       models.Customer{Name: "Ana", Email: "ana@example.com", Phone: "11987654321", TaxID: "12345678909"},
			Items:          items,
		},
		"guest-order": {
			ID:       "guest-order",
			Status:   models.OrderStatusPending,
			GuestID:  &guestID,
			Total:    decimal.RequireFromString("20"),
			Customer: models.Customer{Name: "Bia", Email: "bia@example.com"},
		},
		"orphan-order": {
			ID:     "orphan-order",
			Status: models.OrderStatusPending,
			Total:  decimal.RequireFromString("10"),
		},
		"paid-order": {
			ID:     "paid-order",
			Status: models.OrderStatusPaid,
			UserID: &userID,
			Total:  decimal.RequireFromString("10"),
		},
	}}

	expiresAt := time.Now().Add(30 * time.Minute)
	return &fixture{
		orders:       orders,
		transactions: newFakeTransactionRepository(orders),
		gateway: &fakeGateway{
			pixCharge: &responses.GatewayPixCharge{
				TransactionID:   "tx1",
				Status:          constvars.GatewayStatusWaiting,
				ReferenceCode:   "order-1",
				QRCodeText:      "pix-code",
				QRCodeImage:     "https://gw/qrcode/tx1/png",
				ExpiresAt:       &expiresAt,
				QRCodeImageData: []byte("png"),
			},
			cardCharge: &responses.GatewayCardCharge{TransactionID: "card-tx", Status: "IN_ANALYSIS", TransactionRef: "REF-1"},
			checkout:   &responses.GatewayCheckout{CheckoutID: "CHEC_1", RedirectURL: "https://pay.gw/CHEC_1"},
		},
		antifraud: &fakeAntifraud{decision: "APPROVED"},
		locker:    &fakeLocker{},
		storage:   &fakeStorage{},
		notifier:  &fakeNotifier{},
		config: &config.InternalConfig{
			Payment: config.AppPayment{CallbackBaseUrl: "https://api.example.com/"},
			Minio:   config.AppMinio{QRCodeBucketName: "qrcodes"},
		},
	}
}

func (f *fixture) usecase() contracts.PaymentUsecase {
	return NewPaymentUsecase(PaymentUsecaseDeps{
		OrderRepository:       f.orders,
		TransactionRepository: f.transactions,
		PaymentGateway:        f.gateway,
		AntifraudService:      f.antifraud,
		LockerService:         f.locker,
		Storage:               f.storage,
		NotificationUsecase:   f.notifier,
		Metrics:               metrics.NewNoopMetrics(),
	}, f.config, zap.NewNop())
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
}

// initiators runs each initiation flow and returns the gateway id it reports.
var initiators = map[string]func(uc contracts.PaymentUsecase, orderID, requesterID string) (string, error){
	"pix": func(uc contracts.PaymentUsecase, orderID, requesterID string) (string, error) {
		response, err := uc.CreatePixCharge(testContext(), orderID, requesterID)
		if err != nil {
			return "", err
		}
		return response.TransactionID, nil
	},
	"card": func(uc contracts.PaymentUsecase, orderID, requesterID string) (string, error) {
		response, err := uc.ProcessCardPayment(testContext(), orderID, requesterID, &requests.CardPaymentRequest{CardToken: "tok"})
		if err != nil {
			return "", err
		}
		return response.TransactionID, nil
	},
	"checkout": func(uc contracts.PaymentUsecase, orderID, requesterID string) (string, error) {
		response, err := uc.CreateCheckout(testContext(), orderID, requesterID)
		if err != nil {
			return "", err
		}
		return response.CheckoutID, nil
	},
}

func TestCreatePixCharge_NewChargeIsRecorded(t *testing.T) {
	f := newFixture()

	response, err := f.usecase().CreatePixCharge(testContext(), "order-1", testUserID)

	require.NoError(t, err)
	assert.Equal(t, "tx1", response.TransactionID)
	assert.Equal(t, constvars.PixStatusPending, response.Status)
	assert.Equal(t, "pix-code", response.Code)
	assert.Equal(t, "order-1", response.OrderID)
	assert.True(t, decimal.RequireFromString("150.50").Equal(response.Amount))

	transaction := f.transactions.get("order-1")
	require.NotNil(t, transaction)
	assert.Equal(t, "PENDING", transaction.Status)
	assert.Equal(t, "tx1", transaction.GatewayTransactionID)
	assert.Equal(t, models.PaymentMethodPix, transaction.PaymentMethod)
	assert.Equal(t, models.FraudDecisionApproved, transaction.FraudDecision)
	assert.Equal(t, models.OrderStatusPending, f.orders.status("order-1"))

	assert.Equal(t, int64(15050), f.gateway.lastPayload.AmountInCents)
	assert.Equal(t, int64(5025), f.gateway.lastPayload.Items[0].UnitAmountCent)
	assert.Equal(t, 1, f.locker.unlocked)

	assert.Len(t, f.storage.uploads, 1)
	assert.Equal(t, "qrcodes/"+transaction.ID+".png", f.transactions.artifacts[transaction.ID])
}

func TestInitiation_IsIdempotent(t *testing.T) {
	for name, initiate := range initiators {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			uc := f.usecase()

			first, err := initiate(uc, "order-1", testUserID)
			require.NoError(t, err)
			second, err := initiate(uc, "order-1", testUserID)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			assert.Equal(t, 1, f.gateway.calls())
			assert.Equal(t, 1, f.transactions.count())
			assert.Equal(t, 1, f.antifraud.calls)
		})
	}
}

func TestInitiation_RejectsForeignRequester(t *testing.T) {
	for name, initiate := range initiators {
		t.Run(name, func(t *testing.T) {
			tests := []struct {
				orderID     string
				requesterID string
				kind        exceptions.ErrorKind
			}{
				{orderID: "order-1", requesterID: "someone-else", kind: exceptions.KindUnauthorized},
				{orderID: "order-1", requesterID: "", kind: exceptions.KindUnauthorized},
				{orderID: "order-1", requesterID: testGuestID, kind: exceptions.KindUnauthorized},
				{orderID: "guest-order", requesterID: testUserID, kind: exceptions.KindUnauthorized},
				{orderID: "orphan-order", requesterID: testUserID, kind: exceptions.KindInvalidState},
			}
			for _, tt := range tests {
				f := newFixture()

				_, err := initiate(f.usecase(), tt.orderID, tt.requesterID)

				require.Error(t, err, "%s by %q", tt.orderID, tt.requesterID)
				assert.Equal(t, tt.kind, exceptions.KindOf(err), "%s by %q", tt.orderID, tt.requesterID)
				assert.Zero(t, f.gateway.calls())
				assert.Zero(t, f.antifraud.calls)
			}
		})
	}
}

func TestInitiation_GuestOwnerIsAccepted(t *testing.T) {
	f := newFixture()

	response, err := f.usecase().CreateCheckout(testContext(), "guest-order", testGuestID)

	require.NoError(t, err)
	assert.Equal(t, "https://pay.gw/CHEC_1", response.RedirectURL)
	assert.Equal(t, "CHEC_1", f.transactions.get("guest-order").GatewayTransactionID)
}

func TestInitiation_OrderStateChecks(t *testing.T) {
	f := newFixture()
	uc := f.usecase()

	_, err := uc.CreatePixCharge(testContext(), "missing", testUserID)
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))

	_, err = uc.CreatePixCharge(testContext(), "paid-order", testUserID)
	assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))

	assert.Zero(t, f.gateway.calls())
}

func TestInitiation_AntifraudGate(t *testing.T) {
	for name, initiate := range initiators {
		t.Run(name+" denied", func(t *testing.T) {
			f := newFixture()
			f.antifraud.decision = "DENIED"

			_, err := initiate(f.usecase(), "order-1", testUserID)

			require.Error(t, err)
			assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))
			assert.Zero(t, f.gateway.calls())
			assert.Zero(t, f.transactions.count())
		})

		t.Run(name+" approved", func(t *testing.T) {
			f := newFixture()

			_, err := initiate(f.usecase(), "order-1", testUserID)

			require.NoError(t, err)
			assert.Equal(t, 1, f.gateway.calls())
			assert.Equal(t, "order-1", f.antifraud.last.OrderID)
			assert.Len(t, f.antifraud.last.Items, 2)
		})
	}
}

func TestInitiation_ReviewProceedsAndIsRecorded(t *testing.T) {
	f := newFixture()
	f.antifraud.decision = "review"

	_, err := f.usecase().CreateCheckout(testContext(), "order-1", testUserID)

	require.NoError(t, err)
	assert.Equal(t, models.FraudDecisionReview, f.transactions.get("order-1").FraudDecision)
}

func TestInitiation_AntifraudFailureBlocksPayment(t *testing.T) {
	f := newFixture()
	f.antifraud.err = exceptions.ErrAntifraudRequest(errors.New("timeout"))

	_, err := f.usecase().CreatePixCharge(testContext(), "order-1", testUserID)

	assert.True(t, exceptions.IsKind(err, exceptions.KindGatewayFailure))
	assert.Zero(t, f.gateway.calls())
}

func TestInitiation_MissingCallbackURLIsConfigurationError(t *testing.T) {
	f := newFixture()
	f.config.Payment.CallbackBaseUrl = ""

	_, err := f.usecase().CreatePixCharge(testContext(), "order-1", testUserID)

	require.Error(t, err)
	assert.Equal(t, exceptions.KindConfiguration, exceptions.KindOf(err))
	assert.Zero(t, f.gateway.calls())
}

func TestInitiation_GatewayErrors(t *testing.T) {
	t.Run("unclassified error is normalized", func(t *testing.T) {
		f := newFixture()
		f.gateway.createErr = errors.New("connection reset by peer")

		_, err := f.usecase().CreatePixCharge(testContext(), "order-1", testUserID)

		require.Error(t, err)
		assert.Equal(t, exceptions.KindGatewayFailure, exceptions.KindOf(err))
		assert.Zero(t, f.transactions.count())
	})

	t.Run("classified error is kept", func(t *testing.T) {
		f := newFixture()
		f.gateway.createErr = exceptions.ErrGatewayUnexpectedStatus(422, "invalid card")

		_, err := f.usecase().ProcessCardPayment(testContext(), "order-1", testUserID, &requests.CardPaymentRequest{CardToken: "tok"})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Contains(t, customErr.DevMessage, "invalid card")
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})
}

func TestInitiation_ConcurrentInsertReusesExistingRow(t *testing.T) {
	f := newFixture()
	f.transactions.concurrentRow = &models.Transaction{
		ID:                   "existing",
		OrderID:              "order-1",
		Status:               "PENDING",
		PaymentMethod:        models.PaymentMethodCheckout,
		GatewayTransactionID: "CHEC_WINNER",
		GatewayReference:     "https://pay.gw/CHEC_WINNER",
	}
	f.gateway.detailsErr = errors.New("gateway down")

	response, err := f.usecase().CreateCheckout(testContext(), "order-1", testUserID)

	require.NoError(t, err)
	assert.Equal(t, "CHEC_WINNER", response.CheckoutID)
	assert.Equal(t, "https://pay.gw/CHEC_WINNER", response.RedirectURL)
	assert.Equal(t, 1, f.transactions.count())
}

func TestInitiation_LockBusyWithoutTransaction(t *testing.T) {
	f := newFixture()
	f.locker.busy = true

	_, err := f.usecase().CreatePixCharge(testContext(), "order-1", testUserID)

	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	assert.Zero(t, f.gateway.calls())
}

func TestInitiation_LockUnavailableStillProceeds(t *testing.T) {
	f := newFixture()
	f.locker.err = errors.New("redis: connection refused")

	response, err := f.usecase().CreatePixCharge(testContext(), "order-1", testUserID)

	require.NoError(t, err)
	assert.Equal(t, "tx1", response.TransactionID)
	assert.Zero(t, f.locker.unlocked)
}

func TestInitiation_LookupFailureNeverChargesTwice(t *testing.T) {
	for name, initiate := range initiators {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			uc := f.usecase()

			_, err := initiate(uc, "order-1", testUserID)
			require.NoError(t, err)

			f.transactions.findErr = errors.New("db blip")
			_, err = initiate(uc, "order-1", testUserID)

			require.Error(t, err)
			assert.Equal(t, exceptions.KindInternal, exceptions.KindOf(err))
			assert.Equal(t, 1, f.gateway.calls())
			assert.Equal(t, 1, f.antifraud.calls)
			assert.Equal(t, 1, f.transactions.count())
		})
	}
}

func TestProcessCardPayment_PaidChargeMarksOrderPaid(t *testing.T) {
	f := newFixture()
	f.gateway.cardCharge = &responses.GatewayCardCharge{TransactionID: "card-tx", Status: "PAID", TransactionRef: "REF-9"}

	response, err := f.usecase().ProcessCardPayment(testContext(), "order-1", testUserID, &requests.CardPaymentRequest{CardToken: "  tok  "})

	require.NoError(t, err)
	assert.Equal(t, "PAID", response.Status)
	assert.Equal(t, "REF-9", response.TransactionRef)
	assert.Equal(t, "tok", f.gateway.lastCardToken)
	assert.Equal(t, models.OrderStatusPaid, f.orders.status("order-1"))
	assert.Equal(t, "PAID", f.transactions.get("order-1").Status)
	assert.Equal(t, []notification{{orderID: "order-1", status: models.OrderStatusPaid}}, f.notifier.sent)
}

func TestProcessCardPayment_PendingChargeKeepsOrderPending(t *testing.T) {
	f := newFixture()

	response, err := f.usecase().ProcessCardPayment(testContext(), "order-1", testUserID, &requests.CardPaymentRequest{CardToken: "tok"})

	require.NoError(t, err)
	assert.Equal(t, "PENDING", response.Status)
	assert.Equal(t, models.OrderStatusPending, f.orders.status("order-1"))
	assert.Empty(t, f.notifier.sent)
}

func TestProcessCardPayment_RejectsInvalidRequest(t *testing.T) {
	f := newFixture()

	_, err := f.usecase().ProcessCardPayment(testContext(), "order-1", testUserID, &requests.CardPaymentRequest{CardToken: " ", Installments: 24})

	require.Error(t, err)
	assert.Zero(t, f.gateway.calls())
}

func TestCreatePixCharge_ReconstructionFallsBackToStoredValues(t *testing.T) {
	f := newFixture()
	uc := f.usecase()

	_, err := uc.CreatePixCharge(testContext(), "order-1", testUserID)
	require.NoError(t, err)

	f.gateway.detailsErr = errors.New("gateway down")
	f.gateway.orderErr = errors.New("gateway down")

	response, err := uc.CreatePixCharge(testContext(), "order-1", testUserID)

	require.NoError(t, err)
	assert.Equal(t, "tx1", response.TransactionID)
	assert.Equal(t, "pix-code", response.Code)
	assert.Equal(t, "https://gw/qrcode/tx1/png", response.QRCodeImage)
	assert.Equal(t, constvars.PixStatusPending, response.Status)
}

func TestCreatePixCharge_ReconstructionUsesLiveGatewayData(t *testing.T) {
	f := newFixture()
	uc := f.usecase()

	_, err := uc.CreatePixCharge(testContext(), "order-1", testUserID)
	require.NoError(t, err)

	f.gateway.details = &responses.GatewayCheckoutDetails{Charges: []responses.GatewayCharge{{ID: "CHAR_1", Status: "DECLINED"}}}
	f.gateway.orderDetails = &responses.GatewayOrderDetails{QRCodes: []responses.GatewayQRCode{{Text: "fresh-code"}}}

	response, err := uc.CreatePixCharge(testContext(), "order-1", testUserID)

	require.NoError(t, err)
	assert.Equal(t, "fresh-code", response.Code)
	assert.Equal(t, constvars.PixStatusFailed, response.Status)
}
