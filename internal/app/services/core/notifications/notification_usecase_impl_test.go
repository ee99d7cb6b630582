package notifications

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/dto/requests"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func testOrder() *models.Order {
	userID := "user-1"
	return &models.Order{
		ID:       "order-1",
		Status:   models.OrderStatusPending,
		UserID:   &userID,
		Total:    decimal.RequireFromString("42.5"),
		Customer: models.Customer{Name: "Ana", Email: "ana@example.com"},
	}
}

func newUsecase(mailer *mockMailer) *notificationUsecase {
	internalConfig := &config.InternalConfig{
		Mailer: config.AppMailer{EmailSender: "shop@example.com"},
	}
	return NewNotificationUsecase(mailer, internalConfig, zap.NewNop()).(*notificationUsecase)
}

func TestNotifyOrderStatus_Templates(t *testing.T) {
	tests := []struct {
		name     string
		status   models.OrderStatus
		template string
		subject  string
	}{
		{name: "paid", status: models.OrderStatusPaid, template: "order_confirmation", subject: "Payment confirmed for order order-1"},
		{name: "cancelled", status: models.OrderStatusCancelled, template: "order_cancellation", subject: "Order order-1 has been cancelled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := new(mockMailer)
			mailer.On("SendEmail", mock.Anything, mock.MatchedBy(func(p *requests.EmailPayload) bool {
				return p.TemplateName == tt.template &&
					p.Subject == tt.subject &&
					p.From == "shop@example.com" &&
					assert.ObjectsAreEqual([]string{"ana@example.com"}, p.To) &&
					p.TemplateData["total"] == "42.50"
			})).Return(nil).Once()

			newUsecase(mailer).NotifyOrderStatus(context.Background(), testOrder(), tt.status)

			mailer.AssertExpectations(t)
		})
	}
}

func TestNotifyOrderStatus_SkipsOtherStatuses(t *testing.T) {
	mailer := new(mockMailer)

	newUsecase(mailer).NotifyOrderStatus(context.Background(), testOrder(), models.OrderStatusShipped)
	newUsecase(mailer).NotifyOrderStatus(context.Background(), testOrder(), models.OrderStatusPending)

	mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestNotifyOrderStatus_NoRecipient(t *testing.T) {
	mailer := new(mockMailer)
	order := testOrder()
	order.Customer.Email = ""

	newUsecase(mailer).NotifyOrderStatus(context.Background(), order, models.OrderStatusPaid)

	mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestNotifyOrderStatus_SwallowsMailerError(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	assert.NotPanics(t, func() {
		newUsecase(mailer).NotifyOrderStatus(context.Background(), testOrder(), models.OrderStatusPaid)
	})
	mailer.AssertExpectations(t)
}
