package payments

import (
	"checkout-service/internal/app/models"
	"checkout-service/internal/pkg/dto/requests"
	"checkout-service/internal/pkg/dto/responses"
	"checkout-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"
	"time"
)

type fakeOrderRepository struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	err    error
}

func (r *fakeOrderRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	order, ok := r.orders[orderID]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepository) setStatus(orderID string, status models.OrderStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order, ok := r.orders[orderID]; ok {
		order.Status = status
	}
}

func (r *fakeOrderRepository) status(orderID string) models.OrderStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[orderID].Status
}

// fakeTransactionRepository enforces one transaction per order like the
// unique index does.
type fakeTransactionRepository struct {
	mu        sync.Mutex
	orders    *fakeOrderRepository
	byOrder   map[string]*models.Transaction
	artifacts map[string]string
	findErr   error

	// concurrentRow is stored right before an insert to simulate a request
	// that won the race.
	concurrentRow *models.Transaction
}

func newFakeTransactionRepository(orders *fakeOrderRepository) *fakeTransactionRepository {
	return &fakeTransactionRepository{
		orders:    orders,
		byOrder:   map[string]*models.Transaction{},
		artifacts: map[string]string{},
	}
}

func (r *fakeTransactionRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	transaction, ok := r.byOrder[orderID]
	if !ok {
		return nil, nil
	}
	copied := *transaction
	return &copied, nil
}

func (r *fakeTransactionRepository) FindByGatewayTransactionID(ctx context.Context, gatewayTransactionID string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, transaction := range r.byOrder {
		if transaction.GatewayTransactionID == gatewayTransactionID {
			copied := *transaction
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepository) CreateTransaction(ctx context.Context, transaction *models.Transaction, orderStatus models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.concurrentRow != nil {
		r.byOrder[r.concurrentRow.OrderID] = r.concurrentRow
		r.concurrentRow = nil
	}
	if _, exists := r.byOrder[transaction.OrderID]; exists {
		return exceptions.ErrPostgresDBInsertData(fmt.Errorf("%w: transactions_order_id_key", exceptions.ErrDuplicateEntry))
	}

	now := time.Now()
	transaction.CreatedAt, transaction.UpdatedAt = now, now
	copied := *transaction
	r.byOrder[transaction.OrderID] = &copied
	if orderStatus != models.OrderStatusPending {
		r.orders.setStatus(transaction.OrderID, orderStatus)
	}
	return nil
}

func (r *fakeTransactionRepository) UpdateStatusWithOrder(ctx context.Context, transactionID, orderID string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if transaction, ok := r.byOrder[orderID]; ok {
		transaction.Status = status.String()
	}
	r.orders.setStatus(orderID, status)
	return nil
}

func (r *fakeTransactionRepository) UpdateQRCodeArtifact(ctx context.Context, transactionID, artifact string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts[transactionID] = artifact
	return nil
}

func (r *fakeTransactionRepository) FindStalePending(ctx context.Context, updatedBefore, createdAfter time.Time, limit int) ([]*models.Transaction, error) {
	return nil, nil
}

func (r *fakeTransactionRepository) TouchPending(ctx context.Context, transactionID string) error {
	return nil
}

func (r *fakeTransactionRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byOrder)
}

func (r *fakeTransactionRepository) get(orderID string) *models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byOrder[orderID]
}

type fakeGateway struct {
	mu            sync.Mutex
	createCalls   int
	createErr     error
	pixCharge     *responses.GatewayPixCharge
	cardCharge    *responses.GatewayCardCharge
	checkout      *responses.GatewayCheckout
	details       *responses.GatewayCheckoutDetails
	detailsErr    error
	orderDetails  *responses.GatewayOrderDetails
	orderErr      error
	lastPayload   *requests.PaymentPayload
	lastCardToken string
}

func (g *fakeGateway) CreatePixCharge(ctx context.Context, payload *requests.PaymentPayload, callbackURL string) (*responses.GatewayPixCharge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	g.lastPayload = payload
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.pixCharge, nil
}

func (g *fakeGateway) ProcessCardCharge(ctx context.Context, payload *requests.CardPaymentPayload, callbackURL string) (*responses.GatewayCardCharge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	g.lastPayload = &payload.PaymentPayload
	g.lastCardToken = payload.CardToken
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.cardCharge, nil
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, payload *requests.PaymentPayload, callbackURL string) (*responses.GatewayCheckout, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	g.lastPayload = payload
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.checkout, nil
}

func (g *fakeGateway) GetCheckoutDetails(ctx context.Context, checkoutID string) (*responses.GatewayCheckoutDetails, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.detailsErr != nil {
		return nil, g.detailsErr
	}
	if g.details == nil {
		return &responses.GatewayCheckoutDetails{ID: checkoutID}, nil
	}
	return g.details, nil
}

func (g *fakeGateway) GetOrderDetails(ctx context.Context, orderID string) (*responses.GatewayOrderDetails, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	if g.orderDetails == nil {
		return &responses.GatewayOrderDetails{ID: orderID}, nil
	}
	return g.orderDetails, nil
}

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.createCalls
}

type fakeAntifraud struct {
	decision string
	err      error
	calls    int
	last     *requests.AntifraudRequest
}

func (a *fakeAntifraud) Analyze(ctx context.Context, request *requests.AntifraudRequest) (*responses.AntifraudResult, error) {
	a.calls++
	a.last = request
	if a.err != nil {
		return nil, a.err
	}
	return &responses.AntifraudResult{Decision: a.decision}, nil
}

type fakeLocker struct {
	busy     bool
	err      error
	unlocked int
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if l.err != nil {
		return false, "", l.err
	}
	return !l.busy, "lock-value", nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.unlocked++
	return nil
}

type fakeStorage struct {
	uploads map[string][]byte
}

func (s *fakeStorage) UploadImage(ctx context.Context, imageData []byte, bucketName, fileName, fileExtension string) (string, error) {
	if s.uploads == nil {
		s.uploads = map[string][]byte{}
	}
	s.uploads[bucketName+"/"+fileName] = imageData
	return fileName, nil
}

type notification struct {
	orderID string
	status  models.OrderStatus
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *fakeNotifier) NotifyOrderStatus(ctx context.Context, order *models.Order, status models.OrderStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{orderID: order.ID, status: status})
}
