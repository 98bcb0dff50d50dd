package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bayup/backend/internal/domain/finance"
	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// notificationTTL is how long a delivered payment notification is remembered
const notificationTTL = 7 * 24 * time.Hour

// ErrOrderNotFound is returned when a webhook names an unknown order
var ErrOrderNotFound = shared.NewDomainError("NOT_FOUND", "Order not found")

// PaymentNotifier tells the buyer their payment was received
type PaymentNotifier interface {
	SendPaymentReceived(ctx context.Context, order *sales.Order, storeName string) error
}

// WebhookMetrics counts processed gateway notifications
type WebhookMetrics interface {
	RecordPaymentWebhook(ctx context.Context, gateway, status string)
}

// SetMetrics counts each applied webhook
func (s *PaymentService) SetMetrics(m WebhookMetrics) {
	s.metrics = m
}

// CreatePreferenceRequest asks for a checkout session for an order
type CreatePreferenceRequest struct {
	RedirectURL string `json:"redirect_url" binding:"omitempty,url"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
}

// WebhookResult reports what the webhook did
type WebhookResult struct {
	OrderID       uuid.UUID         `json:"order_id"`
	Status        sales.OrderStatus `json:"status"`
	TransactionID string            `json:"transaction_id,omitempty"`
	Notified      bool              `json:"notified"`
}

// PaymentService drives the checkout preference and webhook flow
type PaymentService struct {
	gateway     finance.PaymentGateway
	orderRepo   sales.OrderRepository
	userRepo    identity.UserRepository
	idempotency shared.IdempotencyStore
	notifier    PaymentNotifier
	publisher   shared.EventPublisher
	metrics     WebhookMetrics
	redirectURL string
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService. notifier may be nil.
func NewPaymentService(
	gateway finance.PaymentGateway,
	orderRepo sales.OrderRepository,
	userRepo identity.UserRepository,
	idempotency shared.IdempotencyStore,
	notifier PaymentNotifier,
	redirectURL string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		idempotency: idempotency,
		notifier:    notifier,
		redirectURL: redirectURL,
		logger:      logger,
	}
}

// SetEventPublisher publishes OrderPaid after each applied webhook
func (s *PaymentService) SetEventPublisher(p shared.EventPublisher) {
	s.publisher = p
}

// CreatePreference builds a signed checkout session for an order of the
// store and stores the reference on the order
func (s *PaymentService) CreatePreference(ctx context.Context, tenantID, orderID uuid.UUID, req CreatePreferenceRequest) (*finance.CheckoutSession, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	redirect := req.RedirectURL
	if redirect == "" {
		redirect = s.redirectURL
	}
	checkout := &finance.CheckoutRequest{
		OrderID:       order.ID,
		Reference:     finance.NewPaymentReference(),
		Amount:        order.TotalPrice,
		Currency:      strings.ToUpper(req.Currency),
		RedirectURL:   redirect,
		CustomerEmail: order.CustomerEmail,
	}
	if err := checkout.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}

	session, err := s.gateway.CreateCheckout(ctx, checkout)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.SetPaymentReference(ctx, tenantID, order.ID, session.Reference); err != nil {
		return nil, fmt.Errorf("store payment reference: %w", err)
	}

	s.logger.Info("checkout session created",
		zap.String("order_id", order.ID.String()),
		zap.String("reference", session.Reference),
		zap.Int64("amount_in_cents", session.AmountInCents),
	)
	return session, nil
}

// HandleWebhook marks the referenced order as completed. The status write is
// unconditional, so replays converge on the same state. orderHint, when
// set, takes precedence over the order named in the payload.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, orderHint string) (*WebhookResult, error) {
	event, err := s.parseEvent(payload, orderHint)
	if err != nil {
		return nil, err
	}

	order, err := s.resolveOrder(ctx, event)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, sales.OrderStatusCompleted); err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}
	order.MarkCompleted()

	s.logger.Info("payment webhook applied",
		zap.String("order_id", order.ID.String()),
		zap.String("transaction_id", event.TransactionID),
		zap.String("gateway_status", string(event.Status)),
	)

	if s.metrics != nil {
		s.metrics.RecordPaymentWebhook(ctx, s.gateway.GatewayType().String(), string(event.Status))
	}

	result := &WebhookResult{
		OrderID:       order.ID,
		Status:        order.Status,
		TransactionID: event.TransactionID,
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, sales.NewOrderPaidEvent(order, event.TransactionID)); err != nil {
			s.logger.Warn("failed to publish order paid event", zap.Error(err))
		}
	}
	result.Notified = s.notifyOnce(ctx, order, event)
	return result, nil
}

// GetTransaction proxies a transaction lookup to the gateway
func (s *PaymentService) GetTransaction(ctx context.Context, transactionID string) (*finance.GatewayTransaction, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transaction id is required")
	}
	return s.gateway.GetTransaction(ctx, transactionID)
}

func (s *PaymentService) parseEvent(payload []byte, orderHint string) (*finance.WebhookEvent, error) {
	event := &finance.WebhookEvent{}
	if len(payload) > 0 {
		parsed, err := s.gateway.ParseWebhook(payload)
		switch {
		case err == nil:
			event = parsed
		case orderHint != "" && errors.Is(err, finance.ErrPaymentOrderMissing):
			// a verified body without a reference; the hint names the order
		default:
			return nil, shared.NewDomainError("INVALID_PAYLOAD", err.Error())
		}
	}
	if orderHint != "" {
		id, err := uuid.Parse(orderHint)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid order id")
		}
		event.OrderID = &id
	}
	if event.OrderID == nil && event.Reference == "" {
		return nil, shared.NewDomainError("INVALID_PAYLOAD", finance.ErrPaymentOrderMissing.Error())
	}
	return event, nil
}

func (s *PaymentService) resolveOrder(ctx context.Context, event *finance.WebhookEvent) (*sales.Order, error) {
	var (
		order *sales.Order
		err   error
	)
	switch {
	case event.OrderID != nil:
		order, err = s.orderRepo.FindByIDAny(ctx, *event.OrderID)
	default:
		order, err = s.orderRepo.FindByPaymentReference(ctx, event.Reference)
		if errors.Is(err, shared.ErrNotFound) {
			if id, parseErr := uuid.Parse(event.Reference); parseErr == nil {
				order, err = s.orderRepo.FindByIDAny(ctx, id)
			}
		}
	}
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// notifyOnce sends the payment email the first time a transaction is seen
func (s *PaymentService) notifyOnce(ctx context.Context, order *sales.Order, event *finance.WebhookEvent) bool {
	if s.notifier == nil || order.CustomerEmail == "" {
		return false
	}
	key := "payment:" + event.TransactionID
	if event.TransactionID == "" {
		key = "payment:order:" + order.ID.String()
	}

	if s.idempotency != nil {
		fresh, err := s.idempotency.MarkProcessed(ctx, key, notificationTTL)
		if err != nil {
			s.logger.Warn("idempotency store unavailable, skipping payment email", zap.Error(err))
			return false
		}
		if !fresh {
			s.logger.Debug("payment email already sent", zap.String("key", key))
			return false
		}
	}

	storeName := ""
	if owner, err := s.userRepo.FindByID(ctx, order.TenantID); err == nil {
		storeName = owner.DisplayName()
	}
	if err := s.notifier.SendPaymentReceived(ctx, order, storeName); err != nil {
		s.logger.Warn("payment email failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		if s.idempotency != nil {
			// let the gateway's redelivery try the email again
			if relErr := s.idempotency.Release(ctx, key); relErr != nil {
				s.logger.Warn("release payment email key", zap.String("key", key), zap.Error(relErr))
			}
		}
		return false
	}
	return true
}
