package finance

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Payment Gateway Errors
// ---------------------------------------------------------------------------

var (
	ErrPaymentInvalidReference = errors.New("payment: invalid reference")
	ErrPaymentInvalidAmount    = errors.New("payment: invalid payment amount")
	ErrPaymentInvalidCurrency  = errors.New("payment: invalid currency")
	ErrPaymentOrderMissing     = errors.New("payment: webhook payload has no order reference")

	ErrGatewayNotConfigured   = errors.New("payment: gateway not configured")
	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")
	ErrGatewayInvalidPayload  = errors.New("payment: invalid webhook payload")
)

// PaymentGatewayType represents the type of payment gateway
type PaymentGatewayType string

const (
	// PaymentGatewayTypeWompi represents the Wompi checkout
	PaymentGatewayTypeWompi PaymentGatewayType = "WOMPI"
)

// String returns the string representation of PaymentGatewayType
func (t PaymentGatewayType) String() string {
	return string(t)
}

// GatewayTransactionStatus is the status reported by the gateway
type GatewayTransactionStatus string

const (
	GatewayStatusPending  GatewayTransactionStatus = "PENDING"
	GatewayStatusApproved GatewayTransactionStatus = "APPROVED"
	GatewayStatusDeclined GatewayTransactionStatus = "DECLINED"
	GatewayStatusVoided   GatewayTransactionStatus = "VOIDED"
	GatewayStatusError    GatewayTransactionStatus = "ERROR"
)

// IsSuccess returns true if the transaction was approved
func (s GatewayTransactionStatus) IsSuccess() bool {
	return s == GatewayStatusApproved
}

// DefaultCurrency is used when the checkout request carries none
const DefaultCurrency = "COP"

// ReferencePrefix starts every checkout reference
const ReferencePrefix = "BAY-"

// NewPaymentReference returns a checkout reference: the prefix followed by
// eight upper-case hex characters
func NewPaymentReference() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return ReferencePrefix + strings.ToUpper(hex[:8])
}

// AmountInCents converts an amount to integer cents, truncating fractions
// of a cent
func AmountInCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// ---------------------------------------------------------------------------
// Payment Request/Response DTOs
// ---------------------------------------------------------------------------

// CheckoutRequest represents a request to build a checkout session
type CheckoutRequest struct {
	// OrderID is our internal order ID
	OrderID uuid.UUID
	// Reference is the checkout reference shown to the gateway
	Reference string
	// Amount is the total to charge
	Amount decimal.Decimal
	// Currency is the payment currency (default: COP)
	Currency string
	// RedirectURL is where the buyer lands after paying
	RedirectURL string
	// CustomerEmail prefills the checkout form
	CustomerEmail string
}

// Validate validates the checkout request
func (r *CheckoutRequest) Validate() error {
	if !strings.HasPrefix(r.Reference, ReferencePrefix) {
		return ErrPaymentInvalidReference
	}
	if !r.Amount.IsPositive() {
		return ErrPaymentInvalidAmount
	}
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	if len(r.Currency) != 3 {
		return ErrPaymentInvalidCurrency
	}
	return nil
}

// CheckoutSession is everything the storefront widget needs to open the
// gateway checkout
type CheckoutSession struct {
	PublicKey     string `json:"public_key"`
	Reference     string `json:"reference"`
	AmountInCents int64  `json:"amount_in_cents"`
	Currency      string `json:"currency"`
	Signature     string `json:"signature"`
	RedirectURL   string `json:"redirect_url"`
	CheckoutURL   string `json:"checkout_url"`
}

// GatewayTransaction is a transaction as reported by the gateway
type GatewayTransaction struct {
	ID            string                   `json:"id"`
	Reference     string                   `json:"reference"`
	Status        GatewayTransactionStatus `json:"status"`
	AmountInCents int64                    `json:"amount_in_cents"`
	Currency      string                   `json:"currency"`
	PaymentMethod string                   `json:"payment_method_type"`
	CustomerEmail string                   `json:"customer_email"`
	Raw           map[string]interface{}   `json:"raw,omitempty"`
}

// WebhookEvent is a parsed gateway notification
type WebhookEvent struct {
	Event         string
	TransactionID string
	Reference     string
	Status        GatewayTransactionStatus
	// OrderID is set when the payload names the order explicitly
	OrderID *uuid.UUID
}

// ---------------------------------------------------------------------------
// Payment Gateway Interface (Port)
// ---------------------------------------------------------------------------

// PaymentGateway defines the port interface for external payment gateways.
// Concrete implementations live in the infrastructure layer.
type PaymentGateway interface {
	// GatewayType returns the type of this payment gateway
	GatewayType() PaymentGatewayType

	// CreateCheckout builds a signed checkout session
	CreateCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)

	// GetTransaction fetches a transaction from the gateway
	GetTransaction(ctx context.Context, transactionID string) (*GatewayTransaction, error)

	// ParseWebhook parses a gateway notification body
	ParseWebhook(payload []byte) (*WebhookEvent, error)
}
