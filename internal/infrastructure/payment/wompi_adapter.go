package payment

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bayup/backend/internal/domain/finance"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxResponseBytes caps how much of a gateway response is read
const maxResponseBytes = 1 << 20

// WompiAdapter implements finance.PaymentGateway for the Wompi checkout
type WompiAdapter struct {
	config     *WompiConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWompiAdapter creates a new Wompi adapter. Missing keys only disable
// checkout signing; webhook parsing and transaction lookups keep working.
func NewWompiAdapter(cfg *WompiConfig, logger *zap.Logger) *WompiAdapter {
	cfg = cfg.withDefaults()
	return &WompiAdapter{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// GatewayType returns the gateway type
func (a *WompiAdapter) GatewayType() finance.PaymentGatewayType {
	return finance.PaymentGatewayTypeWompi
}

// IntegritySignature returns sha256hex(reference + amount_in_cents +
// currency + secret), the value the Wompi widget expects
func IntegritySignature(reference string, amountInCents int64, currency, secret string) string {
	sum := sha256.Sum256([]byte(reference + strconv.FormatInt(amountInCents, 10) + currency + secret))
	return hex.EncodeToString(sum[:])
}

// CreateCheckout signs a checkout session. No API call is made.
func (a *WompiAdapter) CreateCheckout(_ context.Context, req *finance.CheckoutRequest) (*finance.CheckoutSession, error) {
	if !a.config.CanSign() {
		return nil, finance.ErrGatewayNotConfigured
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cents := finance.AmountInCents(req.Amount)
	signature := IntegritySignature(req.Reference, cents, req.Currency, a.config.IntegritySecret)

	return &finance.CheckoutSession{
		PublicKey:     a.config.PublicKey,
		Reference:     req.Reference,
		AmountInCents: cents,
		Currency:      req.Currency,
		Signature:     signature,
		RedirectURL:   req.RedirectURL,
		CheckoutURL:   a.checkoutURL(req, cents, signature),
	}, nil
}

// checkoutURL builds the hosted checkout link for clients that do not embed
// the widget
func (a *WompiAdapter) checkoutURL(req *finance.CheckoutRequest, cents int64, signature string) string {
	q := url.Values{}
	q.Set("public-key", a.config.PublicKey)
	q.Set("currency", req.Currency)
	q.Set("amount-in-cents", strconv.FormatInt(cents, 10))
	q.Set("reference", req.Reference)
	q.Set("signature:integrity", signature)
	if req.RedirectURL != "" {
		q.Set("redirect-url", req.RedirectURL)
	}
	if req.CustomerEmail != "" {
		q.Set("customer-data:email", req.CustomerEmail)
	}
	return a.config.CheckoutURL + "?" + q.Encode()
}

// GetTransaction fetches GET {api}/transactions/{id}
func (a *WompiAdapter) GetTransaction(ctx context.Context, transactionID string) (*finance.GatewayTransaction, error) {
	endpoint := a.config.APIURL + wompiTransactionPath + url.PathEscape(transactionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("wompi: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if a.config.PrivateKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.config.PrivateKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", finance.ErrGatewayRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("wompi: failed to read response: %w", err)
	}

	var envelope wompiEnvelope
	decodeErr := json.Unmarshal(body, &envelope)
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: transaction %s not found", finance.ErrGatewayRequestFailed, transactionID)
	}
	if resp.StatusCode >= 400 {
		if decodeErr == nil && envelope.Error != nil {
			return nil, fmt.Errorf("%w: %s - %s", finance.ErrGatewayRequestFailed, envelope.Error.Type, envelope.Error.Reason)
		}
		return nil, fmt.Errorf("%w: HTTP %d", finance.ErrGatewayRequestFailed, resp.StatusCode)
	}
	if decodeErr != nil || envelope.Data == nil {
		return nil, finance.ErrGatewayInvalidResponse
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(body, &raw)
	tx := toGatewayTransaction(envelope.Data)
	if data, ok := raw["data"].(map[string]interface{}); ok {
		tx.Raw = data
	}
	return tx, nil
}

// ParseWebhook parses a Wompi event. When an events secret is configured
// every event must carry a signature whose checksum matches.
func (a *WompiAdapter) ParseWebhook(payload []byte) (*finance.WebhookEvent, error) {
	var event wompiEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", finance.ErrGatewayInvalidPayload, err)
	}

	if a.config.EventsSecret != "" {
		if event.Signature == nil || event.Signature.Checksum == "" {
			a.logger.Warn("wompi webhook without signature", zap.String("event", event.Event))
			return nil, fmt.Errorf("%w: missing signature", finance.ErrGatewayInvalidPayload)
		}
		if err := a.verifyChecksum(payload, &event); err != nil {
			return nil, err
		}
	}

	out := &finance.WebhookEvent{Event: event.Event}
	if tx := event.Data.Transaction; tx != nil {
		out.TransactionID = tx.ID
		out.Reference = tx.Reference
		out.Status = finance.GatewayTransactionStatus(strings.ToUpper(tx.Status))
	}
	if event.OrderID != "" {
		id, err := uuid.Parse(event.OrderID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid order_id", finance.ErrGatewayInvalidPayload)
		}
		out.OrderID = &id
	}
	if out.OrderID == nil && out.Reference == "" {
		return nil, finance.ErrPaymentOrderMissing
	}
	return out, nil
}

// verifyChecksum recomputes sha256(values of signature.properties +
// timestamp + events secret)
func (a *WompiAdapter) verifyChecksum(payload []byte, event *wompiEvent) error {
	var generic struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(payload, &generic); err != nil {
		return fmt.Errorf("%w: %v", finance.ErrGatewayInvalidPayload, err)
	}

	var b strings.Builder
	for _, prop := range event.Signature.Properties {
		b.WriteString(lookupProperty(generic.Data, prop))
	}
	b.WriteString(strconv.FormatInt(event.Timestamp, 10))
	b.WriteString(a.config.EventsSecret)

	sum := sha256.Sum256([]byte(b.String()))
	expected := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(event.Signature.Checksum))) != 1 {
		a.logger.Warn("wompi webhook checksum mismatch", zap.String("event", event.Event))
		return fmt.Errorf("%w: checksum mismatch", finance.ErrGatewayInvalidPayload)
	}
	return nil
}

// lookupProperty resolves a dotted path such as "transaction.amount_in_cents"
func lookupProperty(data map[string]interface{}, path string) string {
	var current interface{} = data
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current = m[key]
	}
	switch v := current.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func toGatewayTransaction(tx *wompiTransaction) *finance.GatewayTransaction {
	return &finance.GatewayTransaction{
		ID:            tx.ID,
		Reference:     tx.Reference,
		Status:        finance.GatewayTransactionStatus(strings.ToUpper(tx.Status)),
		AmountInCents: tx.AmountInCents,
		Currency:      tx.Currency,
		PaymentMethod: tx.PaymentMethodType,
		CustomerEmail: tx.CustomerEmail,
	}
}

var _ finance.PaymentGateway = (*WompiAdapter)(nil)
