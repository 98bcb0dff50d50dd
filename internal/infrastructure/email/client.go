package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bayup/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrDeliveryFailed is returned when Resend does not accept a message
var ErrDeliveryFailed = errors.New("email: delivery failed")

// Message is one outgoing email
type Message struct {
	To      string
	Subject string
	HTML    string
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Name    string `json:"name"`
}

// ResendClient posts messages to the Resend emails API
type ResendClient struct {
	apiKey     string
	baseURL    string
	from       string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewResendClient creates a new ResendClient. Without an API key every send
// is logged and skipped.
func NewResendClient(cfg config.EmailConfig, logger *zap.Logger) *ResendClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	from := cfg.From
	if from == "" {
		from = "Bayup <hola@bayup.com.co>"
	}
	return &ResendClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		from:       from,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Enabled reports whether an API key is configured
func (c *ResendClient) Enabled() bool {
	return c.apiKey != ""
}

// Send delivers msg and returns the Resend message id. It returns an empty
// id and no error when the client is disabled.
func (c *ResendClient) Send(ctx context.Context, msg Message) (string, error) {
	if !c.Enabled() {
		c.logger.Warn("email not sent, resend api key not configured",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
		)
		return "", nil
	}

	body, err := json.Marshal(resendRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("email: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("email: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var parsed resendResponse
	_ = json.Unmarshal(respBody, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if parsed.Message != "" {
			return "", fmt.Errorf("%w: HTTP %d: %s", ErrDeliveryFailed, resp.StatusCode, parsed.Message)
		}
		return "", fmt.Errorf("%w: HTTP %d", ErrDeliveryFailed, resp.StatusCode)
	}

	c.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("message_id", parsed.ID),
	)
	return parsed.ID, nil
}
