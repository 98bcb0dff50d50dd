package payment

import (
	"strings"
	"time"

	"github.com/bayup/backend/internal/infrastructure/config"
)

const (
	wompiSandboxAPIURL   = "https://sandbox.wompi.co/v1"
	wompiDefaultCheckout = "https://checkout.wompi.co/p/"
	wompiTransactionPath = "/transactions/"
	wompiDefaultTimeout  = 15 * time.Second
)

// WompiConfig contains the credentials of a Wompi merchant
type WompiConfig struct {
	// PublicKey identifies the merchant to the checkout widget
	PublicKey string
	// PrivateKey authenticates server-side API calls
	PrivateKey string
	// IntegritySecret signs checkout sessions
	IntegritySecret string
	// EventsSecret verifies webhook checksums; empty skips verification
	EventsSecret string
	// APIURL is the REST base, e.g. https://production.wompi.co/v1
	APIURL string
	// CheckoutURL is the hosted checkout page
	CheckoutURL string
	// Timeout bounds every API call
	Timeout time.Duration
}

// WompiConfigFromApp maps the application payment settings
func WompiConfigFromApp(cfg config.PaymentConfig) *WompiConfig {
	return &WompiConfig{
		PublicKey:       cfg.PublicKey,
		PrivateKey:      cfg.PrivateKey,
		IntegritySecret: cfg.IntegritySecret,
		EventsSecret:    cfg.EventsSecret,
		APIURL:          cfg.APIURL,
		CheckoutURL:     cfg.CheckoutURL,
		Timeout:         cfg.Timeout,
	}
}

// CanSign reports whether checkout sessions can be built
func (c *WompiConfig) CanSign() bool {
	return c.PublicKey != "" && c.IntegritySecret != ""
}

func (c *WompiConfig) withDefaults() *WompiConfig {
	out := *c
	if out.APIURL == "" {
		out.APIURL = wompiSandboxAPIURL
	}
	out.APIURL = strings.TrimRight(out.APIURL, "/")
	if out.CheckoutURL == "" {
		out.CheckoutURL = wompiDefaultCheckout
	}
	if out.Timeout <= 0 {
		out.Timeout = wompiDefaultTimeout
	}
	return &out
}
