package payment

// wompiEnvelope wraps every Wompi API response
type wompiEnvelope struct {
	Data  *wompiTransaction `json:"data"`
	Error *wompiError       `json:"error"`
}

type wompiError struct {
	Type     string      `json:"type"`
	Reason   string      `json:"reason"`
	Messages interface{} `json:"messages"`
}

type wompiTransaction struct {
	ID                string `json:"id"`
	Reference         string `json:"reference"`
	Status            string `json:"status"`
	AmountInCents     int64  `json:"amount_in_cents"`
	Currency          string `json:"currency"`
	PaymentMethodType string `json:"payment_method_type"`
	CustomerEmail     string `json:"customer_email"`
}

// wompiEvent is the body of a Wompi webhook notification
type wompiEvent struct {
	Event string `json:"event"`
	Data  struct {
		Transaction *wompiTransaction `json:"transaction"`
	} `json:"data"`
	Signature *struct {
		Properties []string `json:"properties"`
		Checksum   string   `json:"checksum"`
	} `json:"signature"`
	Timestamp int64 `json:"timestamp"`
	// OrderID lets internal callers name the order directly
	OrderID string `json:"order_id"`
}
