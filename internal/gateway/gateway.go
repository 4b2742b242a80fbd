package gateway

import "context"

// SessionItem is one display line forwarded to the payment provider.
type SessionItem struct {
	Name        string `json:"name"`
	Quantity    int32  `json:"quantity"`
	AmountCents int64  `json:"amount_cents"`
}

// PaymentGateway is the external payment capability. The provider delivers the
// payment outcome asynchronously through the webhook endpoint; this interface
// only opens sessions.
type PaymentGateway interface {
	// CreateSession registers a pending payment with the provider and
	// returns an opaque session token the client redirects with.
	CreateSession(ctx context.Context, paymentID int32, amountCents int64, items []SessionItem) (string, error)
}
