package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodGateway PaymentMethod = "GATEWAY"
	PaymentMethodManual  PaymentMethod = "MANUAL"
)

type PaymentItemType string

const (
	// PaymentItemBooking covers the tool and reagent lines of the request,
	// priced from the creation-time snapshot.
	PaymentItemBooking PaymentItemType = "BOOKING"
	PaymentItemDamage  PaymentItemType = "DAMAGE"
	PaymentItemPenalty PaymentItemType = "PENALTY"
)

// Payment is one monetary obligation tied to a request. A request starts with
// one BOOKING payment; staff may add DAMAGE or PENALTY payments later.
type Payment struct {
	ID             int32           `json:"id"`
	RequestID      int32           `json:"request_id"`
	AmountCents    int64           `json:"amount_cents"`
	Method         PaymentMethod   `json:"payment_method"`
	Status         PaymentStatus   `json:"payment_status"`
	ItemType       PaymentItemType `json:"item_type"`
	Description    string          `json:"description"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CreatedOn      time.Time       `json:"created_on"`
	UpdatedOn      time.Time       `json:"updated_on"`
}

// Terminal reports whether no further status transitions are allowed.
func (p *Payment) Terminal() bool {
	return p.Status == PaymentStatusPaid || p.Status == PaymentStatusFailed
}
