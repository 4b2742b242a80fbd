package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

// Request is the committed booking. Prices on its lines are snapshots frozen at
// submission time; later catalog price changes never affect an existing request.
// Requests are never deleted, rejection and cancellation are status transitions.
type Request struct {
	ID          int32         `json:"id"`
	RequesterID int32         `json:"requester_id"`
	RequestDate time.Time     `json:"request_date"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Notes       string        `json:"notes"`
	AdminNotes  string        `json:"admin_notes"`
	Status      RequestStatus `json:"status"`
	TotalCents  int64         `json:"total_cents"`
	CreatedOn   time.Time     `json:"created_on"`
	UpdatedOn   time.Time     `json:"updated_on"`

	// Populated when fetching request details
	ToolLines    []RequestToolLine    `json:"tool_lines,omitempty"`
	ReagentLines []RequestReagentLine `json:"reagent_lines,omitempty"`
	Payments     []Payment            `json:"payments,omitempty"`
	Schedule     *Schedule            `json:"schedule,omitempty"`
}

type RequestToolLine struct {
	ID              int32 `json:"id"`
	RequestID       int32 `json:"request_id"`
	ToolID          int32 `json:"tool_id"`
	Quantity        int32 `json:"quantity"`
	HourlyRateCents int64 `json:"hourly_rate_cents"`
	SubtotalCents   int64 `json:"subtotal_cents"`
}

type RequestReagentLine struct {
	ID                int32           `json:"id"`
	RequestID         int32           `json:"request_id"`
	ReagentID         int32           `json:"reagent_id"`
	EstimatedQty      decimal.Decimal `json:"estimated_qty"`
	PricePerUnitCents int64           `json:"price_per_unit_cents"`
	SubtotalCents     int64           `json:"subtotal_cents"`
}

// BillableHours returns the whole hours charged for a usage window: the
// duration rounded up, minimum one hour.
func BillableHours(start, end time.Time) int64 {
	hours := int64(math.Ceil(end.Sub(start).Hours()))
	if hours < 1 {
		hours = 1
	}
	return hours
}

// ToolLineSubtotalCents computes rate x quantity x billable hours.
func ToolLineSubtotalCents(rateCents int64, qty int32, start, end time.Time) int64 {
	return rateCents * int64(qty) * BillableHours(start, end)
}

// ReagentLineSubtotalCents computes price x estimated quantity, rounded to the
// nearest cent.
func ReagentLineSubtotalCents(priceCents int64, qty decimal.Decimal) int64 {
	return decimal.NewFromInt(priceCents).Mul(qty).Round(0).IntPart()
}
