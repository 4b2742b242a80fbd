package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReagentStatus string

const (
	ReagentStatusUseable ReagentStatus = "USEABLE"
	ReagentStatusExpired ReagentStatus = "EXPIRED"
)

// Reagent stock is quantity-based, not unit-count based. StockQuantity is the
// physical amount on the shelf; ReservedQuantity is the portion held by
// not-yet-completed requests. Available amount = StockQuantity - ReservedQuantity.
type Reagent struct {
	ID                int32           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	Unit              string          `json:"unit"`
	PricePerUnitCents int64           `json:"price_per_unit_cents"`
	Status            ReagentStatus   `json:"status"`
	ExpiredDate       *time.Time      `json:"expired_date,omitempty"`
	ImageURL          string          `json:"image_url,omitempty"`
	CreatedOn         time.Time       `json:"created_on"`
	UpdatedOn         time.Time       `json:"updated_on"`
}

// AvailableQuantity returns the amount not currently held by open requests.
func (r *Reagent) AvailableQuantity() decimal.Decimal {
	return r.StockQuantity.Sub(r.ReservedQuantity)
}
