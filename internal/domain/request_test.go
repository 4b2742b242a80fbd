package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"labreserve-backend/internal/domain"
)

func TestBillableHours(t *testing.T) {
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int64
	}{
		{"WholeHours", start.Add(3 * time.Hour), 3},
		{"PartialHourRoundsUp", start.Add(90 * time.Minute), 2},
		{"SubHourWindowChargesOne", start.Add(10 * time.Minute), 1},
		{"ZeroWindowChargesOne", start, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.BillableHours(start, tt.end))
		})
	}
}

func TestToolLineSubtotalCents(t *testing.T) {
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	// 2500 cents/hour x 2 units x 2 billable hours
	assert.Equal(t, int64(10000), domain.ToolLineSubtotalCents(2500, 2, start, start.Add(2*time.Hour)))
	// partial hour still bills a full one
	assert.Equal(t, int64(5000), domain.ToolLineSubtotalCents(2500, 2, start, start.Add(30*time.Minute)))
}

func TestReagentLineSubtotalCents(t *testing.T) {
	assert.Equal(t, int64(1000), domain.ReagentLineSubtotalCents(50, decimal.NewFromInt(20)))
	// fractional quantities round to the nearest cent
	assert.Equal(t, int64(13), domain.ReagentLineSubtotalCents(50, decimal.RequireFromString("0.25")))
}

func TestPaymentTerminal(t *testing.T) {
	assert.False(t, (&domain.Payment{Status: domain.PaymentStatusPending}).Terminal())
	assert.True(t, (&domain.Payment{Status: domain.PaymentStatusPaid}).Terminal())
	assert.True(t, (&domain.Payment{Status: domain.PaymentStatusFailed}).Terminal())
}

func TestReagentAvailableQuantity(t *testing.T) {
	rg := &domain.Reagent{
		StockQuantity:    decimal.NewFromInt(100),
		ReservedQuantity: decimal.NewFromInt(30),
	}
	assert.True(t, rg.AvailableQuantity().Equal(decimal.NewFromInt(70)))
}
