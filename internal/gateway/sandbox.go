package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"labreserve-backend/internal/logger"
)

// SandboxGateway is a stand-in provider for development and testing. It hands
// out well-formed session tokens without talking to any real gateway; the
// webhook endpoint is then driven manually or by tests.
type SandboxGateway struct {
	baseURL string
}

func NewSandboxGateway(baseURL string) *SandboxGateway {
	return &SandboxGateway{baseURL: baseURL}
}

func (g *SandboxGateway) CreateSession(ctx context.Context, paymentID int32, amountCents int64, items []SessionItem) (string, error) {
	token := fmt.Sprintf("sandbox-%s", uuid.NewString())
	logger.ExternalServiceCall("payment-gateway", "CreateSession",
		"payment_id", paymentID, "amount_cents", amountCents, "items", len(items))
	logger.ExternalServiceResult("payment-gateway", "CreateSession", nil, "token", token)
	return token, nil
}
