package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"labreserve-backend/internal/domain"
)

// ToolItem and ReagentItem are the client-held cart lines submitted at
// checkout. The cart itself lives on the client; the server only ever sees the
// whole draft at once.
type ToolItem struct {
	ToolID   int32 `json:"tool_id"`
	Quantity int32 `json:"qty"`
}

type ReagentItem struct {
	ReagentID    int32           `json:"reagent_id"`
	EstimatedQty decimal.Decimal `json:"estimated_qty"`
}

type CreateRequestInput struct {
	RequesterID  int32
	StartDate    time.Time
	EndDate      time.Time
	Notes        string
	Method       domain.PaymentMethod
	ToolItems    []ToolItem
	ReagentItems []ReagentItem
}

type CreateRequestResult struct {
	Request      *domain.Request
	Payment      *domain.Payment
	SessionToken string
}

// BookingService is the workflow orchestrator: the only place business rules
// about the request/payment/schedule state machines live.
type BookingService interface {
	CreateRequest(ctx context.Context, in *CreateRequestInput) (*CreateRequestResult, error)
	GetRequest(ctx context.Context, requestID int32) (*domain.Request, error)
	ListRequests(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.Request, int32, error)
	ApproveRequest(ctx context.Context, requestID int32, adminNotes string) (*domain.Request, *domain.Schedule, error)
	RejectRequest(ctx context.Context, requestID int32, adminNotes string) (*domain.Request, error)
	CancelRequest(ctx context.Context, requestID int32, reason string) (*domain.Request, error)
}

type PaymentService interface {
	// ApplyGatewayStatus handles the provider webhook. Redelivery of a
	// terminal status that already applied is a no-op, never a double-apply.
	ApplyGatewayStatus(ctx context.Context, paymentID int32, status, transactionRef string) (*domain.Payment, error)
	ConfirmManualPayment(ctx context.Context, paymentID int32) (*domain.Payment, error)
	CreateCharge(ctx context.Context, requestID int32, itemType domain.PaymentItemType, amountCents int64, description string, method domain.PaymentMethod) (*domain.Payment, string, error)
	RecreateSession(ctx context.Context, requestID, paymentID int32) (*domain.Payment, string, error)
	ListByRequest(ctx context.Context, requestID int32) ([]domain.Payment, error)
}

type ScheduleService interface {
	GetSchedule(ctx context.Context, scheduleID int32) (*domain.Schedule, error)
	// CloseSchedule transitions SCHEDULED to COMPLETED, NO_SHOW or
	// CANCELLED. Completion consumes reagent holds permanently; the other
	// two give them back. All three return borrowed tool stock.
	CloseSchedule(ctx context.Context, scheduleID int32, to domain.ScheduleStatus) (*domain.Schedule, error)
}

type CatalogService interface {
	ListTools(ctx context.Context, page, pageSize int32) ([]domain.Tool, int32, error)
	GetTool(ctx context.Context, id int32) (*domain.Tool, error)
	ListReagents(ctx context.Context, page, pageSize int32) ([]domain.Reagent, int32, error)
	GetReagent(ctx context.Context, id int32) (*domain.Reagent, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendRequestApprovedNotification(ctx context.Context, email, name string, start, end time.Time, adminNotes string) error
	SendRequestRejectedNotification(ctx context.Context, email, name, reason string) error
	SendPaymentReceiptNotification(ctx context.Context, email, name string, amountCents int64, itemType string) error
	SendScheduleReminderNotification(ctx context.Context, email, name string, start time.Time) error
}
