package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"labreserve-backend/internal/domain"
)

// Store bundles all repositories and provides transactional execution. Inside
// ExecTx every repository call runs on the same database transaction; the
// transaction is rolled back if fn returns an error.
type Store interface {
	Tools() ToolRepository
	Reagents() ReagentRepository
	Requests() RequestRepository
	Payments() PaymentRepository
	Schedules() ScheduleRepository
	Notifications() NotificationRepository
	Users() UserRepository

	ExecTx(ctx context.Context, fn func(Store) error) error
}

type ToolRepository interface {
	Create(ctx context.Context, tool *domain.Tool) error
	GetByID(ctx context.Context, id int32) (*domain.Tool, error)
	Update(ctx context.Context, tool *domain.Tool) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Tool, int32, error)

	// ReserveStock atomically decrements available_stock by qty. Fails with
	// domain.ErrInsufficientStock when the tool is not AVAILABLE or fewer
	// than qty units are free.
	ReserveStock(ctx context.Context, toolID, qty int32) error
	// ReleaseStock increments available_stock by qty, clamped at total_stock.
	ReleaseStock(ctx context.Context, toolID, qty int32) error
}

type ReagentRepository interface {
	Create(ctx context.Context, reagent *domain.Reagent) error
	GetByID(ctx context.Context, id int32) (*domain.Reagent, error)
	Update(ctx context.Context, reagent *domain.Reagent) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Reagent, int32, error)

	// ReserveStock places a hold: reserved_quantity grows by qty, failing
	// with domain.ErrInsufficientStock when the unreserved amount is below
	// qty, the reagent is not USEABLE, or it is past its expiry date.
	ReserveStock(ctx context.Context, reagentID int32, qty decimal.Decimal) error
	// ReleaseStock gives a hold back, clamped at zero.
	ReleaseStock(ctx context.Context, reagentID int32, qty decimal.Decimal) error
	// ConsumeStock permanently deducts stock_quantity and drops the matching
	// hold. Never reversible.
	ConsumeStock(ctx context.Context, reagentID int32, qty decimal.Decimal) error
	// MarkExpired flips USEABLE reagents past their expiry date to EXPIRED
	// and returns how many were affected.
	MarkExpired(ctx context.Context, asOf time.Time) (int64, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int32) (*domain.Request, error)
	AddToolLine(ctx context.Context, line *domain.RequestToolLine) error
	AddReagentLine(ctx context.Context, line *domain.RequestReagentLine) error
	GetToolLines(ctx context.Context, requestID int32) ([]domain.RequestToolLine, error)
	GetReagentLines(ctx context.Context, requestID int32) ([]domain.RequestReagentLine, error)

	// UpdateStatus moves the request to the target status only when its
	// current status is one of from, so two concurrent admins cannot both
	// win. Returns false (and no error) when the guard did not match.
	UpdateStatus(ctx context.Context, id int32, from []domain.RequestStatus, to domain.RequestStatus, adminNotes string) (bool, error)
	List(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.Request, int32, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	ListByRequest(ctx context.Context, requestID int32) ([]domain.Payment, error)

	// MarkPaid and MarkFailed are conditional on the payment still being
	// PENDING; they return false when the guard did not match, which lets
	// the service layer treat re-delivered webhooks idempotently.
	MarkPaid(ctx context.Context, id int32, transactionRef string, paidAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, id int32, transactionRef string) (bool, error)
}

type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.Schedule) error
	GetByID(ctx context.Context, id int32) (*domain.Schedule, error)
	GetByRequest(ctx context.Context, requestID int32) (*domain.Schedule, error)

	// UpdateStatus is conditional on the schedule still being SCHEDULED.
	UpdateStatus(ctx context.Context, id int32, to domain.ScheduleStatus, closedOn time.Time) (bool, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Schedule, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Schedule, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}
