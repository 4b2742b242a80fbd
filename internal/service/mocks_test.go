package service_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/gateway"
	"labreserve-backend/internal/repository"
)

// MockToolRepo
type MockToolRepo struct {
	mock.Mock
}

func (m *MockToolRepo) Create(ctx context.Context, tool *domain.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}
func (m *MockToolRepo) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}
func (m *MockToolRepo) Update(ctx context.Context, tool *domain.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}
func (m *MockToolRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Tool, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Tool), args.Get(1).(int32), args.Error(2)
}
func (m *MockToolRepo) ReserveStock(ctx context.Context, toolID, qty int32) error {
	args := m.Called(ctx, toolID, qty)
	return args.Error(0)
}
func (m *MockToolRepo) ReleaseStock(ctx context.Context, toolID, qty int32) error {
	args := m.Called(ctx, toolID, qty)
	return args.Error(0)
}

// MockReagentRepo
type MockReagentRepo struct {
	mock.Mock
}

func (m *MockReagentRepo) Create(ctx context.Context, reagent *domain.Reagent) error {
	args := m.Called(ctx, reagent)
	return args.Error(0)
}
func (m *MockReagentRepo) GetByID(ctx context.Context, id int32) (*domain.Reagent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reagent), args.Error(1)
}
func (m *MockReagentRepo) Update(ctx context.Context, reagent *domain.Reagent) error {
	args := m.Called(ctx, reagent)
	return args.Error(0)
}
func (m *MockReagentRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Reagent, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Reagent), args.Get(1).(int32), args.Error(2)
}
func (m *MockReagentRepo) ReserveStock(ctx context.Context, reagentID int32, qty decimal.Decimal) error {
	args := m.Called(ctx, reagentID, qty)
	return args.Error(0)
}
func (m *MockReagentRepo) ReleaseStock(ctx context.Context, reagentID int32, qty decimal.Decimal) error {
	args := m.Called(ctx, reagentID, qty)
	return args.Error(0)
}
func (m *MockReagentRepo) ConsumeStock(ctx context.Context, reagentID int32, qty decimal.Decimal) error {
	args := m.Called(ctx, reagentID, qty)
	return args.Error(0)
}
func (m *MockReagentRepo) MarkExpired(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockRequestRepo) AddToolLine(ctx context.Context, line *domain.RequestToolLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}
func (m *MockRequestRepo) AddReagentLine(ctx context.Context, line *domain.RequestReagentLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}
func (m *MockRequestRepo) GetToolLines(ctx context.Context, requestID int32) ([]domain.RequestToolLine, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequestToolLine), args.Error(1)
}
func (m *MockRequestRepo) GetReagentLines(ctx context.Context, requestID int32) ([]domain.RequestReagentLine, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequestReagentLine), args.Error(1)
}
func (m *MockRequestRepo) UpdateStatus(ctx context.Context, id int32, from []domain.RequestStatus, to domain.RequestStatus, adminNotes string) (bool, error) {
	args := m.Called(ctx, id, from, to, adminNotes)
	return args.Bool(0), args.Error(1)
}
func (m *MockRequestRepo) List(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.Request, int32, error) {
	args := m.Called(ctx, requesterID, status, page, pageSize)
	return args.Get(0).([]domain.Request), args.Get(1).(int32), args.Error(2)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByRequest(ctx context.Context, requestID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) MarkPaid(ctx context.Context, id int32, transactionRef string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, id, transactionRef, paidAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentRepo) MarkFailed(ctx context.Context, id int32, transactionRef string) (bool, error) {
	args := m.Called(ctx, id, transactionRef)
	return args.Bool(0), args.Error(1)
}

// MockScheduleRepo
type MockScheduleRepo struct {
	mock.Mock
}

func (m *MockScheduleRepo) Create(ctx context.Context, s *domain.Schedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockScheduleRepo) GetByID(ctx context.Context, id int32) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}
func (m *MockScheduleRepo) GetByRequest(ctx context.Context, requestID int32) (*domain.Schedule, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}
func (m *MockScheduleRepo) UpdateStatus(ctx context.Context, id int32, to domain.ScheduleStatus, closedOn time.Time) (bool, error) {
	args := m.Called(ctx, id, to, closedOn)
	return args.Bool(0), args.Error(1)
}
func (m *MockScheduleRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Schedule, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Schedule), args.Error(1)
}
func (m *MockScheduleRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Schedule, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Schedule), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockStore bundles the repository mocks. ExecTx simply runs fn against the
// same store, which matches how the real store behaves inside a transaction.
type MockStore struct {
	ToolRepo         *MockToolRepo
	ReagentRepo      *MockReagentRepo
	RequestRepo      *MockRequestRepo
	PaymentRepo      *MockPaymentRepo
	ScheduleRepo     *MockScheduleRepo
	NotificationRepo *MockNotificationRepo
	UserRepo         *MockUserRepo
}

func NewMockStore() *MockStore {
	return &MockStore{
		ToolRepo:         &MockToolRepo{},
		ReagentRepo:      &MockReagentRepo{},
		RequestRepo:      &MockRequestRepo{},
		PaymentRepo:      &MockPaymentRepo{},
		ScheduleRepo:     &MockScheduleRepo{},
		NotificationRepo: &MockNotificationRepo{},
		UserRepo:         &MockUserRepo{},
	}
}

func (s *MockStore) Tools() repository.ToolRepository                 { return s.ToolRepo }
func (s *MockStore) Reagents() repository.ReagentRepository           { return s.ReagentRepo }
func (s *MockStore) Requests() repository.RequestRepository           { return s.RequestRepo }
func (s *MockStore) Payments() repository.PaymentRepository           { return s.PaymentRepo }
func (s *MockStore) Schedules() repository.ScheduleRepository         { return s.ScheduleRepo }
func (s *MockStore) Notifications() repository.NotificationRepository { return s.NotificationRepo }
func (s *MockStore) Users() repository.UserRepository                 { return s.UserRepo }

func (s *MockStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *MockStore) AssertExpectations(t mock.TestingT) {
	s.ToolRepo.AssertExpectations(t)
	s.ReagentRepo.AssertExpectations(t)
	s.RequestRepo.AssertExpectations(t)
	s.PaymentRepo.AssertExpectations(t)
	s.ScheduleRepo.AssertExpectations(t)
	s.NotificationRepo.AssertExpectations(t)
	s.UserRepo.AssertExpectations(t)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateSession(ctx context.Context, paymentID int32, amountCents int64, items []gateway.SessionItem) (string, error) {
	args := m.Called(ctx, paymentID, amountCents, items)
	return args.String(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRequestApprovedNotification(ctx context.Context, email, name string, start, end time.Time, adminNotes string) error {
	args := m.Called(ctx, email, name, start, end, adminNotes)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestRejectedNotification(ctx context.Context, email, name, reason string) error {
	args := m.Called(ctx, email, name, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceiptNotification(ctx context.Context, email, name string, amountCents int64, itemType string) error {
	args := m.Called(ctx, email, name, amountCents, itemType)
	return args.Error(0)
}
func (m *MockEmailService) SendScheduleReminderNotification(ctx context.Context, email, name string, start time.Time) error {
	args := m.Called(ctx, email, name, start)
	return args.Error(0)
}
