package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/service"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateRequest(ctx context.Context, in *service.CreateRequestInput) (*service.CreateRequestResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateRequestResult), args.Error(1)
}
func (m *MockBookingService) GetRequest(ctx context.Context, requestID int32) (*domain.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockBookingService) ListRequests(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.Request, int32, error) {
	args := m.Called(ctx, requesterID, status, page, pageSize)
	return args.Get(0).([]domain.Request), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingService) ApproveRequest(ctx context.Context, requestID int32, adminNotes string) (*domain.Request, *domain.Schedule, error) {
	args := m.Called(ctx, requestID, adminNotes)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Request), args.Get(1).(*domain.Schedule), args.Error(2)
}
func (m *MockBookingService) RejectRequest(ctx context.Context, requestID int32, adminNotes string) (*domain.Request, error) {
	args := m.Called(ctx, requestID, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockBookingService) CancelRequest(ctx context.Context, requestID int32, reason string) (*domain.Request, error) {
	args := m.Called(ctx, requestID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ApplyGatewayStatus(ctx context.Context, paymentID int32, status, transactionRef string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, status, transactionRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ConfirmManualPayment(ctx context.Context, paymentID int32) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) CreateCharge(ctx context.Context, requestID int32, itemType domain.PaymentItemType, amountCents int64, description string, method domain.PaymentMethod) (*domain.Payment, string, error) {
	args := m.Called(ctx, requestID, itemType, amountCents, description, method)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.String(1), args.Error(2)
}
func (m *MockPaymentService) RecreateSession(ctx context.Context, requestID, paymentID int32) (*domain.Payment, string, error) {
	args := m.Called(ctx, requestID, paymentID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.String(1), args.Error(2)
}
func (m *MockPaymentService) ListByRequest(ctx context.Context, requestID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockScheduleService
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) GetSchedule(ctx context.Context, scheduleID int32) (*domain.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}
func (m *MockScheduleService) CloseSchedule(ctx context.Context, scheduleID int32, to domain.ScheduleStatus) (*domain.Schedule, error) {
	args := m.Called(ctx, scheduleID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

// MockCatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListTools(ctx context.Context, page, pageSize int32) ([]domain.Tool, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Tool), args.Get(1).(int32), args.Error(2)
}
func (m *MockCatalogService) GetTool(ctx context.Context, id int32) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}
func (m *MockCatalogService) ListReagents(ctx context.Context, page, pageSize int32) ([]domain.Reagent, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Reagent), args.Get(1).(int32), args.Error(2)
}
func (m *MockCatalogService) GetReagent(ctx context.Context, id int32) (*domain.Reagent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reagent), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}
