package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"labreserve-backend/internal/config"
	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/logger"
	"labreserve-backend/internal/repository"
)

func init() {
	logger.Initialize("error", "text")
}

// stubStore wires only the repositories a given job touches; the rest stay nil.
type stubStore struct {
	tools     repository.ToolRepository
	reagents  repository.ReagentRepository
	requests  repository.RequestRepository
	payments  repository.PaymentRepository
	schedules repository.ScheduleRepository
	notes     repository.NotificationRepository
	users     repository.UserRepository
}

func (s *stubStore) Tools() repository.ToolRepository                 { return s.tools }
func (s *stubStore) Reagents() repository.ReagentRepository           { return s.reagents }
func (s *stubStore) Requests() repository.RequestRepository           { return s.requests }
func (s *stubStore) Payments() repository.PaymentRepository           { return s.payments }
func (s *stubStore) Schedules() repository.ScheduleRepository         { return s.schedules }
func (s *stubStore) Notifications() repository.NotificationRepository { return s.notes }
func (s *stubStore) Users() repository.UserRepository                 { return s.users }
func (s *stubStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

type mockScheduleRepo struct {
	mock.Mock
	repository.ScheduleRepository
}

func (m *mockScheduleRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Schedule, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Schedule), args.Error(1)
}

type mockReagentRepo struct {
	mock.Mock
	repository.ReagentRepository
}

func (m *mockReagentRepo) MarkExpired(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

type mockScheduleService struct {
	mock.Mock
}

func (m *mockScheduleService) GetSchedule(ctx context.Context, scheduleID int32) (*domain.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}
func (m *mockScheduleService) CloseSchedule(ctx context.Context, scheduleID int32, to domain.ScheduleStatus) (*domain.Schedule, error) {
	args := m.Called(ctx, scheduleID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func TestMarkNoShowSchedules(t *testing.T) {
	schedRepo := &mockScheduleRepo{}
	schedSvc := &mockScheduleService{}
	store := &stubStore{schedules: schedRepo}
	runner := NewJobRunner(store, &Services{Schedule: schedSvc}, &config.Config{})

	overdue := []domain.Schedule{
		{ID: 4, RequestID: 11, Status: domain.ScheduleStatusScheduled},
		{ID: 5, RequestID: 12, Status: domain.ScheduleStatusScheduled},
	}
	schedRepo.On("ListOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(overdue, nil)
	schedSvc.On("CloseSchedule", mock.Anything, int32(4), domain.ScheduleStatusNoShow).
		Return(&domain.Schedule{ID: 4, Status: domain.ScheduleStatusNoShow}, nil)
	// already closed by a concurrent cancellation; the job moves on
	schedSvc.On("CloseSchedule", mock.Anything, int32(5), domain.ScheduleStatusNoShow).
		Return(nil, domain.ErrInvalidTransition)

	runner.MarkNoShowSchedules()

	schedRepo.AssertExpectations(t)
	schedSvc.AssertExpectations(t)
}

func TestExpireReagents(t *testing.T) {
	reagentRepo := &mockReagentRepo{}
	store := &stubStore{reagents: reagentRepo}
	runner := NewJobRunner(store, &Services{}, &config.Config{})

	reagentRepo.On("MarkExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(2), nil)

	runner.ExpireReagents()

	reagentRepo.AssertExpectations(t)
}

func TestRunWithRecovery(t *testing.T) {
	runner := NewJobRunner(&stubStore{}, &Services{}, &config.Config{})

	assert.NotPanics(t, func() {
		runner.runWithRecovery("panicky", func() { panic("boom") })
	})
}
