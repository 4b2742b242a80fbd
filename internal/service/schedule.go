package service

import (
	"context"
	"fmt"
	"time"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/logger"
	"labreserve-backend/internal/repository"
)

type scheduleService struct {
	store repository.Store
}

func NewScheduleService(store repository.Store) ScheduleService {
	return &scheduleService{store: store}
}

func (s *scheduleService) GetSchedule(ctx context.Context, scheduleID int32) (*domain.Schedule, error) {
	return s.store.Schedules().GetByID(ctx, scheduleID)
}

// CloseSchedule ends a session. Tool stock is borrow-and-return: every closure
// gives the units back. Reagent stock is consumptive: completion turns the hold
// into a permanent deduction, the other closures give the hold back. A request
// cancelled earlier already released its holds and closed the schedule, in
// which case the conditional update here loses and reports InvalidTransition.
func (s *scheduleService) CloseSchedule(ctx context.Context, scheduleID int32, to domain.ScheduleStatus) (*domain.Schedule, error) {
	switch to {
	case domain.ScheduleStatusCompleted, domain.ScheduleStatusNoShow, domain.ScheduleStatusCancelled:
	default:
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot close a schedule as %s", to))
	}

	var sched *domain.Schedule
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		var err error
		sched, err = tx.Schedules().GetByID(ctx, scheduleID)
		if err != nil {
			return err
		}

		now := time.Now()
		ok, err := tx.Schedules().UpdateStatus(ctx, scheduleID, to, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("close schedule %d from %s: %w", scheduleID, sched.Status, domain.ErrInvalidTransition)
		}
		sched.Status = to
		sched.ClosedOn = &now

		toolLines, err := tx.Requests().GetToolLines(ctx, sched.RequestID)
		if err != nil {
			return err
		}
		for _, line := range toolLines {
			if err := tx.Tools().ReleaseStock(ctx, line.ToolID, line.Quantity); err != nil {
				return err
			}
		}

		reagentLines, err := tx.Requests().GetReagentLines(ctx, sched.RequestID)
		if err != nil {
			return err
		}
		for _, line := range reagentLines {
			if to == domain.ScheduleStatusCompleted {
				if err := tx.Reagents().ConsumeStock(ctx, line.ReagentID, line.EstimatedQty); err != nil {
					return err
				}
			} else {
				if err := tx.Reagents().ReleaseStock(ctx, line.ReagentID, line.EstimatedQty); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Schedule closed", "schedule_id", scheduleID, "status", to)
	return sched, nil
}
