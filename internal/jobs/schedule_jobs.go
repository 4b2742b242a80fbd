package jobs

import (
	"context"
	"errors"
	"time"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/logger"
)

// MarkNoShowSchedules closes sessions whose booked window has ended without
// anyone checking in. Closing through the schedule service returns the tool
// units and releases the reagent holds.
func (jr *JobRunner) MarkNoShowSchedules() {
	jr.runWithRecovery("MarkNoShowSchedules", func() {
		ctx := context.Background()
		now := time.Now()

		overdue, err := jr.store.Schedules().ListOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue schedules", "error", err)
			return
		}

		var marked, skipped int
		for _, sched := range overdue {
			_, err := jr.services.Schedule.CloseSchedule(ctx, sched.ID, domain.ScheduleStatusNoShow)
			if err != nil {
				// Lost the race to a cancellation or a staff closure. Fine.
				if errors.Is(err, domain.ErrInvalidTransition) {
					skipped++
					continue
				}
				logger.Error("Failed to mark schedule as no-show",
					"schedule_id", sched.ID,
					"request_id", sched.RequestID,
					"error", err)
				continue
			}
			marked++
		}

		logger.Info("No-show sweep finished", "marked", marked, "skipped", skipped, "overdue", len(overdue))
	})
}

// SendScheduleReminders emails requesters whose session starts within the
// next 24 hours.
func (jr *JobRunner) SendScheduleReminders() {
	jr.runWithRecovery("SendScheduleReminders", func() {
		ctx := context.Background()
		now := time.Now()

		upcoming, err := jr.store.Schedules().ListStartingBetween(ctx, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to list upcoming schedules", "error", err)
			return
		}

		var sent int
		for _, sched := range upcoming {
			req, err := jr.store.Requests().GetByID(ctx, sched.RequestID)
			if err != nil {
				logger.Error("Failed to load request for reminder", "request_id", sched.RequestID, "error", err)
				continue
			}
			user, err := jr.store.Users().GetByID(ctx, req.RequesterID)
			if err != nil {
				logger.Error("Failed to load requester for reminder", "user_id", req.RequesterID, "error", err)
				continue
			}
			if err := jr.services.Email.SendScheduleReminderNotification(ctx, user.Email, user.Name, sched.StartDate); err != nil {
				logger.Error("Failed to send schedule reminder",
					"schedule_id", sched.ID,
					"email", user.Email,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Schedule reminders finished", "sent", sent, "upcoming", len(upcoming))
	})
}
