package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/gateway"
	"labreserve-backend/internal/logger"
	"labreserve-backend/internal/repository"
)

type bookingService struct {
	store    repository.Store
	gateway  gateway.PaymentGateway
	emailSvc EmailService
}

func NewBookingService(store repository.Store, gw gateway.PaymentGateway, emailSvc EmailService) BookingService {
	return &bookingService{
		store:    store,
		gateway:  gw,
		emailSvc: emailSvc,
	}
}

func (s *bookingService) CreateRequest(ctx context.Context, in *CreateRequestInput) (*CreateRequestResult, error) {
	if in.RequesterID == 0 {
		return nil, domain.NewValidationError("requester_id", "required")
	}
	if len(in.ToolItems) == 0 && len(in.ReagentItems) == 0 {
		return nil, domain.NewValidationError("items", "cart must not be empty")
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, domain.NewValidationError("end_date", "must be after start_date")
	}
	if in.Method != domain.PaymentMethodGateway && in.Method != domain.PaymentMethodManual {
		return nil, domain.NewValidationError("payment_method", "must be GATEWAY or MANUAL")
	}
	for _, item := range in.ToolItems {
		if item.Quantity <= 0 {
			return nil, domain.NewValidationError("qty", "must be positive")
		}
	}
	for _, item := range in.ReagentItems {
		if !item.EstimatedQty.IsPositive() {
			return nil, domain.NewValidationError("estimated_qty", "must be positive")
		}
	}

	result := &CreateRequestResult{}
	var sessionItems []gateway.SessionItem

	// Reservation and persistence are all-or-nothing: if any line fails,
	// the transaction rolls back and every already-reserved line is undone.
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		req := &domain.Request{
			RequesterID: in.RequesterID,
			RequestDate: time.Now(),
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			Notes:       in.Notes,
			Status:      domain.RequestStatusPending,
		}

		var total int64
		var toolLines []domain.RequestToolLine
		for _, item := range in.ToolItems {
			tool, err := tx.Tools().GetByID(ctx, item.ToolID)
			if err != nil {
				return fmt.Errorf("tool %d: %w", item.ToolID, err)
			}
			if err := tx.Tools().ReserveStock(ctx, item.ToolID, item.Quantity); err != nil {
				return err
			}
			sub := domain.ToolLineSubtotalCents(tool.HourlyRateCents, item.Quantity, in.StartDate, in.EndDate)
			total += sub
			toolLines = append(toolLines, domain.RequestToolLine{
				ToolID:          item.ToolID,
				Quantity:        item.Quantity,
				HourlyRateCents: tool.HourlyRateCents,
				SubtotalCents:   sub,
			})
			sessionItems = append(sessionItems, gateway.SessionItem{Name: tool.Name, Quantity: item.Quantity, AmountCents: sub})
		}

		var reagentLines []domain.RequestReagentLine
		for _, item := range in.ReagentItems {
			reagent, err := tx.Reagents().GetByID(ctx, item.ReagentID)
			if err != nil {
				return fmt.Errorf("reagent %d: %w", item.ReagentID, err)
			}
			if err := tx.Reagents().ReserveStock(ctx, item.ReagentID, item.EstimatedQty); err != nil {
				return err
			}
			sub := domain.ReagentLineSubtotalCents(reagent.PricePerUnitCents, item.EstimatedQty)
			total += sub
			reagentLines = append(reagentLines, domain.RequestReagentLine{
				ReagentID:         item.ReagentID,
				EstimatedQty:      item.EstimatedQty,
				PricePerUnitCents: reagent.PricePerUnitCents,
				SubtotalCents:     sub,
			})
			sessionItems = append(sessionItems, gateway.SessionItem{Name: reagent.Name, Quantity: 1, AmountCents: sub})
		}

		req.TotalCents = total
		if err := tx.Requests().Create(ctx, req); err != nil {
			return err
		}
		for i := range toolLines {
			toolLines[i].RequestID = req.ID
			if err := tx.Requests().AddToolLine(ctx, &toolLines[i]); err != nil {
				return err
			}
		}
		for i := range reagentLines {
			reagentLines[i].RequestID = req.ID
			if err := tx.Requests().AddReagentLine(ctx, &reagentLines[i]); err != nil {
				return err
			}
		}
		req.ToolLines = toolLines
		req.ReagentLines = reagentLines

		// Amount is the creation-time snapshot; it is never recomputed at
		// approval, so catalog price changes cannot drift into it.
		payment := &domain.Payment{
			RequestID:   req.ID,
			AmountCents: total,
			Method:      in.Method,
			Status:      domain.PaymentStatusPending,
			ItemType:    domain.PaymentItemBooking,
			Description: "Booking charge",
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return err
		}

		result.Request = req
		result.Payment = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The gateway session is opened after the commit: a provider outage must
	// not roll back the request. The payment flips to FAILED and can be
	// retried separately.
	if in.Method == domain.PaymentMethodGateway {
		token, err := s.gateway.CreateSession(ctx, result.Payment.ID, result.Payment.AmountCents, sessionItems)
		if err != nil {
			logger.Error("Payment gateway session failed", "payment_id", result.Payment.ID, "error", err)
			if _, mfErr := s.store.Payments().MarkFailed(ctx, result.Payment.ID, ""); mfErr != nil {
				logger.Error("Failed to mark payment failed", "payment_id", result.Payment.ID, "error", mfErr)
			}
			result.Payment.Status = domain.PaymentStatusFailed
		} else {
			result.SessionToken = token
		}
	}

	s.notifyStaff(ctx, "New Booking Request",
		fmt.Sprintf("Request #%d submitted for %s", result.Request.ID, result.Request.StartDate.Format("2006-01-02 15:04")),
		result.Request.ID)

	return result, nil
}

func (s *bookingService) GetRequest(ctx context.Context, requestID int32) (*domain.Request, error) {
	req, err := s.store.Requests().GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ToolLines, err = s.store.Requests().GetToolLines(ctx, requestID); err != nil {
		return nil, err
	}
	if req.ReagentLines, err = s.store.Requests().GetReagentLines(ctx, requestID); err != nil {
		return nil, err
	}
	if req.Payments, err = s.store.Payments().ListByRequest(ctx, requestID); err != nil {
		return nil, err
	}
	sched, err := s.store.Schedules().GetByRequest(ctx, requestID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	req.Schedule = sched
	return req, nil
}

func (s *bookingService) ListRequests(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.Request, int32, error) {
	return s.store.Requests().List(ctx, requesterID, status, page, pageSize)
}

// ApproveRequest moves PENDING to APPROVED and opens the schedule. Inventory is
// untouched here: the hold was taken at creation.
func (s *bookingService) ApproveRequest(ctx context.Context, requestID int32, adminNotes string) (*domain.Request, *domain.Schedule, error) {
	var req *domain.Request
	var sched *domain.Schedule

	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		var err error
		req, err = tx.Requests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		ok, err := tx.Requests().UpdateStatus(ctx, requestID, []domain.RequestStatus{domain.RequestStatusPending}, domain.RequestStatusApproved, adminNotes)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("approve request %d from %s: %w", requestID, req.Status, domain.ErrInvalidTransition)
		}
		req.Status = domain.RequestStatusApproved
		req.AdminNotes = adminNotes

		sched = &domain.Schedule{
			RequestID: requestID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Status:    domain.ScheduleStatusScheduled,
		}
		return tx.Schedules().Create(ctx, sched)
	})
	if err != nil {
		return nil, nil, err
	}

	s.notifyRequester(ctx, req, "Booking Approved",
		fmt.Sprintf("Your booking request #%d was approved", req.ID))
	if requester, err := s.store.Users().GetByID(ctx, req.RequesterID); err == nil {
		_ = s.emailSvc.SendRequestApprovedNotification(ctx, requester.Email, requester.Name, req.StartDate, req.EndDate, adminNotes)
	}

	return req, sched, nil
}

// RejectRequest requires a non-empty admin reason and releases every hold the
// request took at creation, tools and reagents both.
func (s *bookingService) RejectRequest(ctx context.Context, requestID int32, adminNotes string) (*domain.Request, error) {
	if adminNotes == "" {
		return nil, domain.NewValidationError("admin_notes", "rejection reason is required")
	}

	var req *domain.Request
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		var err error
		req, err = tx.Requests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		ok, err := tx.Requests().UpdateStatus(ctx, requestID, []domain.RequestStatus{domain.RequestStatusPending}, domain.RequestStatusRejected, adminNotes)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("reject request %d from %s: %w", requestID, req.Status, domain.ErrInvalidTransition)
		}
		req.Status = domain.RequestStatusRejected
		req.AdminNotes = adminNotes

		return releaseRequestHolds(ctx, tx, requestID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyRequester(ctx, req, "Booking Rejected",
		fmt.Sprintf("Your booking request #%d was rejected: %s", req.ID, adminNotes))
	if requester, err := s.store.Users().GetByID(ctx, req.RequesterID); err == nil {
		_ = s.emailSvc.SendRequestRejectedNotification(ctx, requester.Email, requester.Name, adminNotes)
	}

	return req, nil
}

// CancelRequest is allowed from PENDING and APPROVED. When a schedule exists it
// is flipped to CANCELLED first, in the same transaction; the holds are released
// only when that conditional flip wins. A schedule that already closed settled
// the stock itself, so cancelling then must not touch the counters again.
func (s *bookingService) CancelRequest(ctx context.Context, requestID int32, reason string) (*domain.Request, error) {
	var req *domain.Request
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		var err error
		req, err = tx.Requests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		sched, err := tx.Schedules().GetByRequest(ctx, requestID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if sched != nil {
			ok, err := tx.Schedules().UpdateStatus(ctx, sched.ID, domain.ScheduleStatusCancelled, time.Now())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("cancel request %d: schedule %d is %s: %w", requestID, sched.ID, sched.Status, domain.ErrInvalidTransition)
			}
		}

		ok, err := tx.Requests().UpdateStatus(ctx, requestID,
			[]domain.RequestStatus{domain.RequestStatusPending, domain.RequestStatusApproved},
			domain.RequestStatusCancelled, reason)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("cancel request %d from %s: %w", requestID, req.Status, domain.ErrInvalidTransition)
		}
		req.Status = domain.RequestStatusCancelled
		req.AdminNotes = reason

		return releaseRequestHolds(ctx, tx, requestID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyStaff(ctx, "Booking Cancelled",
		fmt.Sprintf("Request #%d was cancelled: %s", req.ID, reason), req.ID)

	return req, nil
}

// releaseRequestHolds gives back every tool unit and reagent quantity the
// request reserved at creation.
func releaseRequestHolds(ctx context.Context, tx repository.Store, requestID int32) error {
	toolLines, err := tx.Requests().GetToolLines(ctx, requestID)
	if err != nil {
		return err
	}
	for _, line := range toolLines {
		if err := tx.Tools().ReleaseStock(ctx, line.ToolID, line.Quantity); err != nil {
			return err
		}
	}

	reagentLines, err := tx.Requests().GetReagentLines(ctx, requestID)
	if err != nil {
		return err
	}
	for _, line := range reagentLines {
		if err := tx.Reagents().ReleaseStock(ctx, line.ReagentID, line.EstimatedQty); err != nil {
			return err
		}
	}
	return nil
}

func (s *bookingService) notifyRequester(ctx context.Context, req *domain.Request, title, message string) {
	notif := &domain.Notification{
		UserID:  req.RequesterID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	}
	if err := s.store.Notifications().Create(ctx, notif); err != nil {
		logger.Warn("Failed to create notification", "user_id", req.RequesterID, "error", err)
	}
}

func (s *bookingService) notifyStaff(ctx context.Context, title, message string, requestID int32) {
	staff, err := s.store.Users().ListByRole(ctx, domain.UserRoleStaff)
	if err != nil {
		logger.Warn("Failed to list staff for notification", "error", err)
		return
	}
	for _, u := range staff {
		notif := &domain.Notification{
			UserID:  u.ID,
			Title:   title,
			Message: message,
			Attributes: map[string]string{
				"request_id": fmt.Sprintf("%d", requestID),
			},
		}
		if err := s.store.Notifications().Create(ctx, notif); err != nil {
			logger.Warn("Failed to create staff notification", "user_id", u.ID, "error", err)
		}
	}
}
