package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/gateway"
	"labreserve-backend/internal/logger"
	"labreserve-backend/internal/repository"
)

type paymentService struct {
	store    repository.Store
	gateway  gateway.PaymentGateway
	emailSvc EmailService
}

func NewPaymentService(store repository.Store, gw gateway.PaymentGateway, emailSvc EmailService) PaymentService {
	return &paymentService{
		store:    store,
		gateway:  gw,
		emailSvc: emailSvc,
	}
}

// ApplyGatewayStatus applies the provider's webhook. The conditional update in
// the repository makes redelivery safe: a payment that already reached the
// delivered terminal status is returned unchanged.
func (s *paymentService) ApplyGatewayStatus(ctx context.Context, paymentID int32, status, transactionRef string) (*domain.Payment, error) {
	var target domain.PaymentStatus
	switch strings.ToLower(status) {
	case "paid", "success", "settlement":
		target = domain.PaymentStatusPaid
	case "failed", "error", "expire":
		target = domain.PaymentStatusFailed
	case "pending":
		return s.store.Payments().GetByID(ctx, paymentID)
	default:
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown gateway status %q", status))
	}

	var applied bool
	var err error
	if target == domain.PaymentStatusPaid {
		applied, err = s.store.Payments().MarkPaid(ctx, paymentID, transactionRef, time.Now())
	} else {
		applied, err = s.store.Payments().MarkFailed(ctx, paymentID, transactionRef)
	}
	if err != nil {
		return nil, err
	}

	p, err := s.store.Payments().GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !applied {
		if p.Status == target {
			// Duplicate delivery of the same terminal status: no-op.
			logger.Debug("Duplicate gateway webhook ignored", "payment_id", paymentID, "status", target)
			return p, nil
		}
		return nil, fmt.Errorf("payment %d is %s: %w", paymentID, p.Status, domain.ErrInvalidTransition)
	}

	if target == domain.PaymentStatusPaid {
		s.sendReceipt(ctx, p)
	}
	return p, nil
}

// ConfirmManualPayment marks a MANUAL-method payment paid by staff action,
// bypassing the gateway.
func (s *paymentService) ConfirmManualPayment(ctx context.Context, paymentID int32) (*domain.Payment, error) {
	p, err := s.store.Payments().GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Method != domain.PaymentMethodManual {
		return nil, domain.NewValidationError("payment_method", "only MANUAL payments can be confirmed by staff")
	}

	ref := fmt.Sprintf("manual-%s", uuid.NewString())
	applied, err := s.store.Payments().MarkPaid(ctx, paymentID, ref, time.Now())
	if err != nil {
		return nil, err
	}
	if !applied {
		if p.Status == domain.PaymentStatusPaid {
			return p, nil
		}
		return nil, fmt.Errorf("payment %d is %s: %w", paymentID, p.Status, domain.ErrInvalidTransition)
	}

	p, err = s.store.Payments().GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	s.sendReceipt(ctx, p)
	return p, nil
}

// CreateCharge bills damages or penalties against an approved request as an
// extra payment record.
func (s *paymentService) CreateCharge(ctx context.Context, requestID int32, itemType domain.PaymentItemType, amountCents int64, description string, method domain.PaymentMethod) (*domain.Payment, string, error) {
	if itemType != domain.PaymentItemDamage && itemType != domain.PaymentItemPenalty {
		return nil, "", domain.NewValidationError("item_type", "must be DAMAGE or PENALTY")
	}
	if amountCents <= 0 {
		return nil, "", domain.NewValidationError("amount_cents", "must be positive")
	}
	if method != domain.PaymentMethodGateway && method != domain.PaymentMethodManual {
		return nil, "", domain.NewValidationError("payment_method", "must be GATEWAY or MANUAL")
	}

	req, err := s.store.Requests().GetByID(ctx, requestID)
	if err != nil {
		return nil, "", err
	}
	if req.Status != domain.RequestStatusApproved {
		return nil, "", fmt.Errorf("charge on %s request %d: %w", req.Status, requestID, domain.ErrInvalidTransition)
	}

	p := &domain.Payment{
		RequestID:   requestID,
		AmountCents: amountCents,
		Method:      method,
		Status:      domain.PaymentStatusPending,
		ItemType:    itemType,
		Description: description,
	}
	if err := s.store.Payments().Create(ctx, p); err != nil {
		return nil, "", err
	}

	var token string
	if method == domain.PaymentMethodGateway {
		token, err = s.gateway.CreateSession(ctx, p.ID, amountCents, []gateway.SessionItem{
			{Name: string(itemType), Quantity: 1, AmountCents: amountCents},
		})
		if err != nil {
			logger.Error("Payment gateway session failed", "payment_id", p.ID, "error", err)
			if _, mfErr := s.store.Payments().MarkFailed(ctx, p.ID, ""); mfErr != nil {
				logger.Error("Failed to mark charge failed", "payment_id", p.ID, "error", mfErr)
			}
			p.Status = domain.PaymentStatusFailed
			token = ""
		}
	}
	return p, token, nil
}

// RecreateSession opens a fresh gateway session so a failed payment can be
// retried without resubmitting the request. A FAILED payment is terminal, so
// the retry is a new PENDING payment cloned from it.
func (s *paymentService) RecreateSession(ctx context.Context, requestID, paymentID int32) (*domain.Payment, string, error) {
	p, err := s.store.Payments().GetByID(ctx, paymentID)
	if err != nil {
		return nil, "", err
	}
	if p.RequestID != requestID {
		return nil, "", fmt.Errorf("payment %d does not belong to request %d: %w", paymentID, requestID, domain.ErrNotFound)
	}
	if p.Method != domain.PaymentMethodGateway {
		return nil, "", domain.NewValidationError("payment_method", "sessions only apply to GATEWAY payments")
	}
	if p.Status == domain.PaymentStatusPaid {
		return nil, "", fmt.Errorf("payment %d already paid: %w", paymentID, domain.ErrInvalidTransition)
	}

	if p.Status == domain.PaymentStatusFailed {
		retry := &domain.Payment{
			RequestID:   p.RequestID,
			AmountCents: p.AmountCents,
			Method:      p.Method,
			Status:      domain.PaymentStatusPending,
			ItemType:    p.ItemType,
			Description: p.Description,
		}
		if err := s.store.Payments().Create(ctx, retry); err != nil {
			return nil, "", err
		}
		p = retry
	}

	token, err := s.gateway.CreateSession(ctx, p.ID, p.AmountCents, []gateway.SessionItem{
		{Name: string(p.ItemType), Quantity: 1, AmountCents: p.AmountCents},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create gateway session: %w", err)
	}
	return p, token, nil
}

func (s *paymentService) ListByRequest(ctx context.Context, requestID int32) ([]domain.Payment, error) {
	return s.store.Payments().ListByRequest(ctx, requestID)
}

func (s *paymentService) sendReceipt(ctx context.Context, p *domain.Payment) {
	req, err := s.store.Requests().GetByID(ctx, p.RequestID)
	if err != nil {
		return
	}
	notif := &domain.Notification{
		UserID:  req.RequesterID,
		Title:   "Payment Received",
		Message: fmt.Sprintf("Payment #%d for request #%d was received", p.ID, p.RequestID),
		Attributes: map[string]string{
			"payment_id": fmt.Sprintf("%d", p.ID),
			"request_id": fmt.Sprintf("%d", p.RequestID),
		},
	}
	if err := s.store.Notifications().Create(ctx, notif); err != nil {
		logger.Warn("Failed to create payment notification", "payment_id", p.ID, "error", err)
	}
	if requester, err := s.store.Users().GetByID(ctx, req.RequesterID); err == nil {
		_ = s.emailSvc.SendPaymentReceiptNotification(ctx, requester.Email, requester.Name, p.AmountCents, string(p.ItemType))
	}
}
