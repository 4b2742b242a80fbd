package http

import (
	"net/http"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
	bookingSvc service.BookingService
}

func NewPaymentHandler(paymentSvc service.PaymentService, bookingSvc service.BookingService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, bookingSvc: bookingSvc}
}

type webhookBody struct {
	PaymentID      int32  `json:"payment_id"`
	Status         string `json:"status"`
	TransactionRef string `json:"transaction_ref"`
}

// Webhook receives the external gateway's asynchronous payment outcome. The
// gateway may redeliver; applying the same terminal status twice is a no-op.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var body webhookBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if body.PaymentID == 0 {
		respondError(w, domain.NewValidationError("payment_id", "required"))
		return
	}

	p, err := h.paymentSvc.ApplyGatewayStatus(r.Context(), body.PaymentID, body.Status, body.TransactionRef)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	p, err := h.paymentSvc.ConfirmManualPayment(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

type createChargeBody struct {
	ItemType      string `json:"item_type"`
	AmountCents   int64  `json:"amount_cents"`
	Description   string `json:"description"`
	PaymentMethod string `json:"payment_method"`
}

type chargeResponse struct {
	Payment      *domain.Payment `json:"payment"`
	SessionToken string          `json:"session_token,omitempty"`
}

func (h *PaymentHandler) CreateCharge(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var body createChargeBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}

	p, token, err := h.paymentSvc.CreateCharge(r.Context(), requestID,
		domain.PaymentItemType(body.ItemType), body.AmountCents, body.Description,
		domain.PaymentMethod(body.PaymentMethod))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, chargeResponse{Payment: p, SessionToken: token})
}

func (h *PaymentHandler) RecreateSession(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	paymentID, err := pathID(r, "paymentID")
	if err != nil {
		respondError(w, err)
		return
	}

	p, token, err := h.paymentSvc.RecreateSession(r.Context(), requestID, paymentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, chargeResponse{Payment: p, SessionToken: token})
}

func (h *PaymentHandler) ListByRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	req, err := h.bookingSvc.GetRequest(r.Context(), requestID)
	if err != nil {
		respondError(w, err)
		return
	}
	claims := claimsFrom(r.Context())
	if !claims.IsStaff() && req.RequesterID != claims.UserID {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "not your request"})
		return
	}

	payments, err := h.paymentSvc.ListByRequest(r.Context(), requestID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}
