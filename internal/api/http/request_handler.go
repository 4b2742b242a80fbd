package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/service"
)

type RequestHandler struct {
	bookingSvc service.BookingService
}

func NewRequestHandler(bookingSvc service.BookingService) *RequestHandler {
	return &RequestHandler{bookingSvc: bookingSvc}
}

type createRequestBody struct {
	StartDate     time.Time             `json:"start_date"`
	EndDate       time.Time             `json:"end_date"`
	Notes         string                `json:"notes"`
	PaymentMethod string                `json:"payment_method"`
	Tools         []service.ToolItem    `json:"tools"`
	Reagents      []service.ReagentItem `json:"reagents"`
}

type createRequestResponse struct {
	Request      *domain.Request `json:"request"`
	PaymentID    int32           `json:"payment_id"`
	SessionToken string          `json:"session_token,omitempty"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createRequestBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	result, err := h.bookingSvc.CreateRequest(r.Context(), &service.CreateRequestInput{
		RequesterID:  claims.UserID,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		Notes:        body.Notes,
		Method:       domain.PaymentMethod(body.PaymentMethod),
		ToolItems:    body.Tools,
		ReagentItems: body.Reagents,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	result.Request.Payments = []domain.Payment{*result.Payment}
	respondJSON(w, http.StatusCreated, createRequestResponse{
		Request:      result.Request,
		PaymentID:    result.Payment.ID,
		SessionToken: result.SessionToken,
	})
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	req, err := h.bookingSvc.GetRequest(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	if !claims.IsStaff() && req.RequesterID != claims.UserID {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "not your request"})
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type listResponse struct {
	Items    interface{} `json:"items"`
	Total    int32       `json:"total"`
	Page     int32       `json:"page"`
	PageSize int32       `json:"page_size"`
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")

	claims := claimsFrom(r.Context())
	requesterID := claims.UserID
	if claims.IsStaff() {
		requesterID = 0 // staff see everything
		if v := r.URL.Query().Get("requester_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 32)
			if err != nil {
				respondError(w, domain.NewValidationError("requester_id", "must be an integer"))
				return
			}
			requesterID = int32(id)
		}
	}

	requests, total, err := h.bookingSvc.ListRequests(r.Context(), requesterID, status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: requests, Total: total, Page: page, PageSize: pageSize})
}

type adminNotesBody struct {
	AdminNotes string `json:"admin_notes"`
}

func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var body adminNotesBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}

	req, sched, err := h.bookingSvc.ApproveRequest(r.Context(), id, body.AdminNotes)
	if err != nil {
		respondError(w, err)
		return
	}
	req.Schedule = sched
	respondJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var body adminNotesBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}

	req, err := h.bookingSvc.RejectRequest(r.Context(), id, body.AdminNotes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type cancelBody struct {
	Reason string `json:"reason"`
}

func (h *RequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var body cancelBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	if !claims.IsStaff() {
		existing, err := h.bookingSvc.GetRequest(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		if existing.RequesterID != claims.UserID {
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "not your request"})
			return
		}
	}

	req, err := h.bookingSvc.CancelRequest(r.Context(), id, body.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return int32(id), nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 {
			page = int32(n)
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 && n <= 100 {
			pageSize = int32(n)
		}
	}
	return page, pageSize
}
