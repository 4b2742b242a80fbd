package http

import (
	"net/http"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/service"
)

type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
	bookingSvc  service.BookingService
}

func NewScheduleHandler(scheduleSvc service.ScheduleService, bookingSvc service.BookingService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc, bookingSvc: bookingSvc}
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	sched, err := h.scheduleSvc.GetSchedule(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	if !claims.IsStaff() {
		req, err := h.bookingSvc.GetRequest(r.Context(), sched.RequestID)
		if err != nil {
			respondError(w, err)
			return
		}
		if req.RequesterID != claims.UserID {
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "not your request"})
			return
		}
	}
	respondJSON(w, http.StatusOK, sched)
}

type scheduleStatusBody struct {
	Status string `json:"status"`
}

func (h *ScheduleHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var body scheduleStatusBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, err)
		return
	}

	sched, err := h.scheduleSvc.CloseSchedule(r.Context(), id, domain.ScheduleStatus(body.Status))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sched)
}
