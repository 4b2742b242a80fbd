package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"labreserve-backend/internal/security"
	"labreserve-backend/internal/service"
)

// NewRouter assembles the REST surface. The gateway webhook is mounted outside
// the auth middleware since the provider does not carry user tokens.
func NewRouter(
	tokens security.TokenManager,
	bookingSvc service.BookingService,
	paymentSvc service.PaymentService,
	scheduleSvc service.ScheduleService,
	catalogSvc service.CatalogService,
	notificationSvc service.NotificationService,
) *mux.Router {
	requestHandler := NewRequestHandler(bookingSvc)
	paymentHandler := NewPaymentHandler(paymentSvc, bookingSvc)
	scheduleHandler := NewScheduleHandler(scheduleSvc, bookingSvc)
	catalogHandler := NewCatalogHandler(catalogSvc)
	notificationHandler := NewNotificationHandler(notificationSvc)

	root := mux.NewRouter()
	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Gateway webhook (unauthenticated)
	root.HandleFunc("/api/v1/requests/payment/status", paymentHandler.Webhook).Methods("PUT")

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tokens).Handler)

	// Catalog (read-only, feeds the client cart)
	api.HandleFunc("/tools", catalogHandler.ListTools).Methods("GET")
	api.HandleFunc("/tools/{id}", catalogHandler.GetTool).Methods("GET")
	api.HandleFunc("/reagents", catalogHandler.ListReagents).Methods("GET")
	api.HandleFunc("/reagents/{id}", catalogHandler.GetReagent).Methods("GET")

	// Booking requests
	api.HandleFunc("/requests", requestHandler.Create).Methods("POST")
	api.HandleFunc("/requests", requestHandler.List).Methods("GET")
	api.HandleFunc("/requests/{id}", requestHandler.Get).Methods("GET")
	api.HandleFunc("/requests/{id}/approve", requireStaff(requestHandler.Approve)).Methods("PUT")
	api.HandleFunc("/requests/{id}/reject", requireStaff(requestHandler.Reject)).Methods("PUT")
	api.HandleFunc("/requests/{id}/cancel", requestHandler.Cancel).Methods("PUT")

	// Payments
	api.HandleFunc("/requests/{id}/payments", requireStaff(paymentHandler.CreateCharge)).Methods("POST")
	api.HandleFunc("/requests/{id}/payments", paymentHandler.ListByRequest).Methods("GET")
	api.HandleFunc("/requests/{id}/payments/{paymentID}/session", paymentHandler.RecreateSession).Methods("POST")
	api.HandleFunc("/payments/{id}/confirm", requireStaff(paymentHandler.Confirm)).Methods("PUT")

	// Schedules
	api.HandleFunc("/schedules/{id}", scheduleHandler.Get).Methods("GET")
	api.HandleFunc("/schedules/{id}/status", requireStaff(scheduleHandler.UpdateStatus)).Methods("PUT")

	// Notifications
	api.HandleFunc("/notifications", notificationHandler.List).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("PUT")

	return root
}
