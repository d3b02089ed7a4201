package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentnest-backend/internal/security"
)

// NewRouter wires the HTTP surface of the order core.
func NewRouter(requests *RequestHandler, webhooks *WebhookHandler, account *AccountHandler, verifier security.TokenVerifier) *mux.Router {
	router := mux.NewRouter()
	router.Use(IdentityMiddleware(verifier))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	router.HandleFunc("/requests", requests.Create).Methods(http.MethodPost)
	router.HandleFunc("/requests/{id:[0-9]+}", requests.Get).Methods(http.MethodGet)
	router.HandleFunc("/requests/{id:[0-9]+}/status", requests.UpdateStatus).Methods(http.MethodPut)
	router.HandleFunc("/rentals/{id:[0-9]+}", requests.GetRental).Methods(http.MethodGet)
	router.HandleFunc("/me/records", requests.MyRecords).Methods(http.MethodGet)
	router.HandleFunc("/me/notifications", account.Notifications).Methods(http.MethodGet)
	router.HandleFunc("/me/notifications/{id:[0-9]+}/read", account.MarkNotificationRead).Methods(http.MethodPut)
	router.HandleFunc("/me/activity", account.Activity).Methods(http.MethodGet)

	router.HandleFunc("/payments/webhook", webhooks.HandlePaymentEvent).Methods(http.MethodPost)

	return router
}
