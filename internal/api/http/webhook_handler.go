package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/service"
)

type WebhookHandler struct {
	payment service.PaymentService
}

func NewWebhookHandler(payment service.PaymentService) *WebhookHandler {
	return &WebhookHandler{payment: payment}
}

type webhookBody struct {
	EventID     string `json:"event_id"`
	RequestID   int32  `json:"request_id"`
	AmountCents int32  `json:"amount_cents"`
	Signature   string `json:"signature"`
}

// HandlePaymentEvent acknowledges with 200 per gateway redelivery convention:
// signature failures, duplicates and unknown requests are logged, never
// surfaced as errors. Only a structurally malformed payload gets a 400, and
// internal failures a 500 so the gateway redelivers.
func (h *WebhookHandler) HandlePaymentEvent(w http.ResponseWriter, r *http.Request) {
	var body webhookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed payload"})
		return
	}
	if body.EventID == "" || body.RequestID <= 0 || body.Signature == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed payload"})
		return
	}

	ev := &domain.PaymentEvent{
		EventID:     body.EventID,
		RequestID:   body.RequestID,
		AmountCents: body.AmountCents,
		Signature:   body.Signature,
		ReceivedAt:  time.Now(),
	}

	applied, err := h.payment.ApplyEvent(r.Context(), ev)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSignatureInvalid), errors.Is(err, domain.ErrNotFound):
			// Absorbed: the gateway must not keep redelivering these.
			logger.WarnContext(r.Context(), "payment event discarded",
				"event_id", ev.EventID, "request_id", ev.RequestID, "error", err)
		default:
			logger.ErrorContext(r.Context(), "payment event processing failed",
				"event_id", ev.EventID, "request_id", ev.RequestID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "processing failed"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"applied": applied})
}
