package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/service"
)

type RequestHandler struct {
	intake      service.IntakeService
	status      service.StatusService
	identity    service.IdentityService
	fulfillment service.FulfillmentService
}

func NewRequestHandler(intake service.IntakeService, status service.StatusService, identity service.IdentityService, fulfillment service.FulfillmentService) *RequestHandler {
	return &RequestHandler{
		intake:      intake,
		status:      status,
		identity:    identity,
		fulfillment: fulfillment,
	}
}

type createRequestBody struct {
	Kind                domain.RequestKind   `json:"kind"`
	Email               string               `json:"email"`
	Phone               string               `json:"phone"`
	Items               []domain.RequestItem `json:"items"`
	DeliveryChargeCents int32                `json:"delivery_charge_cents"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("%w: malformed JSON body", domain.ErrValidation))
		return
	}

	in := service.NewRequestInput{
		Kind:                body.Kind,
		UserID:              userIDFrom(r.Context()),
		Email:               body.Email,
		Phone:               body.Phone,
		Items:               body.Items,
		DeliveryChargeCents: body.DeliveryChargeCents,
	}
	req, err := h.intake.CreateRequest(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	req, err := h.intake.GetRequest(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type updateStatusBody struct {
	Status                domain.Status        `json:"status"`
	PaymentStatus         domain.PaymentStatus `json:"payment_status,omitempty"`
	ScheduledDeliveryDate *string              `json:"scheduled_delivery_date,omitempty"`
}

func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body updateStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("%w: malformed JSON body", domain.ErrValidation))
		return
	}
	if body.Status == "" {
		writeError(w, fmt.Errorf("%w: status", domain.ErrMissingField))
		return
	}

	in := service.TransitionInput{PaymentStatus: body.PaymentStatus}
	if body.ScheduledDeliveryDate != nil {
		date, err := time.Parse("2006-01-02", *body.ScheduledDeliveryDate)
		if err != nil {
			writeError(w, fmt.Errorf("%w: scheduled_delivery_date must be YYYY-MM-DD", domain.ErrValidation))
			return
		}
		in.ScheduledDeliveryDate = &date
	}

	req, err := h.status.Transition(r.Context(), id, body.Status, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.fulfillment.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// MyRecords resolves the records owned by the caller's identity: the bearer
// token's user id when present, plus case-insensitive email matches.
func (h *RequestHandler) MyRecords(w http.ResponseWriter, r *http.Request) {
	hint := domain.IdentityHint{
		UserID: userIDFrom(r.Context()),
		Email:  r.URL.Query().Get("email"),
	}
	if hint.Email == "" {
		if claims := claimsFrom(r.Context()); claims != nil {
			hint.Email = claims.Email
		}
	}

	records, err := h.identity.Resolve(r.Context(), hint)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrValidation, raw)
	}
	return int32(id), nil
}
