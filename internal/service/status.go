package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"
)

// maxTransitionRetries bounds the optimistic read-check-write loop. Each
// retry re-reads and re-validates against the fresh status.
const maxTransitionRetries = 3

type statusService struct {
	requestRepo repository.RequestRepository
	fulfillment FulfillmentService
	dispatcher  Dispatcher
}

func NewStatusService(requestRepo repository.RequestRepository, fulfillment FulfillmentService, dispatcher Dispatcher) StatusService {
	return &statusService{
		requestRepo: requestRepo,
		fulfillment: fulfillment,
		dispatcher:  dispatcher,
	}
}

func (s *statusService) Transition(ctx context.Context, requestID int32, target domain.Status, in TransitionInput) (*domain.Request, error) {
	if in.PaymentStatus != "" && !in.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", domain.ErrValidation, in.PaymentStatus)
	}

	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		req, err := s.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return nil, err
		}

		if !domain.ValidStatus(req.Kind, target) {
			return nil, fmt.Errorf("%w: %q is not a status of kind %s", domain.ErrInvalidTransition, target, req.Kind)
		}

		pay := req.PaymentStatus
		if in.PaymentStatus != "" {
			pay = in.PaymentStatus
		}

		next := target
		// Paid on a pre-confirmed request advances it to the confirmed stage
		// as part of the same atomic update.
		if pay == domain.PaymentStatusPaid && next == req.Status &&
			req.Status != domain.StatusCancelled && !domain.AtOrBeyondConfirmed(req.Kind, req.Status) {
			next = domain.ConfirmedStatus(req.Kind)
		}

		sched := in.ScheduledDeliveryDate
		if next == domain.StatusScheduledDelivery && sched == nil && req.ScheduledDeliveryDate == nil {
			return nil, fmt.Errorf("%w: scheduled_delivery_date", domain.ErrMissingField)
		}

		// Paid implies at-or-beyond Confirmed. The auto-advance above covers
		// the pre-confirmed states, so only Cancelled can still land here.
		if pay == domain.PaymentStatusPaid && !domain.AtOrBeyondConfirmed(req.Kind, next) {
			return nil, fmt.Errorf("%w: request in status %s cannot be marked paid", domain.ErrInvalidTransition, next)
		}

		if next == req.Status {
			if pay == req.PaymentStatus && sched == nil {
				// Idempotent re-application. A re-delivered Delivered still
				// funnels through the materializer's check-and-set guard.
				s.materializeIfDelivered(ctx, req)
				return req, nil
			}
			// Same status, but payment status or delivery date changed.
		} else if !domain.CanTransition(req.Kind, req.Status, next) {
			return nil, fmt.Errorf("%w: %s -> %s for kind %s", domain.ErrInvalidTransition, req.Status, next, req.Kind)
		}

		swapped, err := s.requestRepo.CompareAndSwapStatus(ctx, requestID, req.Status, next, pay, sched)
		if err != nil {
			return nil, err
		}
		if !swapped {
			// Lost the race against a concurrent writer. Re-read and
			// re-validate from the new status.
			continue
		}

		req.Status = next
		req.PaymentStatus = pay
		if sched != nil {
			req.ScheduledDeliveryDate = sched
		}
		req.UpdatedOn = time.Now()

		s.materializeIfDelivered(ctx, req)
		s.notifyTransition(req)
		return req, nil
	}

	return nil, fmt.Errorf("transition of request %d to %s: lost %d consecutive update races", requestID, target, maxTransitionRetries)
}

func (s *statusService) MarkPaid(ctx context.Context, requestID int32) (*domain.Request, error) {
	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		req, err := s.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return nil, err
		}

		if req.PaymentStatus == domain.PaymentStatusPaid {
			return req, nil
		}

		// A cancelled request can no longer satisfy the Paid invariant. The
		// payment stays untouched and the funds go to manual reconciliation.
		if req.Status == domain.StatusCancelled {
			logger.WarnContext(ctx, "payment for cancelled request left unapplied",
				"request_id", req.ID)
			return req, nil
		}

		next := req.Status
		if !domain.AtOrBeyondConfirmed(req.Kind, req.Status) {
			next = domain.ConfirmedStatus(req.Kind)
		}

		swapped, err := s.requestRepo.CompareAndSwapStatus(ctx, requestID, req.Status, next, domain.PaymentStatusPaid, nil)
		if err != nil {
			return nil, err
		}
		if !swapped {
			continue
		}

		req.Status = next
		req.PaymentStatus = domain.PaymentStatusPaid
		req.UpdatedOn = time.Now()

		s.notifyTransition(req)
		return req, nil
	}

	return nil, fmt.Errorf("payment application to request %d: lost %d consecutive update races", requestID, maxTransitionRetries)
}

// materializeIfDelivered invokes the fulfillment materializer for delivered
// rentable requests. Conflicts are the expected outcome of re-deliveries and
// are absorbed; other failures are logged and left to the next idempotent
// re-application of Delivered.
func (s *statusService) materializeIfDelivered(ctx context.Context, req *domain.Request) {
	if req.Status != domain.StatusDelivered || !req.Kind.Rentable() {
		return
	}
	if _, err := s.fulfillment.Materialize(ctx, req); err != nil && !errors.Is(err, domain.ErrMaterializationConflict) {
		logger.ErrorContext(ctx, "rental materialization failed", "request_id", req.ID, "error", err)
	}
}

func (s *statusService) notifyTransition(req *domain.Request) {
	s.dispatcher.Enqueue(NotificationJob{
		To:      req.Email,
		Subject: fmt.Sprintf("Update on your request #%d", req.ID),
		Body: fmt.Sprintf("Hello,\n\nYour %s request #%d is now %s.\n\nBest regards,\nThe RentNest Team",
			kindLabel(req.Kind), req.ID, statusLabel(req.Status)),
		UserID: req.UserID,
		Attributes: map[string]string{
			"type":       "STATUS_CHANGED",
			"request_id": fmt.Sprintf("%d", req.ID),
			"status":     string(req.Status),
		},
	})
}

func kindLabel(k domain.RequestKind) string {
	switch k {
	case domain.RequestKindProperty:
		return "property"
	case domain.RequestKindFurnitureSell:
		return "furniture purchase"
	case domain.RequestKindFurnitureRent:
		return "furniture rental"
	case domain.RequestKindService:
		return "service"
	}
	return string(k)
}

func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusScheduledDelivery:
		return "scheduled for delivery"
	case domain.StatusOutForDelivery:
		return "out for delivery"
	}
	return string(s)
}
