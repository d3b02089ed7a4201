package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"
)

type paymentService struct {
	eventRepo    repository.PaymentEventRepository
	requestRepo  repository.RequestRepository
	activityRepo repository.ActivityLogRepository
	status       StatusService
	secret       []byte
}

func NewPaymentService(
	eventRepo repository.PaymentEventRepository,
	requestRepo repository.RequestRepository,
	activityRepo repository.ActivityLogRepository,
	status StatusService,
	webhookSecret string,
) PaymentService {
	return &paymentService{
		eventRepo:    eventRepo,
		requestRepo:  requestRepo,
		activityRepo: activityRepo,
		status:       status,
		secret:       []byte(webhookSecret),
	}
}

func (s *paymentService) ApplyEvent(ctx context.Context, ev *domain.PaymentEvent) (bool, error) {
	if !s.verifySignature(ev) {
		logger.WarnContext(ctx, "payment event signature invalid, discarding",
			"event_id", ev.EventID, "request_id", ev.RequestID)
		return false, domain.ErrSignatureInvalid
	}

	req, err := s.requestRepo.GetByID(ctx, ev.RequestID)
	if err != nil {
		return false, fmt.Errorf("payment event %s: %w", ev.EventID, err)
	}

	// Atomic check-and-insert on the event id. Of concurrent redeliveries of
	// the same id exactly one lands here with inserted=true.
	inserted, err := s.eventRepo.Record(ctx, ev)
	if err != nil {
		return false, err
	}
	if !inserted {
		logger.InfoContext(ctx, "duplicate payment event ignored", "event_id", ev.EventID)
		return false, nil
	}

	updated, err := s.status.MarkPaid(ctx, ev.RequestID)
	if err != nil {
		// Release the claim so the gateway's redelivery can retry.
		if delErr := s.eventRepo.Delete(ctx, ev.EventID); delErr != nil {
			logger.ErrorContext(ctx, "failed to release payment event claim",
				"event_id", ev.EventID, "error", delErr)
		}
		return false, err
	}

	if err := s.eventRepo.MarkApplied(ctx, ev.EventID); err != nil {
		logger.ErrorContext(ctx, "failed to mark payment event applied",
			"event_id", ev.EventID, "error", err)
	}

	// A cancelled request refuses the payment. The event stays in the
	// processed set so redeliveries are still deduplicated, but the funds
	// are left to manual reconciliation.
	if updated.PaymentStatus != domain.PaymentStatusPaid {
		logger.WarnContext(ctx, "payment event recorded but not applied",
			"event_id", ev.EventID, "request_id", ev.RequestID, "status", updated.Status)
		return false, nil
	}

	if ev.AmountCents != req.ExpectedTotalCents {
		// Flagged for manual reconciliation; does not block the Paid status.
		logger.WarnContext(ctx, "payment amount mismatch",
			"event_id", ev.EventID, "request_id", ev.RequestID,
			"amount_cents", ev.AmountCents, "expected_cents", req.ExpectedTotalCents)
	}

	if req.UserID != nil {
		entry := &domain.ActivityLogEntry{
			UserID: *req.UserID,
			Action: domain.ActivityPaymentApplied,
			Details: map[string]string{
				"event_id":     ev.EventID,
				"request_id":   fmt.Sprintf("%d", ev.RequestID),
				"amount_cents": fmt.Sprintf("%d", ev.AmountCents),
			},
		}
		if err := s.activityRepo.Create(ctx, entry); err != nil {
			logger.ErrorContext(ctx, "failed to write activity log entry",
				"user_id", *req.UserID, "event_id", ev.EventID, "error", err)
		}
	}

	return true, nil
}

// verifySignature checks the gateway's HMAC-SHA256 signature over
// "event_id|request_id|amount_cents" in constant time.
func (s *paymentService) verifySignature(ev *domain.PaymentEvent) bool {
	sig, err := hex.DecodeString(ev.Signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d|%d", ev.EventID, ev.RequestID, ev.AmountCents)
	return hmac.Equal(sig, mac.Sum(nil))
}
