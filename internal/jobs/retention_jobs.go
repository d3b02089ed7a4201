package jobs

import (
	"context"
	"time"

	"rentnest-backend/internal/logger"
)

// PurgeSettledPaymentEvents prunes applied webhook events past the retention
// window. Unapplied claims are never pruned, and the window is kept longer
// than any gateway redelivery horizon so the idempotency set stays durable
// while redeliveries are still possible.
func (jr *JobRunner) PurgeSettledPaymentEvents() {
	jr.runWithRecovery("PurgeSettledPaymentEvents", func() {
		ctx := context.Background()

		retention := time.Duration(jr.config.Payment.EventRetentionDays) * 24 * time.Hour
		cutoff := time.Now().Add(-retention)

		purged, err := jr.store.PaymentEventRepository.PurgeAppliedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge settled payment events", "error", err)
			return
		}

		logger.Info("Settled payment events purged", "count", purged, "cutoff", cutoff.Format("2006-01-02"))
	})
}
