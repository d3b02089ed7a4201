package jobs

import (
	"context"
	"fmt"
	"time"

	"rentnest-backend/internal/logger"
)

// SendDeliveryReminders emails customers whose scheduled delivery falls
// within the next day.
func (jr *JobRunner) SendDeliveryReminders() {
	jr.runWithRecovery("SendDeliveryReminders", func() {
		ctx := context.Background()

		due := time.Now().Add(24 * time.Hour)
		requests, err := jr.store.RequestRepository.ListScheduledDeliveriesDue(ctx, due)
		if err != nil {
			logger.Error("Failed to query scheduled deliveries", "error", err)
			return
		}

		count := 0
		for _, req := range requests {
			if req.ScheduledDeliveryDate == nil {
				continue
			}

			subject := "Reminder: Your delivery is coming up"
			body := fmt.Sprintf(`Hello,

This is a reminder that the delivery for your request #%d is scheduled for %s.

Please make sure someone is available to receive it.

Best regards,
The RentNest Team`, req.ID, req.ScheduledDeliveryDate.Format("2006-01-02"))

			if err := jr.services.Email.Send(ctx, req.Email, subject, body); err != nil {
				logger.Error("Failed to send delivery reminder",
					"request_id", req.ID,
					"email", req.Email,
					"error", err)
				continue
			}

			count++
			logger.Debug("Sent delivery reminder",
				"request_id", req.ID,
				"email", req.Email,
				"delivery_date", req.ScheduledDeliveryDate.Format("2006-01-02"))
		}

		logger.Info("Delivery reminders sent", "count", count)
	})
}
