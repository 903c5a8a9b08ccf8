package jobs

import (
	"context"
	"fmt"

	"carfleet-backend/internal/logger"
)

// NotifyOverdueRentals emails renters whose agreement is past its due time
// and whose vehicle has not come back.
func (jr *JobRunner) NotifyOverdueRentals() {
	jr.runWithRecovery("NotifyOverdueRentals", func() {
		ctx := context.Background()
		now := jr.clock.Now()

		agreements, err := jr.agreementRepo.List(ctx)
		if err != nil {
			logger.Error("Failed to list rental agreements", "error", err)
			return
		}

		count := 0
		for i := range agreements {
			agreement := &agreements[i]
			if agreement.Returned() || !agreement.DueTime.Before(now) {
				continue
			}
			if agreement.Reservation == nil || agreement.Reservation.Customer == nil {
				logger.Warn("Overdue agreement has no customer reference", "agreement_id", agreement.ID)
				continue
			}

			customer := agreement.Reservation.Customer
			message := fmt.Sprintf(
				"Your rental was due back on %s. Please return the vehicle or extend your rental to avoid late fees.",
				agreement.DueTime.Format("Jan 2, 2006 15:04 MST"),
			)
			if err := jr.notifier.Send(ctx, customer, message); err != nil {
				logger.Error("Failed to send overdue notice", "agreement_id", agreement.ID, "error", err)
				continue
			}
			count++
			logger.Debug("Sent overdue notice",
				"agreement_id", agreement.ID,
				"customer_email", customer.Email,
				"due_time", agreement.DueTime)
		}

		logger.Info("Sent overdue rental notices", "count", count)
	})
}
