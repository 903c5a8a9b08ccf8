package jobs

import (
	"context"
	"fmt"
	"strings"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/logger"
)

// SendMaintenanceAlerts emails the operations inbox a per-location digest of
// vehicles with a maintenance plan currently due.
func (jr *JobRunner) SendMaintenanceAlerts() {
	jr.runWithRecovery("SendMaintenanceAlerts", func() {
		ctx := context.Background()
		now := jr.clock.Now()

		locations, err := jr.locationRepo.List(ctx)
		if err != nil {
			logger.Error("Failed to list locations", "error", err)
			return
		}

		ops := &domain.Customer{
			FirstName: "Fleet",
			LastName:  "Operations",
			Email:     jr.config.SendGrid.OpsEmail,
		}

		for i := range locations {
			location := &locations[i]
			vehicles, err := jr.vehicleRepo.ListByLocation(ctx, location.ID)
			if err != nil {
				logger.Error("Failed to list vehicles", "location_id", location.ID, "error", err)
				continue
			}

			var due []string
			for j := range vehicles {
				if vehicles[j].IsMaintenanceDue(now) {
					due = append(due, fmt.Sprintf("%s (odometer %d km)", vehicles[j].LicensePlate, vehicles[j].Odometer.Value))
				}
			}
			if len(due) == 0 {
				continue
			}

			message := fmt.Sprintf("Maintenance due at %s:\n%s", location.Name, strings.Join(due, "\n"))
			if err := jr.notifier.Send(ctx, ops, message); err != nil {
				logger.Error("Failed to send maintenance alert", "location_id", location.ID, "error", err)
				continue
			}
			logger.Info("Sent maintenance alert", "location", location.Name, "vehicles_due", len(due))
		}
	})
}
