package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carfleet-backend/internal/service"
)

// NewRouter wires all API handlers onto a mux router.
func NewRouter(
	reservations service.ReservationService,
	rentals service.RentalService,
	accounting service.AccountingService,
	maintenance service.MaintenanceService,
	inventory service.InventoryService,
) *mux.Router {
	router := mux.NewRouter()

	reservationHandler := NewReservationHandler(reservations)
	rentalHandler := NewRentalHandler(rentals)
	accountingHandler := NewAccountingHandler(accounting)
	fleetHandler := NewFleetHandler(maintenance, inventory)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/reservations", reservationHandler.Create).Methods("POST")
	api.HandleFunc("/reservations/{id}/cancel", reservationHandler.Cancel).Methods("POST")

	api.HandleFunc("/rentals/pickup", rentalHandler.Pickup).Methods("POST")
	api.HandleFunc("/rentals/{id}/return", rentalHandler.Return).Methods("POST")
	api.HandleFunc("/rentals/{id}/extend", rentalHandler.Extend).Methods("POST")

	api.HandleFunc("/deposits", accountingHandler.CaptureDeposit).Methods("POST")
	api.HandleFunc("/invoices/{id}/finalize", accountingHandler.FinalizePayment).Methods("POST")

	api.HandleFunc("/vehicles/{id}/service-plans", fleetHandler.RegisterServicePlan).Methods("POST")
	api.HandleFunc("/locations/{id}/maintenance-due", fleetHandler.ListDueVehicles).Methods("GET")
	api.HandleFunc("/locations/{id}/availability", fleetHandler.GetAvailability).Methods("GET")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	return router
}
