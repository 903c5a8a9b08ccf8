package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/service"
)

// RentalHandler handles the rental lifecycle: pickup, return and extension
type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type pickupRequest struct {
	ReservationID string `json:"reservation_id"`
	VehicleID     string `json:"vehicle_id"`
	PickupToken   string `json:"pickup_token"`
}

func (h *RentalHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	var body pickupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	reservationID, err := uuid.Parse(body.ReservationID)
	if err != nil {
		writeBadRequest(w, "invalid reservation_id")
		return
	}
	vehicleID, err := uuid.Parse(body.VehicleID)
	if err != nil {
		writeBadRequest(w, "invalid vehicle_id")
		return
	}

	agreement, err := h.rentals.PickupVehicle(r.Context(), reservationID, vehicleID, body.PickupToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, agreement)
}

type returnRequest struct {
	EndOdometerKm int64   `json:"end_odometer_km"`
	EndFuelLevel  float64 `json:"end_fuel_level"`
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	agreementID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeBadRequest(w, "invalid agreement id")
		return
	}

	var body returnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	invoice, err := h.rentals.ReturnVehicle(
		r.Context(),
		agreementID,
		domain.Kilometers{Value: body.EndOdometerKm},
		domain.FuelLevel{Value: body.EndFuelLevel},
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

type extendRequest struct {
	NewDueTime string `json:"new_due_time"`
}

func (h *RentalHandler) Extend(w http.ResponseWriter, r *http.Request) {
	agreementID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeBadRequest(w, "invalid agreement id")
		return
	}

	var body extendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	newDueTime, err := time.Parse(time.RFC3339, body.NewDueTime)
	if err != nil {
		writeBadRequest(w, "invalid new_due_time, expected RFC3339")
		return
	}

	if err := h.rentals.ExtendRental(r.Context(), agreementID, newDueTime); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "extended"})
}
