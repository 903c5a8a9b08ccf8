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

// ReservationHandler handles reservation booking and cancellation
type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type createReservationRequest struct {
	CustomerID       string   `json:"customer_id"`
	VehicleClassID   string   `json:"vehicle_class_id"`
	PickupLocationID string   `json:"pickup_location_id"`
	ReturnLocationID string   `json:"return_location_id"`
	PickupTime       string   `json:"pickup_time"`
	ReturnTime       string   `json:"return_time"`
	DepositCents     int64    `json:"deposit_cents"`
	AddOnIDs         []string `json:"add_on_ids"`
	InsuranceTierID  *string  `json:"insurance_tier_id,omitempty"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	req := &service.CreateReservationRequest{
		DepositAmount: domain.Money{Cents: body.DepositCents},
	}

	var err error
	if req.CustomerID, err = uuid.Parse(body.CustomerID); err != nil {
		writeBadRequest(w, "invalid customer_id")
		return
	}
	if req.VehicleClassID, err = uuid.Parse(body.VehicleClassID); err != nil {
		writeBadRequest(w, "invalid vehicle_class_id")
		return
	}
	if req.PickupLocationID, err = uuid.Parse(body.PickupLocationID); err != nil {
		writeBadRequest(w, "invalid pickup_location_id")
		return
	}
	if req.ReturnLocationID, err = uuid.Parse(body.ReturnLocationID); err != nil {
		writeBadRequest(w, "invalid return_location_id")
		return
	}
	if req.PickupTime, err = time.Parse(time.RFC3339, body.PickupTime); err != nil {
		writeBadRequest(w, "invalid pickup_time, expected RFC3339")
		return
	}
	if req.ReturnTime, err = time.Parse(time.RFC3339, body.ReturnTime); err != nil {
		writeBadRequest(w, "invalid return_time, expected RFC3339")
		return
	}
	for _, raw := range body.AddOnIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeBadRequest(w, "invalid add_on_ids entry")
			return
		}
		req.AddOnIDs = append(req.AddOnIDs, id)
	}
	if body.InsuranceTierID != nil {
		id, err := uuid.Parse(*body.InsuranceTierID)
		if err != nil {
			writeBadRequest(w, "invalid insurance_tier_id")
			return
		}
		req.InsuranceTierID = &id
	}

	reservation, err := h.reservations.CreateReservation(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeBadRequest(w, "invalid reservation id")
		return
	}

	reservation, err := h.reservations.CancelReservation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}
