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

// FleetHandler exposes maintenance planning and per-location availability
type FleetHandler struct {
	maintenance service.MaintenanceService
	inventory   service.InventoryService
}

func NewFleetHandler(maintenance service.MaintenanceService, inventory service.InventoryService) *FleetHandler {
	return &FleetHandler{maintenance: maintenance, inventory: inventory}
}

type registerServicePlanRequest struct {
	ServiceType         string `json:"service_type"`
	OdometerThresholdKm int64  `json:"odometer_threshold_km"`
	TimeThresholdDays   int    `json:"time_threshold_days"`
}

func (h *FleetHandler) RegisterServicePlan(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeBadRequest(w, "invalid vehicle id")
		return
	}

	var body registerServicePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.ServiceType == "" {
		writeBadRequest(w, "service_type is required")
		return
	}

	record, err := h.maintenance.RegisterServicePlan(
		r.Context(),
		vehicleID,
		body.ServiceType,
		domain.Kilometers{Value: body.OdometerThresholdKm},
		time.Duration(body.TimeThresholdDays)*24*time.Hour,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *FleetHandler) ListDueVehicles(w http.ResponseWriter, r *http.Request) {
	locationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeBadRequest(w, "invalid location id")
		return
	}

	vehicles, err := h.maintenance.ListDueVehicles(r.Context(), locationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *FleetHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	locationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeBadRequest(w, "invalid location id")
		return
	}

	availability, err := h.inventory.GetAvailability(r.Context(), locationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}
