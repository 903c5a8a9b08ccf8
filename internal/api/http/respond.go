package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP status codes. Unknown errors are
// reported as 500 without leaking their message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrLocationNotFound),
		errors.Is(err, domain.ErrVehicleNotFound),
		errors.Is(err, domain.ErrVehicleClassNotFound),
		errors.Is(err, domain.ErrAddOnNotFound),
		errors.Is(err, domain.ErrInsuranceNotFound),
		errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrAgreementNotFound),
		errors.Is(err, domain.ErrInvoiceNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrVehicleClassMismatch),
		errors.Is(err, domain.ErrVehicleNotAssignable),
		errors.Is(err, domain.ErrAlreadyReturned),
		errors.Is(err, domain.ErrExtensionConflict),
		errors.Is(err, domain.ErrInvoiceFinalized):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrInvalidTimeWindow),
		errors.Is(err, domain.ErrInvalidPickupToken),
		errors.Is(err, domain.ErrNotReturned):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})

	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
