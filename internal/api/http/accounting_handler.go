package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/service"
)

// AccountingHandler handles deposits and invoice payment
type AccountingHandler struct {
	accounting service.AccountingService
}

func NewAccountingHandler(accounting service.AccountingService) *AccountingHandler {
	return &AccountingHandler{accounting: accounting}
}

type captureDepositRequest struct {
	CustomerID  string `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
}

func (h *AccountingHandler) CaptureDeposit(w http.ResponseWriter, r *http.Request) {
	var body captureDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	customerID, err := uuid.Parse(body.CustomerID)
	if err != nil {
		writeBadRequest(w, "invalid customer_id")
		return
	}

	if err := h.accounting.CaptureDeposit(r.Context(), customerID, domain.Money{Cents: body.AmountCents}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "authorized"})
}

func (h *AccountingHandler) FinalizePayment(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeBadRequest(w, "invalid invoice id")
		return
	}

	payment, err := h.accounting.FinalizePayment(r.Context(), invoiceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
