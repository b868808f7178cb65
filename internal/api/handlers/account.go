package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/paywise/paywise-backend/internal/api/httpx"
	"github.com/paywise/paywise-backend/internal/api/validate"
	"github.com/paywise/paywise-backend/internal/middleware"
	"github.com/paywise/paywise-backend/internal/services"
	"github.com/shopspring/decimal"
)

type AccountHandler struct {
	svc *services.AccountService
}

func NewAccountHandler(svc *services.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	balance, err := h.svc.Balance(r.Context(), uid)
	if err != nil {
		httpx.WriteDomainError(w, err, "Error fetching balance")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]decimal.Decimal{"balance": balance})
}

type transferRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

func (r transferRequest) Validate() error {
	return validate.Collect(
		validate.Required("to", r.To),
	)
}

// Transfer runs the one piece of real business logic in the system; the
// amount and recipient checks beyond basic shape live in the service so
// they are enforced inside the store transaction.
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, err.(validate.Errs).First())
		return
	}

	if err := h.svc.Transfer(r.Context(), uid, req.To, req.Amount); err != nil {
		httpx.WriteDomainError(w, err, "Transfer failed")
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Transfer successful")
}
