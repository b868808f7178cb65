package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/paywise/paywise-backend/internal/apperrors"
)

// Message is the body shape shared by every non-2xx response and most
// confirmations: {"message": "..."}.
type Message struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Message{Message: msg})
}

// WriteDomainError maps a domain error through the apperrors taxonomy.
// Unmapped errors get a 500 with the endpoint's fallback message so no
// internal detail leaks.
func WriteDomainError(w http.ResponseWriter, err error, fallback string) {
	if status, msg, ok := apperrors.HTTPStatus(err); ok {
		WriteMessage(w, status, msg)
		return
	}
	WriteMessage(w, http.StatusInternalServerError, fallback)
}
