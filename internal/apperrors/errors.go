// Package apperrors defines the domain error values shared by the service
// and repository layers, and their mapping to HTTP responses. Handlers never
// surface raw store errors; anything unmapped becomes a generic 500.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// transfer preconditions
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrSelfTransfer      = errors.New("cannot transfer to own account")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrSenderNotFound    = errors.New("sender account not found")
	ErrRecipientNotFound = errors.New("recipient account not found")
	ErrTransactionFailed = errors.New("transfer failed")

	// users & accounts
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountNotFound    = errors.New("account not found")
)

type httpError struct {
	status  int
	message string
}

var table = map[error]httpError{
	ErrInvalidAmount:      {http.StatusBadRequest, "Amount must be greater than zero"},
	ErrSelfTransfer:       {http.StatusBadRequest, "Cannot transfer to your own account"},
	ErrInsufficientFunds:  {http.StatusBadRequest, "Insufficient balance"},
	ErrSenderNotFound:     {http.StatusNotFound, "Sender account not found"},
	ErrRecipientNotFound:  {http.StatusBadRequest, "Recipient account not found"},
	ErrTransactionFailed:  {http.StatusInternalServerError, "Transfer failed"},
	ErrEmailTaken:         {http.StatusBadRequest, "Email already taken"},
	ErrInvalidCredentials: {http.StatusBadRequest, "Invalid username or password"},
	ErrUserNotFound:       {http.StatusNotFound, "User not found"},
	ErrAccountNotFound:    {http.StatusNotFound, "Account not found"},
}

// HTTPStatus resolves a domain error to its HTTP status and user-facing
// message. ok is false for errors outside the taxonomy.
func HTTPStatus(err error) (status int, message string, ok bool) {
	for e, h := range table {
		if errors.Is(err, e) {
			return h.status, h.message, true
		}
	}
	return 0, "", false
}
