package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a user's funds. One account per user, created at signup.
// The balance is never negative; the check lives both here (transfer
// precondition) and in the accounts table CHECK constraint.
type Account struct {
	UserID        string          `json:"user_id"`
	Balance       decimal.Decimal `json:"balance"`
	LastUpdatedAt time.Time       `json:"last_updated_at"`
}
