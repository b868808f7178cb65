package repository

import (
	"context"

	"github.com/paywise/paywise-backend/internal/models"
	"github.com/shopspring/decimal"
)

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	PasswordHash *string
	FirstName    *string
	LastName     *string
}

type Users interface {
	// Create inserts the user and their account with the given opening
	// balance as one atomic unit. Duplicate usernames come back as
	// apperrors.ErrEmailTaken.
	Create(ctx context.Context, u models.User, initialBalance decimal.Decimal) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) error
	// Search matches a case-insensitive substring against first or last
	// name; an empty filter returns everyone.
	Search(ctx context.Context, filter string) ([]models.UserSummary, error)
}

type Accounts interface {
	GetByUser(ctx context.Context, userID string) (models.Account, error)
	// Transfer moves amount between the two accounts inside a single
	// database transaction: both balances change or neither does.
	// Precondition failures surface as the apperrors transfer taxonomy.
	Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal) error
}
