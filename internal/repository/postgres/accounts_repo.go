package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paywise/paywise-backend/internal/apperrors"
	"github.com/paywise/paywise-backend/internal/models"
	"github.com/shopspring/decimal"
)

type accountsRepo struct{ pool *pgxpool.Pool }

func (r *accountsRepo) GetByUser(ctx context.Context, userID string) (models.Account, error) {
	var a models.Account
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, balance, last_updated_at FROM accounts WHERE user_id=$1`,
		userID,
	).Scan(&a.UserID, &a.Balance, &a.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Account{}, apperrors.ErrAccountNotFound
	}
	return a, err
}

// Transfer debits the sender and credits the recipient inside one database
// transaction. Both rows are locked before any balance is read, so a
// concurrent transfer draining the same account waits here and then sees
// the post-debit balance; the funds check can never pass against a stale
// read. Rows are locked in user-id order to keep two opposing transfers
// from deadlocking.
func (r *accountsRepo) Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite})
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	first, second := fromUserID, toUserID
	if second < first {
		first, second = second, first
	}
	balances := map[string]decimal.Decimal{}
	for _, id := range []string{first, second} {
		var bal decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT balance FROM accounts WHERE user_id=$1 FOR UPDATE`, id,
		).Scan(&bal)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// missing row reported below, in precondition order
		case err != nil:
			return fmt.Errorf("%w: %v", apperrors.ErrTransactionFailed, err)
		default:
			balances[id] = bal
		}
	}

	fromBalance, ok := balances[fromUserID]
	if !ok {
		return apperrors.ErrSenderNotFound
	}
	if fromBalance.LessThan(amount) {
		return apperrors.ErrInsufficientFunds
	}
	if _, ok := balances[toUserID]; !ok {
		return apperrors.ErrRecipientNotFound
	}

	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = balance - $2, last_updated_at = now() WHERE user_id=$1`,
		fromUserID, amount,
	); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransactionFailed, err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = balance + $2, last_updated_at = now() WHERE user_id=$1`,
		toUserID, amount,
	); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransactionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransactionFailed, err)
	}
	return nil
}
