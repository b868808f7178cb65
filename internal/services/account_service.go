package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/paywise/paywise-backend/internal/apperrors"
	"github.com/paywise/paywise-backend/internal/metrics"
	repo "github.com/paywise/paywise-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// A transfer that cannot reach a commit/abort decision within this window
// is aborted and reported as failed rather than blocking the request.
const transferTimeout = 5 * time.Second

type AccountService struct {
	accounts repo.Accounts
}

func NewAccountService(accounts repo.Accounts) *AccountService {
	return &AccountService{accounts: accounts}
}

func (s *AccountService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	a, err := s.accounts.GetByUser(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return a.Balance, nil
}

// Transfer moves amount from the caller to the recipient. The amount and
// self-transfer checks run up front; existence and sufficient-funds checks
// run inside the store transaction so no concurrent transfer can slip
// between check and debit. The store serializes conflicting transfers; the
// loser fails and is not retried here — retrying is the caller's choice.
func (s *AccountService) Transfer(ctx context.Context, callerID, recipientID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		metrics.TransfersFailed.WithLabelValues(failReason(apperrors.ErrInvalidAmount)).Inc()
		return apperrors.ErrInvalidAmount
	}
	if callerID == recipientID {
		metrics.TransfersFailed.WithLabelValues(failReason(apperrors.ErrSelfTransfer)).Inc()
		return apperrors.ErrSelfTransfer
	}

	ctx, cancel := context.WithTimeout(ctx, transferTimeout)
	defer cancel()

	if err := s.accounts.Transfer(ctx, callerID, recipientID, amount); err != nil {
		metrics.TransfersFailed.WithLabelValues(failReason(err)).Inc()
		slog.Warn("transfer rejected", "from", callerID, "to", recipientID, "err", err)
		return err
	}
	metrics.TransfersTotal.Inc()
	slog.Info("transfer completed", "from", callerID, "to", recipientID)
	return nil
}

func failReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, apperrors.ErrSelfTransfer):
		return "self_transfer"
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, apperrors.ErrSenderNotFound):
		return "sender_missing"
	case errors.Is(err, apperrors.ErrRecipientNotFound):
		return "recipient_missing"
	default:
		return "store_error"
	}
}
