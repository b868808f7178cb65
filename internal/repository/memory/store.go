// Package memory implements the repository interfaces on plain maps. It
// backs the service and HTTP tests and doubles as a throwaway store for
// local development without Postgres. A single mutex stands in for the
// database transaction: a transfer's check and both writes happen under
// one critical section.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paywise/paywise-backend/internal/apperrors"
	"github.com/paywise/paywise-backend/internal/models"
	"github.com/paywise/paywise-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu       sync.Mutex
	users    map[string]models.User    // by id
	byName   map[string]string         // username -> id
	accounts map[string]models.Account // by user id
}

func NewStore() *Store {
	return &Store{
		users:    map[string]models.User{},
		byName:   map[string]string{},
		accounts: map[string]models.Account{},
	}
}

func (s *Store) Users() repository.Users       { return (*usersStore)(s) }
func (s *Store) Accounts() repository.Accounts { return (*accountsStore)(s) }

type usersStore Store

func (s *usersStore) Create(_ context.Context, u models.User, initialBalance decimal.Decimal) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byName[u.Username]; taken {
		return models.User{}, apperrors.ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = u
	s.byName[u.Username] = u.ID
	s.accounts[u.ID] = models.Account{UserID: u.ID, Balance: initialBalance, LastUpdatedAt: now}
	return u, nil
}

func (s *usersStore) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (s *usersStore) GetByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byName[username]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *usersStore) Update(_ context.Context, id string, upd repository.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

func (s *usersStore) Search(_ context.Context, filter string) ([]models.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filter = strings.ToLower(filter)
	out := []models.UserSummary{}
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.FirstName), filter) ||
			strings.Contains(strings.ToLower(u.LastName), filter) {
			out = append(out, models.UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName})
		}
	}
	return out, nil
}

type accountsStore Store

func (s *accountsStore) GetByUser(_ context.Context, userID string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[userID]
	if !ok {
		return models.Account{}, apperrors.ErrAccountNotFound
	}
	return a, nil
}

func (s *accountsStore) Transfer(_ context.Context, fromUserID, toUserID string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.accounts[fromUserID]
	if !ok {
		return apperrors.ErrSenderNotFound
	}
	if from.Balance.LessThan(amount) {
		return apperrors.ErrInsufficientFunds
	}
	to, ok := s.accounts[toUserID]
	if !ok {
		return apperrors.ErrRecipientNotFound
	}

	now := time.Now()
	from.Balance = from.Balance.Sub(amount)
	from.LastUpdatedAt = now
	to.Balance = to.Balance.Add(amount)
	to.LastUpdatedAt = now
	s.accounts[fromUserID] = from
	s.accounts[toUserID] = to
	return nil
}
