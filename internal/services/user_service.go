package services

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/paywise/paywise-backend/internal/apperrors"
	"github.com/paywise/paywise-backend/internal/auth"
	"github.com/paywise/paywise-backend/internal/metrics"
	"github.com/paywise/paywise-backend/internal/models"
	repo "github.com/paywise/paywise-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// New accounts open with a random balance in [1, 10000] so the demo wallet
// has something to move around.
const maxInitialBalance = 10000

type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewUserService(users repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, tm: tm}
}

// Signup creates the user together with their account and returns a signed
// bearer token for the new identity.
func (s *UserService) Signup(ctx context.Context, username, firstName, lastName, password string) (string, error) {
	u := models.User{Username: username, FirstName: firstName, LastName: lastName}
	u.Normalize()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	u.PasswordHash = hash

	initial := decimal.NewFromInt(rand.Int64N(maxInitialBalance) + 1)
	u, err = s.users.Create(ctx, u, initial)
	if err != nil {
		return "", err
	}
	metrics.SignupsTotal.Inc()
	slog.Info("user signed up", "user_id", u.ID)

	return s.tm.Generate(u.ID)
}

// Signin verifies credentials and hands out a fresh token. Unknown user and
// wrong password are indistinguishable to the caller.
func (s *UserService) Signin(ctx context.Context, username, password string) (string, error) {
	lookup := models.User{Username: username}
	lookup.Normalize()

	u, err := s.users.GetByUsername(ctx, lookup.Username)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	if auth.VerifyPassword(password, u.PasswordHash) != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	return s.tm.Generate(u.ID)
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update applies the provided profile fields; a new password is hashed
// before it is stored.
func (s *UserService) Update(ctx context.Context, id string, password, firstName, lastName *string) error {
	upd := repo.UserUpdate{FirstName: firstName, LastName: lastName}
	if password != nil {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return err
		}
		upd.PasswordHash = &hash
	}
	return s.users.Update(ctx, id, upd)
}

func (s *UserService) Search(ctx context.Context, filter string) ([]models.UserSummary, error) {
	return s.users.Search(ctx, filter)
}
