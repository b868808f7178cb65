package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paywise/paywise-backend/internal/apperrors"
	"github.com/paywise/paywise-backend/internal/models"
	"github.com/paywise/paywise-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type usersRepo struct{ pool *pgxpool.Pool }

const uniqueViolation = "23505"

func (r *usersRepo) Create(ctx context.Context, u models.User, initialBalance decimal.Decimal) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.User{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO users(id, username, password_hash, first_name, last_name)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING id, username, password_hash, first_name, last_name, created_at, updated_at`,
		u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, apperrors.ErrEmailTaken
		}
		return models.User{}, err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO accounts(user_id, balance) VALUES($1, $2)`,
		u.ID, initialBalance,
	); err != nil {
		return models.User{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.getBy(ctx, `WHERE id=$1`, id)
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getBy(ctx, `WHERE username=$1`, username)
}

func (r *usersRepo) getBy(ctx context.Context, where string, arg any) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, first_name, last_name, created_at, updated_at
		   FROM users `+where, arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return u, err
}

func (r *usersRepo) Update(ctx context.Context, id string, upd repository.UserUpdate) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		    SET password_hash = COALESCE($2, password_hash),
		        first_name    = COALESCE($3, first_name),
		        last_name     = COALESCE($4, last_name),
		        updated_at    = now()
		  WHERE id = $1`,
		id, upd.PasswordHash, upd.FirstName, upd.LastName,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *usersRepo) Search(ctx context.Context, filter string) ([]models.UserSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, first_name, last_name
		   FROM users
		  WHERE first_name ILIKE '%' || $1 || '%'
		     OR last_name  ILIKE '%' || $1 || '%'
		  ORDER BY created_at`,
		filter,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.UserSummary{}
	for rows.Next() {
		var s models.UserSummary
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
