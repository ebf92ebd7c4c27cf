package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartlink/heartlink-api/internal/pkg/database"
)

// Repository defines read access to profiles owned by the external
// profile service
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, status, gender, birth_date,
	COALESCE(interests, '{}') AS interests,
	profile_complete, last_active_at,
	COALESCE(pref_min_age, 0) AS pref_min_age,
	COALESCE(pref_max_age, 0) AS pref_max_age,
	COALESCE(pref_interested_in, '{}') AS pref_interested_in`

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT` + userColumns + ` FROM profiles WHERE id = $1`

	var u User
	err := sqlx.GetContext(ctx, database.Ext(ctx, r.db), &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", ErrProfileUnavailable)
	}
	return &u, nil
}

func (r *repository) GetActiveByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, ErrUserNotFound
	}
	return u, nil
}
