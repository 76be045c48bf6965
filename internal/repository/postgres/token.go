package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/repository"
)

type authTokenRepository struct {
	db *sql.DB
}

func NewAuthTokenRepository(db *sql.DB) repository.AuthTokenRepository {
	return &authTokenRepository{db: db}
}

func (r *authTokenRepository) Create(ctx context.Context, t *domain.AuthToken) error {
	query := `INSERT INTO auth_tokens (user_id, kind, token, expires_on, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, t.UserID, t.Kind, t.Token, t.ExpiresOn, time.Now()).Scan(&t.ID)
}

// Consume invalidates the token in the same statement that reads it, so
// a token can only ever be used once.
func (r *authTokenRepository) Consume(ctx context.Context, token string, kind domain.AuthTokenKind, now time.Time) (*domain.AuthToken, error) {
	query := `UPDATE auth_tokens SET used_on = $3
	          WHERE token = $1 AND kind = $2 AND used_on IS NULL AND expires_on > $3
	          RETURNING id, user_id, kind, token, expires_on, used_on, created_on`
	t := &domain.AuthToken{}
	err := r.db.QueryRowContext(ctx, query, token, kind, now).Scan(&t.ID, &t.UserID, &t.Kind, &t.Token, &t.ExpiresOn, &t.UsedOn, &t.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: token", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *authTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE expires_on < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
