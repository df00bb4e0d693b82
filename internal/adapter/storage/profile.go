package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
)

// ProfileRepository reads user documents and the session tokens issued for them.
type ProfileRepository struct {
	db DB
}

func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT id, email, first_name, last_name, wallet, credits FROM users WHERE id = $1`
	var p domain.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Email, &p.FirstName, &p.LastName, &p.Wallet, &p.Credits,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &p, nil
}

// SaveSessionToken stores the hash of a token issued for userID.
func (r *ProfileRepository) SaveSessionToken(ctx context.Context, userID, tokenHash, prefix string) error {
	query := `INSERT INTO session_tokens (user_id, token_hash, token_prefix) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, userID, tokenHash, prefix); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

// UserForToken resolves a token hash to the user it was issued for.
func (r *ProfileRepository) UserForToken(ctx context.Context, tokenHash string) (string, error) {
	var userID string
	err := r.db.QueryRow(ctx, `SELECT user_id FROM session_tokens WHERE token_hash = $1`, tokenHash).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrProfileNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session token: %w", err)
	}
	return userID, nil
}
