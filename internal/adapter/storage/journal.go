package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akshitjain2004/EnvoSafe/internal/core/wallet"
)

// JournalRepository keeps an append-only copy of wallet entries. The wallet
// itself stays in memory; the journal is an audit trail.
type JournalRepository struct {
	db DB
}

func NewJournalRepository(db DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Record implements wallet.Journal.
func (r *JournalRepository) Record(ctx context.Context, e wallet.Entry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wallet_entries (id, direction, amount, balance_after, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, string(e.Direction), e.Amount, e.BalanceAfter, e.Description, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record wallet entry: %w", err)
	}
	return nil
}

// History fetches the most recent entries, newest first.
func (r *JournalRepository) History(ctx context.Context, limit int) ([]wallet.Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, direction, amount, balance_after, description, created_at
		FROM wallet_entries
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet entries: %w", err)
	}
	defer rows.Close()

	history := []wallet.Entry{}
	for rows.Next() {
		var e wallet.Entry
		var id, direction string
		if err := rows.Scan(&id, &direction, &e.Amount, &e.BalanceAfter, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wallet entry: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid wallet entry id %q: %w", id, err)
		}
		e.Direction = wallet.Direction(direction)
		history = append(history, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}
