package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/faith-journey-bot/internal/infra/postgres"
)

// StateRepository stores journey state as text values keyed by (user, key).
type StateRepository struct {
	db postgres.DBTX
	tr *postgres.Transactor
}

// NewStateRepository creates a StateRepository. A nil transactor makes SetMany
// issue independent upserts.
func NewStateRepository(db postgres.DBTX, tr *postgres.Transactor) *StateRepository {
	return &StateRepository{db: db, tr: tr}
}

// Get returns the stored value. ok is false when the key was never written.
func (r *StateRepository) Get(ctx context.Context, userID int64, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM journey_state
		WHERE user_id = $1 AND key = $2
	`

	var value string
	err := r.db.QueryRow(ctx, query, userID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get state %q: %w", key, err)
	}

	return value, true, nil
}

// SetMany writes all values, inside one transaction when a transactor is configured.
func (r *StateRepository) SetMany(ctx context.Context, userID int64, values map[string]string) error {
	if r.tr == nil {
		for key, value := range values {
			if err := upsertState(ctx, r.db, userID, key, value); err != nil {
				return err
			}
		}
		return nil
	}

	return r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for key, value := range values {
			if err := upsertState(ctx, tx, userID, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertState(ctx context.Context, db postgres.DBTX, userID int64, key, value string) error {
	query := `
		INSERT INTO journey_state (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := db.Exec(ctx, query, userID, key, value); err != nil {
		return fmt.Errorf("upsert state %q: %w", key, err)
	}
	return nil
}
