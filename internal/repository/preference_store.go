package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domrepo "PriceBoard/internal/domain/repository"
	pkgsqlite "PriceBoard/pkg/sqlite"
)

// SQLitePreferenceStore holds one opaque JSON payload per user.
type SQLitePreferenceStore struct {
	db *sql.DB
}

func NewSQLitePreferenceStore(client *pkgsqlite.Client) *SQLitePreferenceStore {
	return &SQLitePreferenceStore{db: client.DB()}
}

// Get returns the raw stored payload, or domain repository ErrNotFound.
func (s *SQLitePreferenceStore) Get(ctx context.Context, userID string) (string, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM user_preferences WHERE user_id = ?`, userID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domrepo.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query preferences: %w", err)
	}
	return payload, nil
}

func (s *SQLitePreferenceStore) Upsert(ctx context.Context, userID, payload, updatedAt string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		userID, payload, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

func (s *SQLitePreferenceStore) Delete(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_preferences WHERE user_id = ?`, userID,
	)
	if err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}
