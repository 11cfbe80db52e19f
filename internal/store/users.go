package store

import (
	"context"
	"database/sql"
	"fmt"
)

// GetUserContact retrieves the contact record for a user.
func (db *DB) GetUserContact(ctx context.Context, userID string) (*UserContact, error) {
	query := `
		SELECT user_id, email, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	var contact UserContact
	err := db.conn.QueryRowContext(ctx, query, userID).Scan(
		&contact.UserID,
		&contact.Email,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrContactNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user contact: %w", err)
	}
	return &contact, nil
}

// UpsertUserContact writes the contact address for a user. Last write wins;
// only email and updated_at are touched on conflict so unrelated fields are
// never overwritten.
func (db *DB) UpsertUserContact(ctx context.Context, userID, email string) error {
	query := `
		INSERT INTO users (user_id, email)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			email      = EXCLUDED.email,
			updated_at = now()
	`
	if _, err := db.conn.ExecContext(ctx, query, userID, email); err != nil {
		return fmt.Errorf("failed to upsert contact for user %s: %w", userID, err)
	}
	return nil
}
