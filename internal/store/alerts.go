package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ListActiveAlerts retrieves all alerts with active = true.
func (db *DB) ListActiveAlerts(ctx context.Context) ([]*Alert, error) {
	query := `
		SELECT alert_id, user_id, asset_id, target_price, condition, channel, creation_price, active, created_at, triggered_at
		FROM alerts
		WHERE active
		ORDER BY created_at
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, nil
}

// GetAlert retrieves an alert by id.
func (db *DB) GetAlert(ctx context.Context, alertID string) (*Alert, error) {
	query := `
		SELECT alert_id, user_id, asset_id, target_price, condition, channel, creation_price, active, created_at, triggered_at
		FROM alerts
		WHERE alert_id = $1
	`
	row := db.conn.QueryRowContext(ctx, query, alertID)
	alert, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrAlertNotFound, alertID)
	}
	if err != nil {
		return nil, err
	}
	return alert, nil
}

// CreateAlert writes an alert record. Redelivered events overwrite the row
// with identical content: the write is a full replacement keyed by alert_id,
// which makes at-least-once delivery safe.
func (db *DB) CreateAlert(ctx context.Context, alert *Alert) error {
	query := `
		INSERT INTO alerts (alert_id, user_id, asset_id, target_price, condition, channel, creation_price, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (alert_id) DO UPDATE SET
			user_id        = EXCLUDED.user_id,
			asset_id       = EXCLUDED.asset_id,
			target_price   = EXCLUDED.target_price,
			condition      = EXCLUDED.condition,
			channel        = EXCLUDED.channel,
			creation_price = EXCLUDED.creation_price
	`
	_, err := db.conn.ExecContext(ctx, query,
		alert.AlertID,
		alert.UserID,
		alert.AssetID,
		alert.TargetPrice,
		alert.Condition,
		alert.Channel,
		alert.CreationPrice,
		alert.Active,
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert %s: %w", alert.AlertID, err)
	}
	return nil
}

// MarkTriggered deactivates an alert and stamps triggered_at. The update is
// conditional on the alert still being active, so a concurrent or repeated
// firing cannot resurrect or re-stamp it. Returns whether the row was still
// active when the update ran.
func (db *DB) MarkTriggered(ctx context.Context, alertID string) (bool, error) {
	query := `
		UPDATE alerts
		SET active = FALSE, triggered_at = now()
		WHERE alert_id = $1 AND active
	`
	res, err := db.conn.ExecContext(ctx, query, alertID)
	if err != nil {
		return false, fmt.Errorf("failed to mark alert %s triggered: %w", alertID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result for alert %s: %w", alertID, err)
	}
	return affected > 0, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAlert(row rowScanner) (*Alert, error) {
	var alert Alert
	var triggeredAt sql.NullTime
	err := row.Scan(
		&alert.AlertID,
		&alert.UserID,
		&alert.AssetID,
		&alert.TargetPrice,
		&alert.Condition,
		&alert.Channel,
		&alert.CreationPrice,
		&alert.Active,
		&alert.CreatedAt,
		&triggeredAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan alert: %w", err)
	}
	if triggeredAt.Valid {
		alert.TriggeredAt = &triggeredAt.Time
	}
	return &alert, nil
}
