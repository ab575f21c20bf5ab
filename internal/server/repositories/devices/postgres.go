// Package devices provides the PostgreSQL-backed repository for dialog
// device memberships.
package devices

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/dbx"
	"github.com/allbox-app/allbox/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, device *models.Device) error {
	query := `
		INSERT INTO dialog_devices (dialog_id, device_id, device_label, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (dialog_id, device_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, device.DialogID, device.DeviceID, device.DeviceLabel, device.JoinedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, dialogID, deviceID string) (*models.Device, error) {
	query := `
		SELECT dialog_id, device_id, device_label, joined_at FROM dialog_devices
		WHERE dialog_id = $1 AND device_id = $2
	`
	var d models.Device
	err := r.db.QueryRowContext(ctx, query, dialogID, deviceID).
		Scan(&d.DialogID, &d.DeviceID, &d.DeviceLabel, &d.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select device: %w", err)
	}
	return &d, nil
}

func (r *PostgresRepository) ListByDialog(ctx context.Context, dialogID string) ([]*models.Device, error) {
	query := `
		SELECT dialog_id, device_id, device_label, joined_at FROM dialog_devices
		WHERE dialog_id = $1 ORDER BY joined_at
	`
	rows, err := r.db.QueryContext(ctx, query, dialogID)
	if err != nil {
		return nil, fmt.Errorf("failed to select devices: %w", err)
	}
	defer rows.Close()

	var result []*models.Device
	for rows.Next() {
		var d models.Device
		if err := rows.Scan(&d.DialogID, &d.DeviceID, &d.DeviceLabel, &d.JoinedAt); err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) CountByDialog(ctx context.Context, dialogID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM dialog_devices WHERE dialog_id = $1`, dialogID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count devices: %w", err)
	}
	return n, nil
}
