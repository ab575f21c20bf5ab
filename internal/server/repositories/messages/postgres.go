// Package messages provides the PostgreSQL-backed repository for dialog messages.
package messages

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

func (r *PostgresRepository) Insert(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (id, dialog_id, device_label, kind, body, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.DialogID, message.DeviceLabel, message.Kind,
		message.Body, message.StorageKey, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Message, error) {
	query := `
		SELECT id, dialog_id, device_label, kind, body, storage_key, created_at
		FROM messages WHERE id = $1
	`
	var m models.Message
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.DialogID, &m.DeviceLabel, &m.Kind, &m.Body, &m.StorageKey, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select message: %w", err)
	}
	return &m, nil
}

func (r *PostgresRepository) ListByDialog(ctx context.Context, dialogID string) ([]*models.Message, error) {
	query := `
		SELECT id, dialog_id, device_label, kind, body, storage_key, created_at
		FROM messages WHERE dialog_id = $1 ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, dialogID)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.DialogID, &m.DeviceLabel, &m.Kind, &m.Body, &m.StorageKey, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
