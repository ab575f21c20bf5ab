// Package files provides the PostgreSQL-backed repository for shared file rows.
package files

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

func (r *PostgresRepository) Insert(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, dialog_id, file_name, file_size, storage_key, content_type, device_label, uploaded, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.DialogID, file.FileName, file.FileSize, file.StorageKey,
		file.ContentType, file.DeviceLabel, file.Uploaded, file.UploadedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.File, error) {
	query := `
		SELECT id, dialog_id, file_name, file_size, storage_key, content_type, device_label, uploaded, uploaded_at
		FROM files WHERE id = $1
	`
	var f models.File
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.DialogID, &f.FileName, &f.FileSize, &f.StorageKey,
		&f.ContentType, &f.DeviceLabel, &f.Uploaded, &f.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return &f, nil
}

func (r *PostgresRepository) ListByDialog(ctx context.Context, dialogID string) ([]*models.File, error) {
	query := `
		SELECT id, dialog_id, file_name, file_size, storage_key, content_type, device_label, uploaded, uploaded_at
		FROM files WHERE dialog_id = $1 AND uploaded ORDER BY uploaded_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, dialogID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		var f models.File
		if err := rows.Scan(
			&f.ID, &f.DialogID, &f.FileName, &f.FileSize, &f.StorageKey,
			&f.ContentType, &f.DeviceLabel, &f.Uploaded, &f.UploadedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE files SET uploaded = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
