// Package dialogs provides the PostgreSQL-backed repository for dialog rows.
package dialogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/dbx"
	"github.com/allbox-app/allbox/internal/server/models"
)

// PostgresRepository implements dialog storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, dialog *models.Dialog) error {
	query := `
		INSERT INTO dialogs (id, name, password_hash, created_at, last_activity_at)
		VALUES ($1, $2, $3, $4, $4)
	`
	_, err := r.db.ExecContext(ctx, query, dialog.ID, dialog.Name, dialog.PasswordHash, dialog.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Dialog, error) {
	query := `
		SELECT id, name, password_hash, created_at, last_activity_at FROM dialogs WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByPasswordHash(ctx context.Context, hash string) (*models.Dialog, error) {
	query := `
		SELECT id, name, password_hash, created_at, last_activity_at FROM dialogs WHERE password_hash = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, hash))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Dialog, error) {
	var d models.Dialog
	err := row.Scan(&d.ID, &d.Name, &d.PasswordHash, &d.CreatedAt, &d.LastActivityAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select dialog: %w", err)
	}
	return &d, nil
}

func (r *PostgresRepository) UpdateName(ctx context.Context, id string, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE dialogs SET name = $2 WHERE id = $1`, id, name)
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

func (r *PostgresRepository) TouchActivity(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE dialogs SET last_activity_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
