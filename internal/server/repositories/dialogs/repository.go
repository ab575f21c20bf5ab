package dialogs

import (
	"context"
	"time"

	"github.com/allbox-app/allbox/internal/server/models"
)

// Repository persists dialog rows.
type Repository interface {
	Create(ctx context.Context, dialog *models.Dialog) error
	GetByID(ctx context.Context, id string) (*models.Dialog, error)
	// GetByPasswordHash performs the flat equality lookup used to enter a
	// dialog. Returns common.ErrorNotFound when no dialog matches.
	GetByPasswordHash(ctx context.Context, hash string) (*models.Dialog, error)
	UpdateName(ctx context.Context, id string, name string) error
	TouchActivity(ctx context.Context, id string, at time.Time) error
}
