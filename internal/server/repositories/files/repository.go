package files

import (
	"context"

	"github.com/allbox-app/allbox/internal/server/models"
)

// Repository persists shared file rows. Payload bytes live in object
// storage; rows only carry metadata and the storage key.
type Repository interface {
	Insert(ctx context.Context, file *models.File) error
	Get(ctx context.Context, id string) (*models.File, error)
	// ListByDialog returns confirmed uploads, newest first.
	ListByDialog(ctx context.Context, dialogID string) ([]*models.File, error)
	MarkUploaded(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
