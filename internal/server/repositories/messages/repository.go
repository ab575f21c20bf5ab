package messages

import (
	"context"

	"github.com/allbox-app/allbox/internal/server/models"
)

// Repository persists dialog messages (text and voice notes).
type Repository interface {
	Insert(ctx context.Context, message *models.Message) error
	Get(ctx context.Context, id string) (*models.Message, error)
	// ListByDialog returns messages oldest first.
	ListByDialog(ctx context.Context, dialogID string) ([]*models.Message, error)
	Delete(ctx context.Context, id string) error
}
