package devices

import (
	"context"

	"github.com/allbox-app/allbox/internal/server/models"
)

// Repository persists (dialog, device) memberships.
type Repository interface {
	Insert(ctx context.Context, device *models.Device) error
	// Get recovers a previously assigned device label.
	// Returns common.ErrorNotFound when the device never joined the dialog.
	Get(ctx context.Context, dialogID, deviceID string) (*models.Device, error)
	ListByDialog(ctx context.Context, dialogID string) ([]*models.Device, error)
	CountByDialog(ctx context.Context, dialogID string) (int, error)
}
