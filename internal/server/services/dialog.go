package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/dbx"
	"github.com/allbox-app/allbox/internal/server/models"
	"github.com/allbox-app/allbox/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// DialogService owns the dialog lifecycle: creation, password-equality entry,
// device label assignment, renames and activity stamps.
type DialogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDialogService(db *sql.DB, repomanager repomanager.RepositoryManager) *DialogService {
	return &DialogService{db: db, repomanager: repomanager}
}

// Create stores a new dialog with the client-computed password hash and
// registers the creating device as "Device 1".
func (s *DialogService) Create(ctx context.Context, name, passwordHash, deviceID string) (*models.Dialog, *models.Device, error) {
	now := time.Now().UTC()

	dialog := &models.Dialog{
		ID:             uuid.NewString(),
		Name:           name,
		PasswordHash:   passwordHash,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	device := &models.Device{
		DialogID:    dialog.ID,
		DeviceID:    deviceID,
		DeviceLabel: "Device 1",
		JoinedAt:    now,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Dialogs(tx).Create(ctx, dialog); err != nil {
			return err
		}
		return s.repomanager.Devices(tx).Insert(ctx, device)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error creating dialog: %w", err)
	}

	return dialog, device, nil
}

// Enter looks a dialog up by flat password-hash equality and finds or
// creates the membership for deviceID. A device that joined before keeps
// its historical label; a new device gets the next "Device N".
func (s *DialogService) Enter(ctx context.Context, passwordHash, deviceID string) (*models.Dialog, *models.Device, error) {
	dialog, err := s.repomanager.Dialogs(s.db).GetByPasswordHash(ctx, passwordHash)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil, common.ErrorWrongPassword
	}
	if err != nil {
		return nil, nil, err
	}

	deviceRepo := s.repomanager.Devices(s.db)

	device, err := deviceRepo.Get(ctx, dialog.ID, deviceID)
	if err == nil {
		return dialog, device, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, nil, err
	}

	count, err := deviceRepo.CountByDialog(ctx, dialog.ID)
	if err != nil {
		return nil, nil, err
	}

	device = &models.Device{
		DialogID:    dialog.ID,
		DeviceID:    deviceID,
		DeviceLabel: fmt.Sprintf("Device %d", count+1),
		JoinedAt:    time.Now().UTC(),
	}
	if err := deviceRepo.Insert(ctx, device); err != nil {
		return nil, nil, err
	}

	return dialog, device, nil
}

// Get returns a dialog by ID.
func (s *DialogService) Get(ctx context.Context, dialogID string) (*models.Dialog, error) {
	return s.repomanager.Dialogs(s.db).GetByID(ctx, dialogID)
}

// Rename updates the dialog display name.
func (s *DialogService) Rename(ctx context.Context, dialogID, name string) error {
	return s.repomanager.Dialogs(s.db).UpdateName(ctx, dialogID, name)
}

// Devices lists the memberships of a dialog, oldest join first.
func (s *DialogService) Devices(ctx context.Context, dialogID string) ([]*models.Device, error) {
	return s.repomanager.Devices(s.db).ListByDialog(ctx, dialogID)
}
