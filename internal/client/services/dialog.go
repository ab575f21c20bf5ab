// Package services orchestrates the client workflows: dialog lifecycle,
// file transfer and messaging, combining the backend API with the local
// device state.
package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/allbox-app/allbox/internal/client/api"
	"github.com/allbox-app/allbox/internal/client/devicestate"
	"github.com/allbox-app/allbox/internal/dialognames"
	"github.com/allbox-app/allbox/internal/i18n"
	"github.com/allbox-app/allbox/internal/passcode"
)

// ErrNoCachedPassword is returned when a password reminder is requested for
// a dialog whose password was never cached on this device.
var ErrNoCachedPassword = fmt.Errorf("no cached password for this dialog")

type DialogService struct {
	api   *api.Client
	store *devicestate.Store
}

func NewDialogService(apiClient *api.Client, store *devicestate.Store) *DialogService {
	return &DialogService{api: apiClient, store: store}
}

// Create makes a new dialog with a random name and a 4-digit password,
// registers this device as its first member and records the membership
// locally. The plaintext password is returned once and cached for the
// reminder file.
func (s *DialogService) Create(ctx context.Context, lang i18n.Language) (*api.Dialog, string, error) {
	deviceID, err := s.store.GetOrCreateDeviceID(ctx)
	if err != nil {
		return nil, "", err
	}

	password, err := passcode.Generate(passcode.MinDigits)
	if err != nil {
		return nil, "", err
	}

	dialog, err := s.api.CreateDialog(ctx, dialognames.Random(lang), passcode.Hash(password), deviceID)
	if err != nil {
		return nil, "", err
	}

	if err := s.store.UpsertDialog(ctx, dialog.ID, dialog.DeviceLabel, dialog.Name, dialog.LastActivityAt); err != nil {
		return nil, "", err
	}
	if err := s.store.CachePasswordFor(ctx, dialog.ID, password); err != nil {
		return nil, "", err
	}

	return dialog, password, nil
}

// Enter joins an existing dialog by password and records the membership
// locally. The password is cached on success.
func (s *DialogService) Enter(ctx context.Context, password string) (*api.Dialog, error) {
	deviceID, err := s.store.GetOrCreateDeviceID(ctx)
	if err != nil {
		return nil, err
	}

	dialog, err := s.api.EnterDialog(ctx, passcode.Hash(password), deviceID)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpsertDialog(ctx, dialog.ID, dialog.DeviceLabel, dialog.Name, dialog.LastActivityAt); err != nil {
		return nil, err
	}
	if err := s.store.CachePasswordFor(ctx, dialog.ID, password); err != nil {
		return nil, err
	}

	return dialog, nil
}

// Refresh pulls current dialog metadata from the server and reconciles the
// local name and activity stamp. Best effort: callers may ignore the error
// and keep working from the local cache offline.
func (s *DialogService) Refresh(ctx context.Context, dialogID string) error {
	dialog, err := s.api.GetDialog(ctx, dialogID)
	if err != nil {
		return err
	}

	if dialog.Name != "" {
		if err := s.store.UpdateDialogName(ctx, dialogID, dialog.Name); err != nil {
			return err
		}
	}
	return s.store.UpdateDialogActivity(ctx, dialogID, dialog.LastActivityAt)
}

// Rename updates the dialog name on the server and in the local cache.
func (s *DialogService) Rename(ctx context.Context, dialogID, name string) error {
	if err := s.api.RenameDialog(ctx, dialogID, name); err != nil {
		return err
	}
	return s.store.UpdateDialogName(ctx, dialogID, name)
}

// Devices lists the dialog's member devices.
func (s *DialogService) Devices(ctx context.Context, dialogID string) ([]*api.Device, error) {
	return s.api.ListDevices(ctx, dialogID)
}

// Archive hides the dialog from the home list without losing access.
func (s *DialogService) Archive(ctx context.Context, dialogID string) error {
	return s.store.ArchiveDialog(ctx, dialogID)
}

// Restore moves an archived dialog back to the home list.
func (s *DialogService) Restore(ctx context.Context, dialogID string) (*devicestate.StoredDialog, error) {
	return s.store.RestoreDialog(ctx, dialogID)
}

// Leave forgets the dialog completely, bypassing the archive.
func (s *DialogService) Leave(ctx context.Context, dialogID string) error {
	return s.store.RemoveActiveDialog(ctx, dialogID)
}

// WritePasswordReminder writes a plaintext reminder file for a dialog whose
// password was cached at create/enter time.
func (s *DialogService) WritePasswordReminder(ctx context.Context, dialogID, dir string) (string, error) {
	password := s.store.CachedPasswordFor(ctx, dialogID)
	if password == "" {
		return "", ErrNoCachedPassword
	}

	name := s.store.DialogName(ctx, dialogID)
	if name == "" {
		name = dialogID
	}

	path := filepath.Join(dir, fmt.Sprintf("allbox-password-%s.txt", dialogID))
	content := fmt.Sprintf("AllBox dialog: %s\nPassword: %s\nSaved: %s\n",
		name, password, time.Now().Format(time.RFC1123))

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", err
	}
	return path, nil
}
