// Package devicestate is the local, per-device record of identity and dialog
// memberships. It tracks which dialogs this device has joined, an archived
// subset hidden from the home list, per-dialog cached passwords, and the
// device name, theme and language preferences.
//
// The store is a cache of what this device believes; the server is ground
// truth. Reads never fail: malformed or missing local state falls back to
// empty defaults. Writes report storage errors to the caller.
package devicestate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allbox-app/allbox/internal/client/repositories/kv"
	"github.com/allbox-app/allbox/internal/i18n"
	"github.com/google/uuid"
)

// Storage keys. Each key holds one independent record.
const (
	keyDeviceID   = "allbox_device_id"
	keyDeviceName = "allbox_device_name"
	keyTheme      = "allbox_theme"
	keyLanguage   = "allbox_language"
	keyDialogs    = "allbox_dialogs"
	keyArchived   = "allbox_archived_dialogs"
	keyPasswords  = "allbox_dialog_passwords"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// StoredDialog is one dialog membership as this device remembers it.
// DeviceLabel is the label this device carries inside that dialog; it is
// distinct from the global device name, which overrides it at display time
// without rewriting history.
type StoredDialog struct {
	DialogID       string    `json:"dialog_id"`
	DeviceLabel    string    `json:"device_label"`
	Name           string    `json:"name,omitempty"`
	AccessedAt     time.Time `json:"accessed_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

type Store struct {
	kv  kv.Repository
	now func() time.Time
}

func NewStore(repo kv.Repository) *Store {
	return &Store{kv: repo, now: time.Now}
}

// GetOrCreateDeviceID returns the persistent device identifier, generating
// and storing one on first call.
func (s *Store) GetOrCreateDeviceID(ctx context.Context) (string, error) {
	if id := s.readString(ctx, keyDeviceID); id != "" {
		return id, nil
	}

	id := uuid.NewString()
	if err := s.kv.Set(ctx, keyDeviceID, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

// DeviceName returns the user-chosen device name, empty if unset.
func (s *Store) DeviceName(ctx context.Context) string {
	return s.readString(ctx, keyDeviceName)
}

func (s *Store) SetDeviceName(ctx context.Context, name string) error {
	return s.kv.Set(ctx, keyDeviceName, []byte(name))
}

// Theme returns the stored theme preference, defaulting to dark. Applying
// the theme visually is the caller's concern.
func (s *Store) Theme(ctx context.Context) Theme {
	if Theme(s.readString(ctx, keyTheme)) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

func (s *Store) SetTheme(ctx context.Context, theme Theme) error {
	return s.kv.Set(ctx, keyTheme, []byte(theme))
}

// Language returns the stored language, falling back to locale detection
// when unset.
func (s *Store) Language(ctx context.Context) i18n.Language {
	if raw := s.readString(ctx, keyLanguage); raw != "" {
		return i18n.Parse(raw)
	}
	return i18n.Detect()
}

func (s *Store) SetLanguage(ctx context.Context, lang i18n.Language) error {
	return s.kv.Set(ctx, keyLanguage, []byte(lang))
}

// ListActiveDialogs returns the active memberships, most recently upserted
// first.
func (s *Store) ListActiveDialogs(ctx context.Context) []*StoredDialog {
	return s.readDialogs(ctx, keyDialogs)
}

// ListArchivedDialogs returns the memberships hidden from the home list.
func (s *Store) ListArchivedDialogs(ctx context.Context) []*StoredDialog {
	return s.readDialogs(ctx, keyArchived)
}

// UpsertDialog inserts or merges an active membership. An empty name or zero
// lastActivityAt means "not supplied" and preserves the stored value. The
// dialog is removed from the archived list first and then moved to the front
// of the active list, so a failed write can never leave it in both
// collections; joining always reactivates.
func (s *Store) UpsertDialog(ctx context.Context, dialogID, deviceLabel, name string, lastActivityAt time.Time) error {
	if err := s.RemoveFromArchive(ctx, dialogID); err != nil {
		return err
	}

	dialogs := s.readDialogs(ctx, keyDialogs)

	entry := &StoredDialog{DialogID: dialogID}
	rest := make([]*StoredDialog, 0, len(dialogs))
	for _, d := range dialogs {
		if d.DialogID == dialogID {
			entry = d
		} else {
			rest = append(rest, d)
		}
	}

	if deviceLabel != "" {
		entry.DeviceLabel = deviceLabel
	}
	if name != "" {
		entry.Name = name
	}
	if !lastActivityAt.IsZero() {
		entry.LastActivityAt = lastActivityAt
	}
	entry.AccessedAt = s.now()

	return s.writeDialogs(ctx, keyDialogs, append([]*StoredDialog{entry}, rest...))
}

// HasAccess reports whether dialogID is an active membership.
func (s *Store) HasAccess(ctx context.Context, dialogID string) bool {
	return s.findDialog(ctx, keyDialogs, dialogID) != nil
}

// DeviceLabelFor returns this device's label inside the dialog, empty when
// the dialog is unknown.
func (s *Store) DeviceLabelFor(ctx context.Context, dialogID string) string {
	if d := s.findDialog(ctx, keyDialogs, dialogID); d != nil {
		return d.DeviceLabel
	}
	return ""
}

// DialogName returns the cached dialog name, empty when unknown.
func (s *Store) DialogName(ctx context.Context, dialogID string) string {
	if d := s.findDialog(ctx, keyDialogs, dialogID); d != nil {
		return d.Name
	}
	return ""
}

// UpdateDialogName rewrites the cached name of an active membership. It is a
// no-op when the dialog is absent; archived entries are not touched.
func (s *Store) UpdateDialogName(ctx context.Context, dialogID, name string) error {
	return s.mutateDialog(ctx, keyDialogs, dialogID, func(d *StoredDialog) {
		d.Name = name
	})
}

// UpdateDialogActivity stamps lastActivityAt on an active membership, no-op
// when absent.
func (s *Store) UpdateDialogActivity(ctx context.Context, dialogID string, at time.Time) error {
	return s.mutateDialog(ctx, keyDialogs, dialogID, func(d *StoredDialog) {
		d.LastActivityAt = at
	})
}

// ArchiveDialog moves an active membership to the archived list. No-op when
// dialogID is not active.
func (s *Store) ArchiveDialog(ctx context.Context, dialogID string) error {
	dialogs := s.readDialogs(ctx, keyDialogs)

	var entry *StoredDialog
	rest := make([]*StoredDialog, 0, len(dialogs))
	for _, d := range dialogs {
		if d.DialogID == dialogID {
			entry = d
		} else {
			rest = append(rest, d)
		}
	}
	if entry == nil {
		return nil
	}

	if err := s.writeDialogs(ctx, keyDialogs, rest); err != nil {
		return err
	}

	archived := s.readDialogs(ctx, keyArchived)
	return s.writeDialogs(ctx, keyArchived, append([]*StoredDialog{entry}, archived...))
}

// RestoreDialog moves an archived membership back to the active list through
// the upsert merge, preserving its label, name and activity stamp. It returns
// the restored record, or nil when dialogID is not archived.
func (s *Store) RestoreDialog(ctx context.Context, dialogID string) (*StoredDialog, error) {
	entry := s.findDialog(ctx, keyArchived, dialogID)
	if entry == nil {
		return nil, nil
	}

	if err := s.UpsertDialog(ctx, dialogID, entry.DeviceLabel, entry.Name, entry.LastActivityAt); err != nil {
		return nil, err
	}

	return s.findDialog(ctx, keyDialogs, dialogID), nil
}

// RemoveFromArchive permanently deletes an archived membership.
func (s *Store) RemoveFromArchive(ctx context.Context, dialogID string) error {
	archived := s.readDialogs(ctx, keyArchived)

	rest := make([]*StoredDialog, 0, len(archived))
	for _, d := range archived {
		if d.DialogID != dialogID {
			rest = append(rest, d)
		}
	}
	if len(rest) == len(archived) {
		return nil
	}

	return s.writeDialogs(ctx, keyArchived, rest)
}

// RemoveActiveDialog permanently deletes an active membership without
// archiving it first. This is the "leave completely" path.
func (s *Store) RemoveActiveDialog(ctx context.Context, dialogID string) error {
	dialogs := s.readDialogs(ctx, keyDialogs)

	rest := make([]*StoredDialog, 0, len(dialogs))
	for _, d := range dialogs {
		if d.DialogID != dialogID {
			rest = append(rest, d)
		}
	}
	if len(rest) == len(dialogs) {
		return nil
	}

	return s.writeDialogs(ctx, keyDialogs, rest)
}

// CachePasswordFor remembers the plaintext dialog password locally so the
// device can re-download a reminder file later. Best effort only; the server
// never stores plaintext.
func (s *Store) CachePasswordFor(ctx context.Context, dialogID, password string) error {
	passwords := s.readPasswords(ctx)
	passwords[dialogID] = password

	data, err := json.Marshal(passwords)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyPasswords, data)
}

// CachedPasswordFor returns the cached password, empty when none was cached.
func (s *Store) CachedPasswordFor(ctx context.Context, dialogID string) string {
	return s.readPasswords(ctx)[dialogID]
}

func (s *Store) readPasswords(ctx context.Context) map[string]string {
	passwords := make(map[string]string)

	data, err := s.kv.Get(ctx, keyPasswords)
	if err != nil || len(data) == 0 {
		return passwords
	}
	if err := json.Unmarshal(data, &passwords); err != nil {
		return make(map[string]string)
	}
	return passwords
}

func (s *Store) readString(ctx context.Context, key string) string {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *Store) readDialogs(ctx context.Context, key string) []*StoredDialog {
	data, err := s.kv.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return nil
	}

	var dialogs []*StoredDialog
	if err := json.Unmarshal(data, &dialogs); err != nil {
		return nil
	}
	return dialogs
}

func (s *Store) writeDialogs(ctx context.Context, key string, dialogs []*StoredDialog) error {
	data, err := json.Marshal(dialogs)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, data)
}

func (s *Store) findDialog(ctx context.Context, key, dialogID string) *StoredDialog {
	for _, d := range s.readDialogs(ctx, key) {
		if d.DialogID == dialogID {
			return d
		}
	}
	return nil
}

func (s *Store) mutateDialog(ctx context.Context, key, dialogID string, mutate func(*StoredDialog)) error {
	dialogs := s.readDialogs(ctx, key)

	for _, d := range dialogs {
		if d.DialogID == dialogID {
			mutate(d)
			return s.writeDialogs(ctx, key, dialogs)
		}
	}
	return nil
}
