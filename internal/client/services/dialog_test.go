package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/allbox-app/allbox/internal/client/api"
	"github.com/allbox-app/allbox/internal/client/devicestate"
	"github.com/allbox-app/allbox/internal/client/repositories/kv"
	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/i18n"
	"github.com/allbox-app/allbox/internal/passcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *devicestate.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	return devicestate.NewStore(kv.NewSQLiteRepository(db))
}

func TestDialogService_Create(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	var gotHash string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/dialogs", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotHash = req["password_hash"]
		require.NotEmpty(t, req["name"])
		require.NotEmpty(t, req["device_id"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&api.Dialog{
			ID: "d1", Name: req["name"], DeviceLabel: "Device 1",
			CreatedAt: now, LastActivityAt: now, AccessToken: "tok",
		})
	}))
	defer srv.Close()

	store := setupStore(t)
	s := NewDialogService(api.NewClient(srv.URL), store)
	ctx := context.Background()

	dialog, password, err := s.Create(ctx, i18n.LangEN)
	require.NoError(t, err)
	require.Len(t, password, 4)
	assert.Equal(t, passcode.Hash(password), gotHash)

	// membership and password cache recorded locally
	assert.True(t, store.HasAccess(ctx, dialog.ID))
	assert.Equal(t, "Device 1", store.DeviceLabelFor(ctx, dialog.ID))
	assert.Equal(t, password, store.CachedPasswordFor(ctx, dialog.ID))
}

func TestDialogService_EnterWrongPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "wrong password"})
	}))
	defer srv.Close()

	store := setupStore(t)
	s := NewDialogService(api.NewClient(srv.URL), store)

	_, err := s.Enter(context.Background(), "0000")
	require.ErrorIs(t, err, common.ErrorWrongPassword)
	assert.Empty(t, store.ListActiveDialogs(context.Background()))
}

func TestDialogService_EnterRecordsMembership(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/dialogs/enter", r.URL.Path)
		_ = json.NewEncoder(w).Encode(&api.Dialog{
			ID: "d1", Name: "Swift Send", DeviceLabel: "Device 2",
			CreatedAt: now, LastActivityAt: now, AccessToken: "tok",
		})
	}))
	defer srv.Close()

	store := setupStore(t)
	s := NewDialogService(api.NewClient(srv.URL), store)
	ctx := context.Background()

	dialog, err := s.Enter(ctx, "1234")
	require.NoError(t, err)
	assert.Equal(t, "d1", dialog.ID)
	assert.Equal(t, "Swift Send", store.DialogName(ctx, "d1"))
	assert.Equal(t, "1234", store.CachedPasswordFor(ctx, "d1"))
}

func TestDialogService_RenameUpdatesLocalCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.UpsertDialog(ctx, "d1", "Device 1", "Old", time.Time{}))

	c := api.NewClient(srv.URL)
	c.SetToken("tok")
	s := NewDialogService(c, store)

	require.NoError(t, s.Rename(ctx, "d1", "New"))
	assert.Equal(t, "New", store.DialogName(ctx, "d1"))
}

func TestDialogService_WritePasswordReminder(t *testing.T) {
	store := setupStore(t)
	s := NewDialogService(api.NewClient("http://unused"), store)
	ctx := context.Background()

	require.NoError(t, store.UpsertDialog(ctx, "d1", "Device 1", "Swift Send", time.Time{}))
	require.NoError(t, store.CachePasswordFor(ctx, "d1", "1234"))

	dir := t.TempDir()
	path, err := s.WritePasswordReminder(ctx, "d1", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Swift Send")
	assert.Contains(t, string(content), "1234")

	_, err = s.WritePasswordReminder(ctx, "unknown", dir)
	require.ErrorIs(t, err, ErrNoCachedPassword)
}
