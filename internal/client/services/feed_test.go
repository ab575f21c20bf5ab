package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/allbox-app/allbox/internal/client/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconciler_DialogRename(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.UpsertDialog(ctx, "d1", "Device 1", "Old", time.Time{}))

	r := NewReconciler(store)
	payload, _ := json.Marshal(map[string]string{"name": "Renamed"})

	require.NoError(t, r.Apply(ctx, api.FeedEvent{
		Table: "dialogs", Action: "update", DialogID: "d1", Payload: payload,
	}))

	assert.Equal(t, "Renamed", store.DialogName(ctx, "d1"))
}

func TestReconciler_ActivityOnContent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.UpsertDialog(ctx, "d1", "Device 1", "Swift Send", time.Time{}))

	at := time.Date(2024, 7, 2, 9, 30, 0, 0, time.UTC)
	r := NewReconciler(store)
	r.now = func() time.Time { return at }

	require.NoError(t, r.Apply(ctx, api.FeedEvent{Table: "messages", Action: "insert", DialogID: "d1"}))

	dialogs := store.ListActiveDialogs(ctx)
	require.Len(t, dialogs, 1)
	assert.Equal(t, at, dialogs[0].LastActivityAt)
}

func TestReconciler_IgnoresUnknownAndMalformed(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	r := NewReconciler(store)

	// unknown dialog: a no-op, not an error
	require.NoError(t, r.Apply(ctx, api.FeedEvent{Table: "files", Action: "insert", DialogID: "ghost"}))

	// malformed payload
	require.NoError(t, r.Apply(ctx, api.FeedEvent{
		Table: "dialogs", Action: "update", DialogID: "d1", Payload: json.RawMessage("not json"),
	}))

	// irrelevant table/action combinations
	require.NoError(t, r.Apply(ctx, api.FeedEvent{Table: "devices", Action: "insert", DialogID: "d1"}))
	require.NoError(t, r.Apply(ctx, api.FeedEvent{Table: "files", Action: "delete", DialogID: "d1"}))
}

func TestReconciler_RunStopsOnClose(t *testing.T) {
	store := setupStore(t)
	r := NewReconciler(store)

	events := make(chan api.FeedEvent)
	done := make(chan struct{})
	go func() {
		r.Run(context.Background(), events)
		close(done)
	}()

	close(events)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after channel close")
	}
}
