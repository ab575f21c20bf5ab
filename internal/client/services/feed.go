package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allbox-app/allbox/internal/client/api"
	"github.com/allbox-app/allbox/internal/client/devicestate"
)

// Reconciler lands realtime change notifications in the local device state.
// The store is a cache, so every event is applied best-effort: events for
// unknown dialogs or with unreadable payloads are ignored.
type Reconciler struct {
	store *devicestate.Store
	now   func() time.Time
}

func NewReconciler(store *devicestate.Store) *Reconciler {
	return &Reconciler{store: store, now: time.Now}
}

// Apply folds one feed event into the local state.
func (r *Reconciler) Apply(ctx context.Context, event api.FeedEvent) error {
	switch {
	case event.Table == "dialogs" && event.Action == "update":
		var payload struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.Name == "" {
			return nil
		}
		return r.store.UpdateDialogName(ctx, event.DialogID, payload.Name)

	case (event.Table == "files" || event.Table == "messages") && event.Action == "insert":
		return r.store.UpdateDialogActivity(ctx, event.DialogID, r.now())
	}

	return nil
}

// Run consumes feed events until the channel closes or ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context, events <-chan api.FeedEvent) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			_ = r.Apply(ctx, event)
		case <-ctx.Done():
			return
		}
	}
}
