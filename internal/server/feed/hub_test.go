package feed

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/allbox-app/allbox/internal/logging"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	h := NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h, cancel
}

func subscribe(h *Hub, dialogID string) *Client {
	c := &Client{dialogID: dialogID, send: make(chan Event, 16), hub: h}
	h.register <- c
	return c
}

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case ev := <-c.send:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_RoutesByDialog(t *testing.T) {
	h, _ := newTestHub(t)

	a := subscribe(h, "dlg-a")
	b := subscribe(h, "dlg-b")

	h.Publish(Event{Table: TableFiles, Action: ActionInsert, DialogID: "dlg-a"})

	ev := recvEvent(t, a)
	require.Equal(t, TableFiles, ev.Table)
	require.Equal(t, "dlg-a", ev.DialogID)

	select {
	case ev := <-b.send:
		t.Fatalf("subscriber of another dialog received %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_FansOutToAllDialogSubscribers(t *testing.T) {
	h, _ := newTestHub(t)

	a1 := subscribe(h, "dlg-a")
	a2 := subscribe(h, "dlg-a")

	h.Publish(Event{Table: TableMessages, Action: ActionInsert, DialogID: "dlg-a"})

	require.Equal(t, TableMessages, recvEvent(t, a1).Table)
	require.Equal(t, TableMessages, recvEvent(t, a2).Table)
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	h, _ := newTestHub(t)

	c := subscribe(h, "dlg-a")
	h.unregister <- c

	// send channel is closed by the hub
	_, open := <-c.send
	require.False(t, open)
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	h, cancel := newTestHub(t)

	c := subscribe(h, "dlg-a")
	cancel()

	_, open := <-c.send
	require.False(t, open)
}
