package feed

import (
	"context"

	"github.com/allbox-app/allbox/internal/logging"
)

// Hub routes published events to subscribed clients. All bookkeeping happens
// on the Run goroutine; register/unregister/broadcast are channel sends, so
// no mutex is needed.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	clients    map[*Client]struct{}
	logger     logging.Logger
}

func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		clients:    make(map[*Client]struct{}),
		logger:     logger.With("module", "feed"),
	}
}

// Run processes hub traffic until ctx is cancelled. On shutdown every client
// send channel is closed, which terminates the write pumps.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Debug(ctx, "client subscribed", "dialog_id", client.dialogID, "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				close(client.send)
				delete(h.clients, client)
				h.logger.Debug(ctx, "client unsubscribed", "dialog_id", client.dialogID, "total", len(h.clients))
			}

		case event := <-h.broadcast:
			for client := range h.clients {
				if client.dialogID != event.DialogID {
					continue
				}
				select {
				case client.send <- event:
				default:
					// Slow consumer: drop it rather than stall the hub.
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn(ctx, "dropping slow feed client", "dialog_id", client.dialogID)
				}
			}

		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// Publish enqueues an event for fan-out. It never blocks the caller beyond
// the hub's buffer.
func (h *Hub) Publish(event Event) {
	h.broadcast <- event
}
