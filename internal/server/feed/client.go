package feed

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Dialog-scoped auth happens before the upgrade; origin is not
		// meaningful for non-browser clients.
		return true
	},
}

// Client is one websocket subscriber watching a single dialog.
type Client struct {
	dialogID string
	conn     *websocket.Conn
	send     chan Event
	hub      *Hub
}

// ServeWS upgrades the request and starts the read/write pumps for a
// subscriber of dialogID. The caller must have authorized access already.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, dialogID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		dialogID: dialogID,
		conn:     conn,
		send:     make(chan Event, 16),
		hub:      h,
	}

	h.register <- client

	go client.readPump()
	go client.writePump()

	return nil
}

// readPump drains the connection so close frames are processed; the feed is
// one-directional and inbound payloads are discarded.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
}
