package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// FeedEvent is one change notification from the dialog feed. Payload is
// table-specific; callers decode the fields they care about.
type FeedEvent struct {
	Table    string          `json:"table"`
	Action   string          `json:"action"`
	DialogID string          `json:"dialog_id"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// SubscribeFeed opens the websocket change feed for a dialog and returns a
// channel of events. The channel closes when the connection drops or ctx is
// cancelled.
func (c *Client) SubscribeFeed(ctx context.Context, dialogID string) (<-chan FeedEvent, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/dialogs/" + dialogID + "/feed"
	u.RawQuery = url.Values{"access_token": {c.token}}.Encode()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	events := make(chan FeedEvent)

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	go func() {
		defer close(events)
		defer conn.Close()

		for {
			var event FeedEvent
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}
