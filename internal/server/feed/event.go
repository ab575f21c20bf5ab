// Package feed implements the per-dialog realtime change feed: a websocket
// hub that fans row-level change notifications out to every device currently
// watching a dialog.
package feed

// Tables that emit change notifications.
const (
	TableDialogs  = "dialogs"
	TableDevices  = "devices"
	TableFiles    = "files"
	TableMessages = "messages"
)

// Actions carried by change notifications.
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event is one row-level change notification. Payload is table-specific and
// already JSON-shaped by the publisher.
type Event struct {
	Table    string `json:"table"`
	Action   string `json:"action"`
	DialogID string `json:"dialog_id"`
	Payload  any    `json:"payload,omitempty"`
}
