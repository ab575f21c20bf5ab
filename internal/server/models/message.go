package models

import "time"

// Message kinds.
const (
	MessageKindText  = "text"
	MessageKindVoice = "voice"
)

// Message is a dialog message. Text messages carry Body; voice notes carry
// a StorageKey referencing the recorded payload in object storage.
type Message struct {
	ID          string
	DialogID    string
	DeviceLabel string
	Kind        string
	Body        string
	StorageKey  string
	CreatedAt   time.Time
}
