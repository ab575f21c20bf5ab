package models

import "time"

// Device is one (dialog, device) membership. DeviceLabel is the name this
// device is known by inside the dialog ("Device 1", "Device 2", ...); it is
// assigned at join time and stays stable afterwards.
type Device struct {
	DialogID    string
	DeviceID    string
	DeviceLabel string
	JoinedAt    time.Time
}
