package models

import "time"

// File is a shared file row. The payload lives in object storage under
// StorageKey; Uploaded flips to true once the client confirms the PUT.
type File struct {
	ID          string
	DialogID    string
	FileName    string
	FileSize    int64
	StorageKey  string
	ContentType string
	DeviceLabel string
	Uploaded    bool
	UploadedAt  time.Time
}
