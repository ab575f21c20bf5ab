package api

import "time"

// Wire types mirroring the server's JSON responses.

type Dialog struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	DeviceLabel    string    `json:"device_label"`
	AccessToken    string    `json:"access_token"`
}

type Device struct {
	DeviceID    string    `json:"device_id"`
	DeviceLabel string    `json:"device_label"`
	JoinedAt    time.Time `json:"joined_at"`
}

type UploadGrant struct {
	FileID    string `json:"file_id"`
	UploadURL string `json:"upload_url"`
}

type File struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	DeviceLabel string    `json:"device_label"`
	UploadedAt  time.Time `json:"uploaded_at"`
	DownloadURL string    `json:"download_url,omitempty"`
}

type Message struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Body        string    `json:"body,omitempty"`
	DeviceLabel string    `json:"device_label"`
	CreatedAt   time.Time `json:"created_at"`
	DownloadURL string    `json:"download_url,omitempty"`
	UploadURL   string    `json:"upload_url,omitempty"`
}

type createDialogRequest struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	DeviceID     string `json:"device_id"`
}

type enterDialogRequest struct {
	PasswordHash string `json:"password_hash"`
	DeviceID     string `json:"device_id"`
}

type renameDialogRequest struct {
	Name string `json:"name"`
}

type registerUploadRequest struct {
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
	DeviceLabel string `json:"device_label"`
}

type sendMessageRequest struct {
	Kind        string `json:"kind"`
	Body        string `json:"body"`
	DeviceLabel string `json:"device_label"`
}

type errorResponse struct {
	Error string `json:"error"`
}
