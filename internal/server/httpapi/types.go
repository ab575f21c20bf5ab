package httpapi

import (
	"time"

	"github.com/allbox-app/allbox/internal/server/models"
	"github.com/allbox-app/allbox/internal/server/services"
)

// Wire DTOs. Field names follow the snake_case convention of the API.

type CreateDialogRequest struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	DeviceID     string `json:"device_id"`
}

type EnterDialogRequest struct {
	PasswordHash string `json:"password_hash"`
	DeviceID     string `json:"device_id"`
}

type DialogResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	DeviceLabel    string    `json:"device_label"`
	AccessToken    string    `json:"access_token"`
}

type RenameDialogRequest struct {
	Name string `json:"name"`
}

type DeviceResponse struct {
	DeviceID    string    `json:"device_id"`
	DeviceLabel string    `json:"device_label"`
	JoinedAt    time.Time `json:"joined_at"`
}

type RegisterUploadRequest struct {
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
	DeviceLabel string `json:"device_label"`
}

type UploadGrantResponse struct {
	FileID    string `json:"file_id"`
	UploadURL string `json:"upload_url"`
}

type FileResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	DeviceLabel string    `json:"device_label"`
	UploadedAt  time.Time `json:"uploaded_at"`
	DownloadURL string    `json:"download_url,omitempty"`
}

type SendMessageRequest struct {
	Kind        string `json:"kind"`
	Body        string `json:"body"`
	DeviceLabel string `json:"device_label"`
}

type MessageResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Body        string    `json:"body,omitempty"`
	DeviceLabel string    `json:"device_label"`
	CreatedAt   time.Time `json:"created_at"`
	DownloadURL string    `json:"download_url,omitempty"`
	UploadURL   string    `json:"upload_url,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func dialogResponse(d *models.Dialog, deviceLabel, token string) *DialogResponse {
	return &DialogResponse{
		ID:             d.ID,
		Name:           d.Name,
		CreatedAt:      d.CreatedAt,
		LastActivityAt: d.LastActivityAt,
		DeviceLabel:    deviceLabel,
		AccessToken:    token,
	}
}

func fileResponse(f *models.File, downloadURL string) *FileResponse {
	return &FileResponse{
		ID:          f.ID,
		FileName:    f.FileName,
		FileSize:    f.FileSize,
		ContentType: f.ContentType,
		DeviceLabel: f.DeviceLabel,
		UploadedAt:  f.UploadedAt,
		DownloadURL: downloadURL,
	}
}

func fileResponses(views []*services.FileView) []*FileResponse {
	result := make([]*FileResponse, 0, len(views))
	for _, v := range views {
		result = append(result, fileResponse(v.File, v.DownloadURL))
	}
	return result
}

func messageResponse(m *models.Message, downloadURL string) *MessageResponse {
	return &MessageResponse{
		ID:          m.ID,
		Kind:        m.Kind,
		Body:        m.Body,
		DeviceLabel: m.DeviceLabel,
		CreatedAt:   m.CreatedAt,
		DownloadURL: downloadURL,
	}
}

func messageResponses(views []*services.MessageView) []*MessageResponse {
	result := make([]*MessageResponse, 0, len(views))
	for _, v := range views {
		result = append(result, messageResponse(v.Message, v.DownloadURL))
	}
	return result
}
