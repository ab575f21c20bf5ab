// Package api is the HTTP client for the AllBox backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/allbox-app/allbox/internal/common"
)

// Client talks to the backend JSON API. A dialog access token, once set, is
// attached to every request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the access token for subsequent dialog-scoped requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// Ping checks server reachability.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

// CreateDialog registers a new dialog and returns it together with the
// access token and this device's label.
func (c *Client) CreateDialog(ctx context.Context, name, passwordHash, deviceID string) (*Dialog, error) {
	var dialog Dialog
	err := c.do(ctx, http.MethodPost, "/api/dialogs", &createDialogRequest{
		Name:         name,
		PasswordHash: passwordHash,
		DeviceID:     deviceID,
	}, &dialog)
	if err != nil {
		return nil, err
	}
	c.token = dialog.AccessToken
	return &dialog, nil
}

// EnterDialog joins the dialog matching passwordHash. A wrong password maps
// to common.ErrorWrongPassword.
func (c *Client) EnterDialog(ctx context.Context, passwordHash, deviceID string) (*Dialog, error) {
	var dialog Dialog
	err := c.do(ctx, http.MethodPost, "/api/dialogs/enter", &enterDialogRequest{
		PasswordHash: passwordHash,
		DeviceID:     deviceID,
	}, &dialog)
	if err != nil {
		return nil, err
	}
	c.token = dialog.AccessToken
	return &dialog, nil
}

// GetDialog refreshes dialog metadata (name, last activity). The response
// carries no token; the client keeps the one it has.
func (c *Client) GetDialog(ctx context.Context, dialogID string) (*Dialog, error) {
	var dialog Dialog
	if err := c.do(ctx, http.MethodGet, "/api/dialogs/"+dialogID, nil, &dialog); err != nil {
		return nil, err
	}
	return &dialog, nil
}

func (c *Client) RenameDialog(ctx context.Context, dialogID, name string) error {
	return c.do(ctx, http.MethodPatch, "/api/dialogs/"+dialogID, &renameDialogRequest{Name: name}, nil)
}

func (c *Client) ListDevices(ctx context.Context, dialogID string) ([]*Device, error) {
	var devices []*Device
	if err := c.do(ctx, http.MethodGet, "/api/dialogs/"+dialogID+"/devices", nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// RegisterUpload announces a pending file and returns a presigned PUT grant.
func (c *Client) RegisterUpload(ctx context.Context, dialogID, fileName string, fileSize int64, contentType, deviceLabel string) (*UploadGrant, error) {
	var grant UploadGrant
	err := c.do(ctx, http.MethodPost, "/api/dialogs/"+dialogID+"/files", &registerUploadRequest{
		FileName:    fileName,
		FileSize:    fileSize,
		ContentType: contentType,
		DeviceLabel: deviceLabel,
	}, &grant)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// CompleteUpload confirms the PUT finished and makes the file visible.
func (c *Client) CompleteUpload(ctx context.Context, dialogID, fileID string) (*File, error) {
	var file File
	if err := c.do(ctx, http.MethodPost, "/api/dialogs/"+dialogID+"/files/"+fileID+"/complete", nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (c *Client) ListFiles(ctx context.Context, dialogID string) ([]*File, error) {
	var files []*File
	if err := c.do(ctx, http.MethodGet, "/api/dialogs/"+dialogID+"/files", nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Client) DeleteFile(ctx context.Context, dialogID, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/api/dialogs/"+dialogID+"/files/"+fileID, nil, nil)
}

func (c *Client) SendText(ctx context.Context, dialogID, deviceLabel, body string) (*Message, error) {
	var message Message
	err := c.do(ctx, http.MethodPost, "/api/dialogs/"+dialogID+"/messages", &sendMessageRequest{
		Kind:        "text",
		Body:        body,
		DeviceLabel: deviceLabel,
	}, &message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// SendVoice registers a voice note; the returned message carries the
// presigned upload URL for the recording.
func (c *Client) SendVoice(ctx context.Context, dialogID, deviceLabel string) (*Message, error) {
	var message Message
	err := c.do(ctx, http.MethodPost, "/api/dialogs/"+dialogID+"/messages", &sendMessageRequest{
		Kind:        "voice",
		DeviceLabel: deviceLabel,
	}, &message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *Client) ListMessages(ctx context.Context, dialogID string) ([]*Message, error) {
	var messages []*Message
	if err := c.do(ctx, http.MethodGet, "/api/dialogs/"+dialogID+"/messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(common.AccessTokenHeaderName, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	var apiErr errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if apiErr.Error == "wrong password" {
			return common.ErrorWrongPassword
		}
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusRequestEntityTooLarge:
		return common.ErrFileTooLarge
	default:
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
	}
}
