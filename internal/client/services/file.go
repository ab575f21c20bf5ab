package services

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/allbox-app/allbox/internal/client/api"
	"github.com/allbox-app/allbox/internal/client/devicestate"
	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/netx"
)

type FileService struct {
	api   *api.Client
	store *devicestate.Store
}

func NewFileService(apiClient *api.Client, store *devicestate.Store) *FileService {
	return &FileService{api: apiClient, store: store}
}

// Upload pushes a local file into the dialog: register, PUT to the presigned
// URL, confirm. The local activity stamp is refreshed on success.
func (s *FileService) Upload(ctx context.Context, dialogID, path string) (*api.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if int64(len(data)) > common.MaxFileSize {
		return nil, common.ErrFileTooLarge
	}

	fileName := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	deviceLabel := s.store.DeviceLabelFor(ctx, dialogID)

	grant, err := s.api.RegisterUpload(ctx, dialogID, fileName, int64(len(data)), contentType, deviceLabel)
	if err != nil {
		return nil, err
	}

	if err := netx.UploadToPresignedURL(ctx, grant.UploadURL, data, contentType); err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	file, err := s.api.CompleteUpload(ctx, dialogID, grant.FileID)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateDialogActivity(ctx, dialogID, time.Now()); err != nil {
		return nil, err
	}

	return file, nil
}

// List returns the dialog's uploaded files, newest first.
func (s *FileService) List(ctx context.Context, dialogID string) ([]*api.File, error) {
	return s.api.ListFiles(ctx, dialogID)
}

// Download fetches a file into destDir and returns the written path.
func (s *FileService) Download(ctx context.Context, file *api.File, destDir string) (string, error) {
	if file.DownloadURL == "" {
		return "", fmt.Errorf("file %s has no download URL", file.ID)
	}

	data, err := netx.DownloadFromPresignedURL(ctx, file.DownloadURL)
	if err != nil {
		return "", err
	}

	path := filepath.Join(destDir, file.FileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Delete removes a file from the dialog.
func (s *FileService) Delete(ctx context.Context, dialogID, fileID string) error {
	return s.api.DeleteFile(ctx, dialogID, fileID)
}
