package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/server/models"
	"github.com/allbox-app/allbox/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// FileView is a file row plus a short-lived download URL.
type FileView struct {
	File        *models.File
	DownloadURL string
}

// UploadGrant is what a client needs to push one file: the registered row ID
// and a presigned PUT URL.
type UploadGrant struct {
	FileID    string
	UploadURL string
}

// FileService registers uploads, lists shared files with download URLs, and
// deletes file rows together with their stored objects.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       *ObjectStore
}

func NewFileService(db *sql.DB, repomanager repomanager.RepositoryManager, store *ObjectStore) *FileService {
	return &FileService{db: db, repomanager: repomanager, store: store}
}

// RegisterUpload reserves a file row and issues a presigned PUT URL.
// The row stays invisible to List until CompleteUpload confirms the PUT.
func (s *FileService) RegisterUpload(ctx context.Context, dialogID, fileName string, fileSize int64, contentType, deviceLabel string) (*UploadGrant, error) {
	if fileSize > common.MaxFileSize {
		return nil, common.ErrFileTooLarge
	}

	key := StorageKey(dialogID)

	url, err := s.store.PresignedPutURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presign error: %w", err)
	}

	file := &models.File{
		ID:          uuid.NewString(),
		DialogID:    dialogID,
		FileName:    fileName,
		FileSize:    fileSize,
		StorageKey:  key,
		ContentType: contentType,
		DeviceLabel: deviceLabel,
		Uploaded:    false,
		UploadedAt:  time.Now().UTC(),
	}

	if err := s.repomanager.Files(s.db).Insert(ctx, file); err != nil {
		return nil, fmt.Errorf("error registering file: %w", err)
	}

	return &UploadGrant{FileID: file.ID, UploadURL: url}, nil
}

// CompleteUpload confirms the client finished its PUT and stamps dialog activity.
func (s *FileService) CompleteUpload(ctx context.Context, fileID string) (*models.File, error) {
	fileRepo := s.repomanager.Files(s.db)

	if err := fileRepo.MarkUploaded(ctx, fileID); err != nil {
		return nil, fmt.Errorf("error updating file: %w", err)
	}

	file, err := fileRepo.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.Dialogs(s.db).TouchActivity(ctx, file.DialogID, time.Now().UTC()); err != nil {
		return nil, err
	}

	return file, nil
}

// List returns confirmed uploads of a dialog, newest first, each with a
// presigned download URL.
func (s *FileService) List(ctx context.Context, dialogID string) ([]*FileView, error) {
	files, err := s.repomanager.Files(s.db).ListByDialog(ctx, dialogID)
	if err != nil {
		return nil, err
	}

	result := make([]*FileView, 0, len(files))
	for _, f := range files {
		url, err := s.store.PresignedGetURL(ctx, f.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("presign error: %w", err)
		}
		result = append(result, &FileView{File: f, DownloadURL: url})
	}
	return result, nil
}

// Delete removes the stored object first, then the row. A missing object is
// not treated as fatal; the row removal is what makes the file disappear.
func (s *FileService) Delete(ctx context.Context, fileID string) (*models.File, error) {
	fileRepo := s.repomanager.Files(s.db)

	file, err := fileRepo.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}

	_ = s.store.DeleteObject(ctx, file.StorageKey)

	if err := fileRepo.Delete(ctx, fileID); err != nil {
		return nil, err
	}

	return file, nil
}
