package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/allbox-app/allbox/internal/server/models"
	"github.com/allbox-app/allbox/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// MessageView is a message row plus, for voice notes, a short-lived
// download URL for the recording.
type MessageView struct {
	Message     *models.Message
	DownloadURL string
}

// VoiceGrant is what a client needs to push one voice note.
type VoiceGrant struct {
	MessageID string
	UploadURL string
}

// MessageService stores text messages and registers voice notes whose
// payloads go to object storage.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       *ObjectStore
}

func NewMessageService(db *sql.DB, repomanager repomanager.RepositoryManager, store *ObjectStore) *MessageService {
	return &MessageService{db: db, repomanager: repomanager, store: store}
}

// SendText stores a text message and stamps dialog activity.
func (s *MessageService) SendText(ctx context.Context, dialogID, deviceLabel, body string) (*models.Message, error) {
	message := &models.Message{
		ID:          uuid.NewString(),
		DialogID:    dialogID,
		DeviceLabel: deviceLabel,
		Kind:        models.MessageKindText,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repomanager.Messages(s.db).Insert(ctx, message); err != nil {
		return nil, fmt.Errorf("error saving message: %w", err)
	}

	if err := s.repomanager.Dialogs(s.db).TouchActivity(ctx, dialogID, message.CreatedAt); err != nil {
		return nil, err
	}

	return message, nil
}

// RegisterVoice stores a voice-note row and issues a presigned PUT URL for
// the recording. The note appears in listings immediately; clients are
// expected to PUT right after sending.
func (s *MessageService) RegisterVoice(ctx context.Context, dialogID, deviceLabel string) (*VoiceGrant, error) {
	key := StorageKey(dialogID)

	url, err := s.store.PresignedPutURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presign error: %w", err)
	}

	message := &models.Message{
		ID:          uuid.NewString(),
		DialogID:    dialogID,
		DeviceLabel: deviceLabel,
		Kind:        models.MessageKindVoice,
		StorageKey:  key,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repomanager.Messages(s.db).Insert(ctx, message); err != nil {
		return nil, fmt.Errorf("error saving message: %w", err)
	}

	if err := s.repomanager.Dialogs(s.db).TouchActivity(ctx, dialogID, message.CreatedAt); err != nil {
		return nil, err
	}

	return &VoiceGrant{MessageID: message.ID, UploadURL: url}, nil
}

// List returns the dialog's messages oldest first; voice notes carry a
// presigned download URL.
func (s *MessageService) List(ctx context.Context, dialogID string) ([]*MessageView, error) {
	messages, err := s.repomanager.Messages(s.db).ListByDialog(ctx, dialogID)
	if err != nil {
		return nil, err
	}

	result := make([]*MessageView, 0, len(messages))
	for _, m := range messages {
		view := &MessageView{Message: m}
		if m.Kind == models.MessageKindVoice {
			url, err := s.store.PresignedGetURL(ctx, m.StorageKey)
			if err != nil {
				return nil, fmt.Errorf("presign error: %w", err)
			}
			view.DownloadURL = url
		}
		result = append(result, view)
	}
	return result, nil
}

// Delete removes a message; voice payloads are deleted from storage as well.
func (s *MessageService) Delete(ctx context.Context, messageID string) (*models.Message, error) {
	repo := s.repomanager.Messages(s.db)

	message, err := repo.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if message.StorageKey != "" {
		_ = s.store.DeleteObject(ctx, message.StorageKey)
	}

	if err := repo.Delete(ctx, messageID); err != nil {
		return nil, err
	}

	return message, nil
}
