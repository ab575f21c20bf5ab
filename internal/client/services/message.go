package services

import (
	"context"
	"time"

	"github.com/allbox-app/allbox/internal/client/api"
	"github.com/allbox-app/allbox/internal/client/devicestate"
	"github.com/allbox-app/allbox/internal/netx"
)

type MessageService struct {
	api   *api.Client
	store *devicestate.Store
}

func NewMessageService(apiClient *api.Client, store *devicestate.Store) *MessageService {
	return &MessageService{api: apiClient, store: store}
}

// SendText posts a text message and refreshes the local activity stamp.
func (s *MessageService) SendText(ctx context.Context, dialogID, body string) (*api.Message, error) {
	message, err := s.api.SendText(ctx, dialogID, s.store.DeviceLabelFor(ctx, dialogID), body)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateDialogActivity(ctx, dialogID, time.Now()); err != nil {
		return nil, err
	}
	return message, nil
}

// SendVoice registers a voice note and uploads the recording through the
// presigned URL the server hands back.
func (s *MessageService) SendVoice(ctx context.Context, dialogID string, recording []byte, contentType string) (*api.Message, error) {
	message, err := s.api.SendVoice(ctx, dialogID, s.store.DeviceLabelFor(ctx, dialogID))
	if err != nil {
		return nil, err
	}

	if err := netx.UploadToPresignedURL(ctx, message.UploadURL, recording, contentType); err != nil {
		return nil, err
	}

	if err := s.store.UpdateDialogActivity(ctx, dialogID, time.Now()); err != nil {
		return nil, err
	}
	return message, nil
}

// List returns the dialog's messages, oldest first.
func (s *MessageService) List(ctx context.Context, dialogID string) ([]*api.Message, error) {
	return s.api.ListMessages(ctx, dialogID)
}
