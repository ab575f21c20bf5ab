// Package httpapi exposes the AllBox JSON/HTTP surface: dialog lifecycle,
// file sharing, messages, and the websocket change feed.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/allbox-app/allbox/internal/logging"
	"github.com/allbox-app/allbox/internal/server/feed"
	"github.com/allbox-app/allbox/internal/server/models"
	"github.com/allbox-app/allbox/internal/server/services"
	"github.com/gorilla/mux"
)

// DialogAPI is the slice of DialogService the handlers need.
type DialogAPI interface {
	Create(ctx context.Context, name, passwordHash, deviceID string) (*models.Dialog, *models.Device, error)
	Enter(ctx context.Context, passwordHash, deviceID string) (*models.Dialog, *models.Device, error)
	Get(ctx context.Context, dialogID string) (*models.Dialog, error)
	Rename(ctx context.Context, dialogID, name string) error
	Devices(ctx context.Context, dialogID string) ([]*models.Device, error)
}

// FileAPI is the slice of FileService the handlers need.
type FileAPI interface {
	RegisterUpload(ctx context.Context, dialogID, fileName string, fileSize int64, contentType, deviceLabel string) (*services.UploadGrant, error)
	CompleteUpload(ctx context.Context, fileID string) (*models.File, error)
	List(ctx context.Context, dialogID string) ([]*services.FileView, error)
	Delete(ctx context.Context, fileID string) (*models.File, error)
}

// MessageAPI is the slice of MessageService the handlers need.
type MessageAPI interface {
	SendText(ctx context.Context, dialogID, deviceLabel, body string) (*models.Message, error)
	RegisterVoice(ctx context.Context, dialogID, deviceLabel string) (*services.VoiceGrant, error)
	List(ctx context.Context, dialogID string) ([]*services.MessageView, error)
	Delete(ctx context.Context, messageID string) (*models.Message, error)
}

// Server serves the public HTTP API.
type Server struct {
	address       string
	logger        logging.Logger
	dialogs       DialogAPI
	files         FileAPI
	messages      MessageAPI
	feed          feedPublisher
	jwtSecret     []byte
	tokenValidity time.Duration
}

// feedPublisher is the hub surface the handlers need; *feed.Hub satisfies it.
type feedPublisher interface {
	ServeWS(w http.ResponseWriter, r *http.Request, dialogID string) error
	Publish(event feed.Event)
}

func NewServer(address string, l logging.Logger, dialogs DialogAPI, files FileAPI, messages MessageAPI, hub feedPublisher, secretKey string, tokenValidity time.Duration) *Server {
	return &Server{
		address:       address,
		logger:        l.With("module", "httpapi"),
		dialogs:       dialogs,
		files:         files,
		messages:      messages,
		feed:          hub,
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
	}
}

// Router builds the route table. Split out of Run so tests can exercise the
// full routing + middleware stack via httptest.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	api.HandleFunc("/dialogs", s.handleCreateDialog).Methods(http.MethodPost)
	api.HandleFunc("/dialogs/enter", s.handleEnterDialog).Methods(http.MethodPost)

	dialog := api.PathPrefix("/dialogs/{dialogID}").Subrouter()
	dialog.Use(s.dialogAuthMiddleware)
	dialog.HandleFunc("", s.handleGetDialog).Methods(http.MethodGet)
	dialog.HandleFunc("", s.handleRenameDialog).Methods(http.MethodPatch)
	dialog.HandleFunc("/devices", s.handleListDevices).Methods(http.MethodGet)
	dialog.HandleFunc("/files", s.handleRegisterUpload).Methods(http.MethodPost)
	dialog.HandleFunc("/files", s.handleListFiles).Methods(http.MethodGet)
	dialog.HandleFunc("/files/{fileID}/complete", s.handleCompleteUpload).Methods(http.MethodPost)
	dialog.HandleFunc("/files/{fileID}", s.handleDeleteFile).Methods(http.MethodDelete)
	dialog.HandleFunc("/messages", s.handleSendMessage).Methods(http.MethodPost)
	dialog.HandleFunc("/messages", s.handleListMessages).Methods(http.MethodGet)
	dialog.HandleFunc("/messages/{messageID}", s.handleDeleteMessage).Methods(http.MethodDelete)
	dialog.HandleFunc("/feed", s.handleFeed).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "response encode error", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, &ErrorResponse{Error: msg})
}
