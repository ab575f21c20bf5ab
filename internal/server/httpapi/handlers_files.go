package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/server/feed"
	"github.com/gorilla/mux"
)

func (s *Server) handleRegisterUpload(w http.ResponseWriter, r *http.Request) {
	dialogID := mux.Vars(r)["dialogID"]

	var req RegisterUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileName == "" {
		s.writeError(w, http.StatusBadRequest, "file_name is required")
		return
	}

	grant, err := s.files.RegisterUpload(r.Context(), dialogID, req.FileName, req.FileSize, req.ContentType, req.DeviceLabel)
	if err != nil {
		if errors.Is(err, common.ErrFileTooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusCreated, &UploadGrantResponse{FileID: grant.FileID, UploadURL: grant.UploadURL})
}

func (s *Server) handleCompleteUpload(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileID"]

	file, err := s.files.CompleteUpload(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "file not found")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.feed.Publish(feed.Event{
		Table:    feed.TableFiles,
		Action:   feed.ActionInsert,
		DialogID: file.DialogID,
		Payload:  fileResponse(file, ""),
	})

	s.writeJSON(w, http.StatusOK, fileResponse(file, ""))
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	dialogID := mux.Vars(r)["dialogID"]

	views, err := s.files.List(r.Context(), dialogID)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, fileResponses(views))
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dialogID := vars["dialogID"]
	fileID := vars["fileID"]

	file, err := s.files.Delete(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "file not found")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.feed.Publish(feed.Event{
		Table:    feed.TableFiles,
		Action:   feed.ActionDelete,
		DialogID: dialogID,
		Payload:  map[string]string{"id": file.ID},
	})

	w.WriteHeader(http.StatusNoContent)
}
