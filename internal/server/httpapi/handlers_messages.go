package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/server/feed"
	"github.com/allbox-app/allbox/internal/server/models"
	"github.com/gorilla/mux"
)

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	dialogID := mux.Vars(r)["dialogID"]

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Kind {
	case models.MessageKindText:
		if req.Body == "" {
			s.writeError(w, http.StatusBadRequest, "body is required for text messages")
			return
		}

		message, err := s.messages.SendText(r.Context(), dialogID, req.DeviceLabel, req.Body)
		if err != nil {
			s.logger.Error(r.Context(), err.Error())
			s.writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		s.feed.Publish(feed.Event{
			Table:    feed.TableMessages,
			Action:   feed.ActionInsert,
			DialogID: dialogID,
			Payload:  messageResponse(message, ""),
		})

		s.writeJSON(w, http.StatusCreated, messageResponse(message, ""))

	case models.MessageKindVoice:
		grant, err := s.messages.RegisterVoice(r.Context(), dialogID, req.DeviceLabel)
		if err != nil {
			s.logger.Error(r.Context(), err.Error())
			s.writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		s.feed.Publish(feed.Event{
			Table:    feed.TableMessages,
			Action:   feed.ActionInsert,
			DialogID: dialogID,
			Payload:  map[string]string{"id": grant.MessageID, "kind": models.MessageKindVoice},
		})

		s.writeJSON(w, http.StatusCreated, &MessageResponse{
			ID:          grant.MessageID,
			Kind:        models.MessageKindVoice,
			DeviceLabel: req.DeviceLabel,
			UploadURL:   grant.UploadURL,
		})

	default:
		s.writeError(w, http.StatusBadRequest, "unknown message kind")
	}
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dialogID := vars["dialogID"]
	messageID := vars["messageID"]

	message, err := s.messages.Delete(r.Context(), messageID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "message not found")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.feed.Publish(feed.Event{
		Table:    feed.TableMessages,
		Action:   feed.ActionDelete,
		DialogID: dialogID,
		Payload:  map[string]string{"id": message.ID},
	})

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	dialogID := mux.Vars(r)["dialogID"]

	views, err := s.messages.List(r.Context(), dialogID)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponses(views))
}
