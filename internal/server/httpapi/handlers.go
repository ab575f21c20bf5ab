package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/server/auth"
	"github.com/allbox-app/allbox/internal/server/feed"
	"github.com/gorilla/mux"
)

func (s *Server) handleCreateDialog(w http.ResponseWriter, r *http.Request) {
	var req CreateDialogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PasswordHash == "" || req.DeviceID == "" {
		s.writeError(w, http.StatusBadRequest, "password_hash and device_id are required")
		return
	}

	s.logger.Info(r.Context(), "Create dialog request")

	dialog, device, err := s.dialogs.Create(r.Context(), req.Name, req.PasswordHash, req.DeviceID)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(dialog.ID, device.DeviceID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(r.Context(), "Dialog created", "dialog_id", dialog.ID)
	s.writeJSON(w, http.StatusCreated, dialogResponse(dialog, device.DeviceLabel, token))
}

func (s *Server) handleEnterDialog(w http.ResponseWriter, r *http.Request) {
	var req EnterDialogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PasswordHash == "" || req.DeviceID == "" {
		s.writeError(w, http.StatusBadRequest, "password_hash and device_id are required")
		return
	}

	dialog, device, err := s.dialogs.Enter(r.Context(), req.PasswordHash, req.DeviceID)
	if err != nil {
		if errors.Is(err, common.ErrorWrongPassword) {
			s.writeError(w, http.StatusUnauthorized, "wrong password")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(dialog.ID, device.DeviceID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.feed.Publish(feed.Event{
		Table:    feed.TableDevices,
		Action:   feed.ActionInsert,
		DialogID: dialog.ID,
		Payload:  &DeviceResponse{DeviceID: device.DeviceID, DeviceLabel: device.DeviceLabel, JoinedAt: device.JoinedAt},
	})

	s.writeJSON(w, http.StatusOK, dialogResponse(dialog, device.DeviceLabel, token))
}

func (s *Server) handleGetDialog(w http.ResponseWriter, r *http.Request) {
	dialogID := mux.Vars(r)["dialogID"]

	dialog, err := s.dialogs.Get(r.Context(), dialogID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "dialog not found")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// no token re-issue on refresh; the caller already holds one
	s.writeJSON(w, http.StatusOK, dialogResponse(dialog, "", ""))
}

func (s *Server) handleRenameDialog(w http.ResponseWriter, r *http.Request) {
	dialogID := mux.Vars(r)["dialogID"]

	var req RenameDialogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.dialogs.Rename(r.Context(), dialogID, req.Name); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "dialog not found")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.feed.Publish(feed.Event{
		Table:    feed.TableDialogs,
		Action:   feed.ActionUpdate,
		DialogID: dialogID,
		Payload:  map[string]string{"name": req.Name},
	})

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	dialogID := mux.Vars(r)["dialogID"]

	devices, err := s.dialogs.Devices(r.Context(), dialogID)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result := make([]*DeviceResponse, 0, len(devices))
	for _, d := range devices {
		result = append(result, &DeviceResponse{DeviceID: d.DeviceID, DeviceLabel: d.DeviceLabel, JoinedAt: d.JoinedAt})
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	dialogID := mux.Vars(r)["dialogID"]

	s.logger.Debug(r.Context(), "feed subscribe", "dialog_id", dialogID, "device_id", requestDeviceID(r))

	if err := s.feed.ServeWS(w, r, dialogID); err != nil {
		s.logger.Error(r.Context(), "websocket upgrade failed", "error", err)
	}
}
