package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDialog_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/dialogs", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Swift Send", req["name"])
		assert.Equal(t, "hash", req["password_hash"])
		assert.Equal(t, "dev1", req["device_id"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&Dialog{ID: "d1", Name: "Swift Send", DeviceLabel: "Device 1", AccessToken: "tok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	dialog, err := c.CreateDialog(context.Background(), "Swift Send", "hash", "dev1")
	require.NoError(t, err)
	assert.Equal(t, "d1", dialog.ID)
	assert.Equal(t, "tok", c.Token())
}

func TestEnterDialog_WrongPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(&errorResponse{Error: "wrong password"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.EnterDialog(context.Background(), "bad", "dev1")
	require.ErrorIs(t, err, common.ErrorWrongPassword)
}

func TestDialogScopedRequests_CarryToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get(common.AccessTokenHeaderName))
		_ = json.NewEncoder(w).Encode([]*Device{{DeviceID: "dev1", DeviceLabel: "Device 1"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("tok")

	devices, err := c.ListDevices(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "Device 1", devices[0].DeviceLabel)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, want: common.ErrorNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, want: common.ErrorUnauthorized},
		{name: "too large", status: http.StatusRequestEntityTooLarge, want: common.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(&errorResponse{Error: tt.name})
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			c.SetToken("tok")
			err := c.RenameDialog(context.Background(), "d1", "x")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/dialogs/d1/files", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&UploadGrant{FileID: "f1", UploadURL: "https://s3/put"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("tok")

	grant, err := c.RegisterUpload(context.Background(), "d1", "report.pdf", 1024, "application/pdf", "Device 1")
	require.NoError(t, err)
	assert.Equal(t, "f1", grant.FileID)
	assert.Equal(t, "https://s3/put", grant.UploadURL)
}

func TestSubscribeFeed_DeliversEvents(t *testing.T) {
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/dialogs/d1/feed", r.URL.Path)
		require.Equal(t, "tok", r.URL.Query().Get("access_token"))

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteJSON(&FeedEvent{Table: "messages", Action: "insert", DialogID: "d1"}))

		// hold the connection until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewClient(srv.URL)
	c.SetToken("tok")

	events, err := c.SubscribeFeed(ctx, "d1")
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "messages", event.Table)
		assert.Equal(t, "insert", event.Action)
		assert.Equal(t, "d1", event.DialogID)
	case <-time.After(2 * time.Second):
		t.Fatal("no feed event received")
	}

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("feed channel did not close")
	}
}
