package httpapi

import (
	"context"
	"net/http"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/server/auth"
	"github.com/gorilla/mux"
)

type ctxKey string

const deviceIDKey ctxKey = "deviceID"

// dialogAuthMiddleware guards dialog-scoped routes. The access token must be
// valid and issued for the dialog in the path; anything else is rejected
// before the handler runs.
func (s *Server) dialogAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(common.AccessTokenHeaderName)
		if token == "" {
			// websocket clients cannot always set headers; allow the
			// token as a query parameter for the feed endpoint.
			token = r.URL.Query().Get("access_token")
		}
		if token == "" {
			s.writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		dialogID, deviceID, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		if mux.Vars(r)["dialogID"] != dialogID {
			s.writeError(w, http.StatusForbidden, "token issued for another dialog")
			return
		}

		ctx := context.WithValue(r.Context(), deviceIDKey, deviceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestDeviceID returns the device ID carried by the verified token.
func requestDeviceID(r *http.Request) string {
	id, _ := r.Context().Value(deviceIDKey).(string)
	return id
}
