// Package auth issues and verifies dialog access tokens.
//
// A token is a capability: it proves that its bearer passed the password
// check for one dialog. There are no user accounts behind it.
package auth

import (
	"errors"
	"time"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the dialog and device this token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	DialogID string `json:"dialog_id"`
	DeviceID string `json:"device_id"`
}

// GenerateToken signs an HS256 token binding deviceID to dialogID.
func GenerateToken(dialogID, deviceID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		DialogID: dialogID,
		DeviceID: deviceID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and returns the embedded dialog and
// device IDs. Expired tokens map to common.ErrTokenExpired.
func ParseToken(tokenString string, secretKey []byte) (dialogID string, deviceID string, err error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", common.ErrTokenExpired
		}
		return "", "", common.ErrInvalidToken
	}

	if !token.Valid || claims.DialogID == "" {
		return "", "", common.ErrInvalidToken
	}

	return claims.DialogID, claims.DeviceID, nil
}
