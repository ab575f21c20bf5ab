// Package common defines shared constants and sentinel errors used across
// client and server layers of AllBox. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrorUnauthorized covers missing or rejected access tokens.
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorWrongPassword is returned when no dialog matches the supplied
	// password hash.
	ErrorWrongPassword = errors.New("wrong password")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired marks an access token past its validity window.
	ErrTokenExpired = errors.New("token expired")

	// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
)
