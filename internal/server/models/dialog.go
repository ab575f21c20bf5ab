// Package models defines server-side rows persisted in PostgreSQL.
package models

import "time"

// Dialog is a shared room protected by a short numeric password.
// PasswordHash is the client-computed salted SHA-256; the server never
// sees the plaintext and matches dialogs by flat hash equality.
type Dialog struct {
	ID             string
	Name           string
	PasswordHash   string
	CreatedAt      time.Time
	LastActivityAt time.Time
}
