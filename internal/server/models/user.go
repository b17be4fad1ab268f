package models

import "time"

// User holds one registered account. PasswordHash is the only credential
// material ever persisted; the plaintext password never leaves the request.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the owner extracted from a verified bearer token. Every
// ledger operation is scoped by its UserID.
type Identity struct {
	UserID   string
	Username string
}
