// Package models defines the persisted entities of the scorekeep server.
package models

import "time"

// User is one registered account. Email and Nickname are each unique across
// all users; PasswordHash holds a bcrypt hash, never the plaintext password.
type User struct {
	ID           string
	FullName     string
	Email        string
	Nickname     string
	PasswordHash string
	CreatedAt    time.Time
}
