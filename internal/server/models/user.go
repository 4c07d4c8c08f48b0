// Package models defines server-side data models persisted in the database.
package models

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Salt         []byte
	Metadata     map[string]string
	CreatedAt    time.Time
}
