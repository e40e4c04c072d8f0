package domain

import "time"

// Admin is an operator account allowed to resolve frozen holds.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Argon2id
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
