package entity

import "time"

// User is an operator account for the API (login only; RBAC is handled
// upstream by the commanding layer).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
