// Package model defines domain entities for the application.
package model

import "time"

// User represents an account that owns job applications.
// PasswordHash is set at construction time and never left blank.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// AuthContext carries the authenticated user through a request.
type AuthContext struct {
	UserID string
	Email  string
}
