// Package entity holds the identity module's domain types.
package entity

import "time"

// User is a registered account.
type User struct {
	ID        string
	Email     string
	FullName  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser carries the fields needed to create an account.
type NewUser struct {
	ID       string
	Email    string
	FullName string
	Password string
}
