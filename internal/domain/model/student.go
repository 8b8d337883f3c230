package model

import "time"

// Student represents a registered student account.
type Student struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewStudent holds registration data after password hashing.
type NewStudent struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
}
