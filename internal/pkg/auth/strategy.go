package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Role distinguishes student and admin principals.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Claims is the identity carried by a token.
type Claims struct {
	Subject string
	Email   string
	Role    Role
}

type Strategy interface {
	// IssueToken signs claims valid for ttl. Non-positive ttl falls back to Options.TTL.
	IssueToken(claims Claims, ttl time.Duration) (string, error)
	ParseToken(token string) (*Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}
