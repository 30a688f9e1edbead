package ports

import (
	"context"
)

type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// SessionReader exposes the credentials written by the login flow. It never writes.
type SessionReader interface {
	Token(ctx context.Context) (string, error)
	User(ctx context.Context) (*SessionUser, error)
}
