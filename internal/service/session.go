package service

import "fmt"

// Session is the identity established by a successful login. Handlers build
// it from access-token claims; services trust it and never read the request.
type Session struct {
	UserID uint
	Role   string
}

func requireRole(sess Session, role string) error {
	if sess.Role != role {
		return fmt.Errorf("role %q required: %w", role, ErrUnauthorized)
	}
	return nil
}
