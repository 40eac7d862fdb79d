package domain

import "context"

// Session is the server-recognized proof that a request belongs to an
// authenticated user. Only its presence gates access.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// Credentials holds what a visitor submits to sign in or sign up.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// Validate runs validation checks on the credentials.
func (c *Credentials) Validate() error {
	return validatorInstance.Struct(c)
}

// SessionRepository talks to the hosted authentication backend.
type SessionRepository interface {
	// GetSession resolves a token to a session. It returns (nil, nil) for an
	// empty token and ErrInvalidCredentials for a token the backend rejects.
	GetSession(ctx context.Context, token string) (*Session, error)
	SignIn(ctx context.Context, creds Credentials) (string, error)
	SignUp(ctx context.Context, creds Credentials) (string, error)
}
