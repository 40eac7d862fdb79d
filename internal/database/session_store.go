package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nfrund/fieldnotes/internal/config"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

var _ domain.SessionRepository = (*SessionStore)(nil)

// authRow is the identity SurrealDB reports for an authenticated token.
type authRow struct {
	ID    *surrealmodels.RecordID `json:"id"`
	Email string                  `json:"email"`
}

// usersTable is the record-access table whose rows own species.
const usersTable = "user"

// SessionStore resolves and issues user sessions through SurrealDB record
// access. Authentication runs on dialed connections; the duplicate-email
// check after a failed sign-up uses the shared service connection.
type SessionStore struct {
	conn DBConnection
	cfg  config.Provider
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(conn DBConnection, cfg config.Provider) *SessionStore {
	return &SessionStore{conn: conn, cfg: cfg}
}

// GetSession validates a token and returns the session it belongs to.
func (s *SessionStore) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}

	db, err := s.conn.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get database connection for authentication: %w", err)
	}
	defer db.Close(ctx)

	if err := db.Authenticate(ctx, token); err != nil {
		return nil, authError(ctx, "authenticate", err)
	}

	rows, err := queryDB[authRow](ctx, db, "SELECT id, email FROM $auth", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated user: %w", err)
	}
	if len(rows) == 0 || rows[0].ID == nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.Session{
		Token:  token,
		UserID: rows[0].ID.String(),
		Email:  rows[0].Email,
	}, nil
}

// SignIn exchanges credentials for a session token.
func (s *SessionStore) SignIn(ctx context.Context, creds domain.Credentials) (string, error) {
	db, err := s.conn.Dial(ctx)
	if err != nil {
		return "", fmt.Errorf("could not get database connection for sign-in: %w", err)
	}
	defer db.Close(ctx)

	token, err := db.SignIn(ctx, s.accessParams(creds))
	if err != nil {
		err = authError(ctx, "sign-in", err)
		if errors.Is(err, domain.ErrInvalidCredentials) {
			slog.DebugContext(ctx, "Record access sign-in rejected", "event", "signin_failure", "email", creds.Email)
		}
		return "", err
	}
	return token, nil
}

// SignUp registers a new user and returns their first session token.
func (s *SessionStore) SignUp(ctx context.Context, creds domain.Credentials) (string, error) {
	db, err := s.conn.Dial(ctx)
	if err != nil {
		return "", fmt.Errorf("could not get database connection for sign-up: %w", err)
	}
	defer db.Close(ctx)

	token, err := db.SignUp(ctx, s.accessParams(creds))
	if err != nil {
		return "", signUpError(ctx, err, func(ctx context.Context) (bool, error) {
			return s.emailTaken(ctx, creds.Email)
		})
	}
	return token, nil
}

// emailTaken reports whether a user record with email exists.
func (s *SessionStore) emailTaken(ctx context.Context, email string) (bool, error) {
	var rows []string
	err := s.conn.WithConnection(ctx, func(db *surrealdb.DB) error {
		var qerr error
		rows, qerr = queryDB[string](ctx, db, "SELECT VALUE email FROM type::table($table) WHERE email = $email LIMIT 1",
			map[string]any{"table": usersTable, "email": email})
		return qerr
	})
	if err != nil {
		return false, fmt.Errorf("failed to look up existing user: %w", err)
	}
	return len(rows) > 0, nil
}

// authError separates a backend that rejected the credentials or token from
// one that could not be reached. Only the former is ErrInvalidCredentials.
func authError(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || isConnectionError(err) {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	return domain.ErrInvalidCredentials
}

// signUpError maps a failed SIGNUP. The unique email index names itself in
// the error; record access usually hides it behind "signup query failed",
// so that case is resolved by looking the email up.
func signUpError(ctx context.Context, err error, emailTaken func(context.Context) (bool, error)) error {
	if ctx.Err() != nil || isConnectionError(err) {
		return fmt.Errorf("sign-up request failed: %w", err)
	}

	msg := err.Error()
	if strings.Contains(msg, "already contains") {
		return domain.ErrUserAlreadyExists
	}
	if strings.Contains(msg, "signup query failed") {
		taken, lookupErr := emailTaken(ctx)
		if lookupErr != nil {
			return fmt.Errorf("sign-up failed: %w", errors.Join(err, lookupErr))
		}
		if taken {
			return domain.ErrUserAlreadyExists
		}
	}
	return fmt.Errorf("sign-up failed: %w", err)
}

func (s *SessionStore) accessParams(creds domain.Credentials) map[string]any {
	return map[string]any{
		"ns":       s.cfg.GetDBNs(),
		"db":       s.cfg.GetDBDb(),
		"ac":       s.cfg.GetDBAccess(),
		"email":    creds.Email,
		"password": creds.Password,
	}
}
