// Package session keeps the signed-in user's bearer token and user record in
// client-local storage. It is written on successful login, read when a request
// is built and cleared on logout.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/erazemk/unifind/internal/auth"
	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/store"
)

// Storage keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Session is the authentication state of the client.
type Session struct {
	Token string
	User  *model.User
}

// Authenticated reports whether the session carries a token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// IsAdmin reports whether the signed-in user has the admin role.
func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.User != nil && model.RoleAtLeast(s.User.Role, model.RoleAdmin)
}

// Store persists sessions in a storage database.
type Store struct {
	DB  *sql.DB
	Now func() time.Time
}

// NewStore returns a Store over db using the wall clock.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db, Now: time.Now}
}

// Load returns the current session. A missing or expired token yields an
// unauthenticated session, not an error.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	token, ok, err := store.Get(ctx, s.DB, KeyToken)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if !ok || token == "" {
		return &Session{}, nil
	}
	if auth.Expired(token, s.Now()) {
		slog.Info("stored session expired")
		return &Session{}, nil
	}

	sess := &Session{Token: token}

	raw, ok, err := store.Get(ctx, s.DB, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if ok {
		var u model.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			slog.Warn("ignoring malformed stored user", "error", err)
		} else {
			sess.User = &u
		}
	}
	return sess, nil
}

// Save stores token and user together.
func (s *Store) Save(ctx context.Context, token string, user model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := store.SetMany(ctx, s.DB, map[string]string{
		KeyToken: token,
		KeyUser:  string(data),
	}); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (s *Store) Clear(ctx context.Context) error {
	if err := store.Delete(ctx, s.DB, KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
