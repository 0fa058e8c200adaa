package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// User identifies a registered user. The password hash never leaves the
// store.
type User struct {
	ID       int64
	Username string
}

// UserExists reports whether a username is already registered.
func (s *Store) UserExists(ctx context.Context, username string) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE username = ?", username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user: %w", err)
	}
	return true, nil
}

// CreateUser registers a new user with a bcrypt-hashed password. Returns
// ErrUsernameTaken if the username is already registered.
func (s *Store) CreateUser(ctx context.Context, username, password string) (*User, error) {
	exists, err := s.UserExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?, ?)", username, string(hash))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read user id: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "username", username, "user_id", id)

	return &User{ID: id, Username: username}, nil
}

// UserByName looks a user up by username. Returns ErrNotFound when no
// such user is registered.
func (s *Store) UserByName(ctx context.Context, username string) (*User, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE username = ?", username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &User{ID: id, Username: username}, nil
}

// Authenticate verifies a username/password pair. Both an unknown username
// and a wrong password yield ErrInvalidCredentials, so callers cannot
// distinguish the two.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var (
		id   int64
		hash string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, password_hash FROM users WHERE username = ?", username).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &User{ID: id, Username: username}, nil
}
