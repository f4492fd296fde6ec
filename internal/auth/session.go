package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

// SessionStore maps opaque bearer tokens to users in SQLite.
// Sessions do not expire; Cleanup exists for operators who want to
// prune old tokens by age.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a session store.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Create generates a new session token for the given user.
func (s *SessionStore) Create(userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	if _, err := s.db.Exec(
		"INSERT INTO sessions (token, user_id) VALUES (?, ?)",
		token, userID,
	); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	return token, nil
}

// Validate resolves a bearer token to its user ID.
func (s *SessionStore) Validate(token string) (int64, error) {
	var userID int64
	err := s.db.QueryRow(
		"SELECT user_id FROM sessions WHERE token = ?", token,
	).Scan(&userID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("invalid session")
	}
	if err != nil {
		return 0, fmt.Errorf("querying session: %w", err)
	}
	return userID, nil
}

// Destroy removes a session token.
func (s *SessionStore) Destroy(token string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Cleanup removes sessions older than the given age.
func (s *SessionStore) Cleanup(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	if _, err := s.db.Exec(
		"DELETE FROM sessions WHERE created_at < ?", cutoff,
	); err != nil {
		return fmt.Errorf("cleaning up sessions: %w", err)
	}
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
