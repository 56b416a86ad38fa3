package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticketdesk/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionStoreInterface defines the interface for session storage operations.
// Sessions are created on login, deleted on logout, and touched on every
// resolve to implement the sliding idle expiry.
type SessionStoreInterface interface {
	Create(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (userID uint, err error)
	Touch(ctx context.Context, tokenID string, ttl time.Duration) error
	Delete(ctx context.Context, tokenID string) error
}

// SessionStore keeps live sessions in Redis, keyed by token ID. Session state
// is ephemeral: it never touches the relational store.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Create stores a session record with TTL. The write must not be lost: a
// token whose session was never stored would bounce every later request to
// login, so a failed write fails the login instead.
func (s *SessionStore) Create(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	data := map[string]interface{}{
		"user_id": userID,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}

	key := sessionKeyPrefix + tokenID
	if err := s.cache.Write(ctx, key, payload, ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get returns the user ID bound to a live session, or an error if the session
// is absent, expired, or revoked.
func (s *SessionStore) Get(ctx context.Context, tokenID string) (uint, error) {
	key := sessionKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return 0, fmt.Errorf("session not found")
	}

	var sessionData map[string]interface{}
	if err := json.Unmarshal(data, &sessionData); err != nil {
		return 0, fmt.Errorf("unmarshal session data: %w", err)
	}

	uid, ok := sessionData["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid user_id in session data")
	}
	return uint(uid), nil
}

// Touch re-arms the idle TTL on a live session.
func (s *SessionStore) Touch(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := sessionKeyPrefix + tokenID
	return s.cache.Expire(ctx, key, ttl)
}

// Delete revokes a session.
func (s *SessionStore) Delete(ctx context.Context, tokenID string) error {
	key := sessionKeyPrefix + tokenID
	return s.cache.Delete(ctx, key)
}
