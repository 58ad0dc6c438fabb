package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hostelhub/hostel-service/internal/cache"
)

// ErrSessionNotFound indicates the token does not map to a live session.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore issues opaque session tokens and resolves them back to
// admin IDs. Sessions live in Redis with a sliding TTL: every successful
// lookup pushes the expiry forward.
type SessionStore struct {
	sessions *cache.CacheHelper
	ttl      time.Duration
}

func NewSessionStore(sessions *cache.CacheHelper, ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: sessions,
		ttl:      ttl,
	}
}

// TTL returns the configured session lifetime.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Create issues a new session token for the given admin.
func (s *SessionStore) Create(ctx context.Context, adminID uint) (string, error) {
	token := uuid.NewString()
	if err := s.sessions.SetString(ctx, token, strconv.FormatUint(uint64(adminID), 10), s.ttl); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// Get resolves a token to an admin ID and extends the session lifetime.
func (s *SessionStore) Get(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrSessionNotFound
	}

	value, err := s.sessions.GetString(ctx, token)
	if err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) || errors.Is(err, cache.ErrCacheNotAvailable) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("failed to load session: %w", err)
	}

	adminID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session payload: %w", err)
	}

	if err := s.sessions.Expire(ctx, token, s.ttl); err != nil {
		return 0, fmt.Errorf("failed to refresh session: %w", err)
	}

	return uint(adminID), nil
}

// Destroy invalidates a session token. Unknown tokens are not an error.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
