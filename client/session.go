// Package client is a Go client for the hostel management API. It
// covers the session-gated page lifecycle: session bootstrap, route
// guarding, data fetching with optional-fetch degradation, derived
// display metrics and mutation submission.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

// User is the authenticated admin as returned by the server.
type User struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

var (
	// ErrBadCredentials means the server answered and rejected the login.
	ErrBadCredentials = errors.New("invalid credentials")
	// ErrServerUnreachable means the request never got an HTTP response.
	ErrServerUnreachable = errors.New("server unreachable")
)

// SessionStore is the single source of truth for "who is logged in".
// It is an explicit, injectable object: construct one per application
// and pass it to the pieces that need it. The server owns the durable
// session via a cookie held in the store's jar; the store only mirrors
// the resulting user.
type SessionStore struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger

	mu      sync.Mutex
	user    *User
	loading bool
}

// NewSessionStore builds a session store against the given base URL
// with a fresh cookie jar. The store starts in the loading state; call
// CheckSession to resolve it.
func NewSessionStore(baseURL string, logger *slog.Logger) (*SessionStore, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
		logger:  logger,
		loading: true,
	}, nil
}

// HTTPClient exposes the cookie-carrying client so fetchers and
// mutators share the session.
func (s *SessionStore) HTTPClient() *http.Client {
	return s.client
}

// BaseURL returns the configured server origin.
func (s *SessionStore) BaseURL() string {
	return s.baseURL
}

// CurrentUser returns the logged-in user, or nil.
func (s *SessionStore) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsLoading reports whether the initial session check is still
// unresolved.
func (s *SessionStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

type userEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// CheckSession asks the server whether the stored cookie still
// identifies a live session. On any failure the user stays nil. The
// loading flag is cleared on every path.
func (s *SessionStore) CheckSession(ctx context.Context) {
	defer s.setLoading(false)

	envelope, err := s.postJSON(ctx, http.MethodGet, "/check-auth", nil)
	if err != nil || envelope.User == nil {
		if err != nil {
			s.logger.Debug("session check failed", "error", err)
		}
		s.setUser(nil)
		return
	}

	s.setUser(envelope.User)
}

// Login authenticates with the server. A rejected login returns
// ErrBadCredentials, a transport failure wraps ErrServerUnreachable,
// and a request-setup failure is returned as-is. The stored user is
// only replaced on success.
func (s *SessionStore) Login(ctx context.Context, username, password string) (*User, error) {
	defer s.setLoading(false)

	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	var envelope userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrBadCredentials
	}
	if resp.StatusCode != http.StatusOK || envelope.User == nil {
		message := envelope.Message
		if message == "" {
			message = resp.Status
		}
		return nil, fmt.Errorf("login failed: %s", message)
	}

	s.setUser(envelope.User)
	return envelope.User, nil
}

// Logout destroys the server session. The local user is cleared even
// when the server call fails, so the caller never stays in a
// logged-in-looking state.
func (s *SessionStore) Logout(ctx context.Context) error {
	defer s.setUser(nil)
	defer s.setLoading(false)

	_, err := s.postJSON(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		s.logger.Warn("logout request failed", "error", err)
		return err
	}
	return nil
}

func (s *SessionStore) postJSON(ctx context.Context, method, path string, body []byte) (*userEnvelope, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	var envelope userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &envelope, fmt.Errorf("request failed: %s", resp.Status)
	}
	return &envelope, nil
}

func (s *SessionStore) setUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *SessionStore) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}
