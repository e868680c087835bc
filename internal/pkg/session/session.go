// Package session holds the process-wide admin sessions. A session is the
// server-side replacement for the browser-held token of a SPA: it carries
// the backend's access and refresh tokens plus the username, keyed by an
// opaque cookie value, persisted across restarts, and cleared on logout or
// the moment the backend answers 401.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/pkg/apperrors"
)

// Session is one authenticated admin session.
type Session struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Manager owns the session map and its state file.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	cookie    string
	ttl       time.Duration
	statePath string
	logger    zerolog.Logger
	now       func() time.Time
}

// NewManager creates a manager and reloads any sessions persisted by a
// previous run. statePath may be empty to disable persistence.
func NewManager(cookieName, statePath string, ttl time.Duration, lgr zerolog.Logger) *Manager {
	m := &Manager{
		sessions:  map[string]*Session{},
		cookie:    cookieName,
		ttl:       ttl,
		statePath: statePath,
		logger:    lgr.With().Str("component", "session").Logger(),
		now:       time.Now,
	}
	m.load()
	return m
}

// CookieName returns the configured session cookie name.
func (m *Manager) CookieName() string {
	return m.cookie
}

// Create registers a new session from a login result. The expiry is the
// access token's exp claim when it carries one, capped by the configured
// TTL; no refresh is attempted once it passes.
func (m *Manager) Create(username, accessToken, refreshToken string) *Session {
	now := m.now()
	expires := now.Add(m.ttl)
	if exp, ok := tokenExpiry(accessToken); ok && exp.Before(expires) {
		expires = exp
	}

	sess := &Session{
		ID:           uuid.NewString(),
		Username:     username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		CreatedAt:    now,
		ExpiresAt:    expires,
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	m.persist()
	return sess
}

// Get returns the session for an id. An expired session is dropped and
// reported as ErrSessionExpired.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if sess.Expired(m.now()) {
		m.Delete(id)
		return nil, apperrors.ErrSessionExpired
	}
	return sess, nil
}

// Delete removes a session, if present.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		m.persist()
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// load reads the state file and keeps the sessions that have not expired.
func (m *Manager) load() {
	if m.statePath == "" {
		return
	}
	data, err := os.ReadFile(m.statePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			m.logger.Warn().Err(err).Str("path", m.statePath).Msg("failed to read session state")
		}
		return
	}

	var persisted []*Session
	if err := json.Unmarshal(data, &persisted); err != nil {
		m.logger.Warn().Err(err).Str("path", m.statePath).Msg("session state unreadable, starting empty")
		return
	}

	now := m.now()
	m.mu.Lock()
	for _, sess := range persisted {
		if sess.ID == "" || sess.Expired(now) {
			continue
		}
		m.sessions[sess.ID] = sess
	}
	restored := len(m.sessions)
	m.mu.Unlock()
	if restored > 0 {
		m.logger.Info().Int("sessions", restored).Msg("restored persisted sessions")
	}
}

// persist writes the live sessions to the state file, best effort.
func (m *Manager) persist() {
	if m.statePath == "" {
		return
	}
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		all = append(all, sess)
	}
	m.mu.RUnlock()

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to encode session state")
		return
	}
	if err := os.WriteFile(m.statePath, data, 0o600); err != nil {
		m.logger.Error().Err(err).Str("path", m.statePath).Msg("failed to write session state")
	}
}

// tokenExpiry reads the exp claim out of a JWT without verifying the
// signature; the backend signed it and is the only party that checks it.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
