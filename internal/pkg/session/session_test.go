package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/pkg/apperrors"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestCreateAndGet(t *testing.T) {
	m := NewManager("sid", "", 12*time.Hour, zerolog.Nop())

	sess := m.Create("root", "opaque-token", "refresh")
	if sess.ID == "" {
		t.Fatal("expected a session id")
	}

	got, err := m.Get(sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "root" || got.AccessToken != "opaque-token" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if _, err := m.Get("unknown"); !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExpiryFromTokenClaimCappedByTTL(t *testing.T) {
	m := NewManager("sid", "", 12*time.Hour, zerolog.Nop())

	soon := time.Now().Add(30 * time.Minute)
	sess := m.Create("root", signedToken(t, soon), "")
	if sess.ExpiresAt.Sub(soon) > time.Second || soon.Sub(sess.ExpiresAt) > time.Second {
		t.Fatalf("expected expiry near token exp %v, got %v", soon, sess.ExpiresAt)
	}

	// a token outliving the TTL must not extend the session
	far := time.Now().Add(100 * time.Hour)
	sess = m.Create("root", signedToken(t, far), "")
	if sess.ExpiresAt.After(time.Now().Add(12*time.Hour + time.Minute)) {
		t.Fatalf("expiry exceeds TTL cap: %v", sess.ExpiresAt)
	}
}

func TestExpiredSessionIsDropped(t *testing.T) {
	m := NewManager("sid", "", 12*time.Hour, zerolog.Nop())
	sess := m.Create("root", "tok", "")

	m.now = func() time.Time { return time.Now().Add(13 * time.Hour) }

	if _, err := m.Get(sess.ID); !errors.Is(err, apperrors.ErrSessionExpired) {
		t.Fatalf("expected expired, got %v", err)
	}
	if m.Count() != 0 {
		t.Fatalf("expired session should be removed, count %d", m.Count())
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "sessions.json")

	first := NewManager("sid", statePath, 12*time.Hour, zerolog.Nop())
	kept := first.Create("root", "tok", "ref")
	gone := first.Create("aide", "tok2", "")
	first.Delete(gone.ID)

	second := NewManager("sid", statePath, 12*time.Hour, zerolog.Nop())
	if second.Count() != 1 {
		t.Fatalf("expected one restored session, got %d", second.Count())
	}
	got, err := second.Get(kept.ID)
	if err != nil {
		t.Fatalf("restored session not found: %v", err)
	}
	if got.Username != "root" || got.RefreshToken != "ref" {
		t.Fatalf("restored session mangled: %+v", got)
	}
}

func TestLoadSkipsExpiredSessions(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "sessions.json")

	first := NewManager("sid", statePath, time.Minute, zerolog.Nop())
	first.Create("root", "tok", "")

	second := NewManager("sid", statePath, time.Minute, zerolog.Nop())
	second.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	// reload with the shifted clock
	second.sessions = map[string]*Session{}
	second.load()
	if second.Count() != 0 {
		t.Fatalf("expired persisted session should be skipped, count %d", second.Count())
	}
}

func TestCorruptStateFileStartsEmpty(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "sessions.json")
	if err := os.WriteFile(statePath, []byte("not json"), 0o600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	m := NewManager("sid", statePath, time.Hour, zerolog.Nop())
	if m.Count() != 0 {
		t.Fatalf("corrupt state should start empty, count %d", m.Count())
	}
}
