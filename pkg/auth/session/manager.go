package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leaderturk/property-management/pkg/auth"
	"github.com/leaderturk/property-management/pkg/config"
)

// ErrInvalidSession covers every reason a cookie does not resolve to a live session.
var ErrInvalidSession = errors.New("invalid session")

// Purger is implemented by stores that can drop expired sessions in bulk.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// Manager issues, resolves and destroys login sessions. The cookie carries a
// signed token naming the session; the store holds the authoritative record.
type Manager struct {
	store Store
	cfg   config.SessionConfig
	now   func() time.Time
}

func NewManager(store Store, cfg config.SessionConfig) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, cfg: cfg, now: time.Now}, nil
}

// Create starts a session for userID and returns the cookie token and its expiry.
func (m *Manager) Create(ctx context.Context, userID string) (string, time.Time, error) {
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, fmt.Errorf("user id is required")
	}
	now := m.now()
	sid := NewSessionID()
	expires := now.Add(m.cfg.TTL)

	token, err := auth.MintSessionToken(m.cfg, now, sid, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := m.store.Save(ctx, sid, Record{UserID: userID, ExpiresAt: expires}); err != nil {
		return "", time.Time{}, fmt.Errorf("saving session: %w", err)
	}
	return token, expires, nil
}

// Resolve returns the user id bound to a cookie token.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	sid, userID, err := m.parse(token)
	if err != nil {
		return "", err
	}
	rec, err := m.store.Load(ctx, sid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}
	if rec.UserID != userID || !m.now().Before(rec.ExpiresAt) {
		return "", ErrInvalidSession
	}
	return rec.UserID, nil
}

// Destroy removes the session named by token. Unknown or invalid tokens are ignored.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	sid, _, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, sid)
}

// Purge drops expired sessions when the store supports it.
func (m *Manager) Purge(ctx context.Context) (int64, error) {
	p, ok := m.store.(Purger)
	if !ok {
		return 0, nil
	}
	return p.Purge(ctx)
}

// TTL is the absolute lifetime of a session.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}

func (m *Manager) parse(token string) (string, string, error) {
	if strings.TrimSpace(token) == "" {
		return "", "", ErrInvalidSession
	}
	claims, err := auth.ParseSessionToken(m.cfg, token)
	if err != nil {
		return "", "", ErrInvalidSession
	}
	return claims.SessionID(), claims.UserID(), nil
}

// NewSessionID produces the opaque identifier used as JWT jti and store key.
func NewSessionID() string {
	return uuid.NewString()
}
