package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by a Store when the session is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Record is the server-side state of a login session.
type Record struct {
	UserID    string
	ExpiresAt time.Time
}

// Store persists session records keyed by session id.
type Store interface {
	Save(ctx context.Context, sid string, rec Record) error
	Load(ctx context.Context, sid string) (Record, error)
	Delete(ctx context.Context, sid string) error
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Record
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Record), now: time.Now}
}

func (m *MemoryStore) Save(_ context.Context, sid string, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sid] = rec
	return nil
}

func (m *MemoryStore) Load(_ context.Context, sid string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.sessions[sid]
	if !ok {
		return Record{}, ErrNotFound
	}
	if !m.now().Before(rec.ExpiresAt) {
		delete(m.sessions, sid)
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	return nil
}

// Purge removes expired sessions and reports how many were dropped.
func (m *MemoryStore) Purge(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	var n int64
	for sid, rec := range m.sessions {
		if !now.Before(rec.ExpiresAt) {
			delete(m.sessions, sid)
			n++
		}
	}
	return n, nil
}
