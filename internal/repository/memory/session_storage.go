package memory

import (
	"context"
	"sync"

	"github.com/NordCoder/upwatch/internal/domain/session"
)

var _ session.Storage = (*SessionStorage)(nil)

// SessionStorage keeps the session for the lifetime of the process only.
type SessionStorage struct {
	mu    sync.RWMutex
	saved *session.Session
}

func NewSessionStorage() *SessionStorage { return &SessionStorage{} }

func (s *SessionStorage) Load(ctx context.Context) (session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.saved == nil {
		return session.Session{}, session.ErrNotFound
	}
	return copySession(*s.saved), nil
}

func (s *SessionStorage) Save(ctx context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := copySession(sess)
	s.saved = &cp
	return nil
}

func (s *SessionStorage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = nil
	return nil
}

func (s *SessionStorage) Ping(ctx context.Context) error { return nil }

func copySession(in session.Session) session.Session {
	out := session.Session{Token: in.Token}
	if in.User != nil {
		u := *in.User
		out.User = &u
	}
	return out
}
