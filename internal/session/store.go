package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	domainsession "github.com/NordCoder/upwatch/internal/domain/session"
	"github.com/NordCoder/upwatch/internal/domain/user"
	"github.com/NordCoder/upwatch/internal/obs"
)

var ErrEmptyToken = errors.New("empty access token")

var mutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "session_mutations_total",
	Help: "Session store mutations by operation.",
}, []string{"op"})

// Store holds the console's authentication state. Every mutation writes the
// durable storage before touching memory, so a failed write never leaves the
// in-memory session ahead of what the next Restore would read. Mutations are
// serialized by wmu across both writes; mu only guards the in-memory copy.
type Store struct {
	storage domainsession.Storage
	log     *zap.Logger

	wmu      sync.Mutex
	mu       sync.RWMutex
	current  domainsession.Session
	restored bool
}

func NewStore(storage domainsession.Storage, log *zap.Logger) *Store {
	return &Store{storage: storage, log: obs.Component(log, "session")}
}

// Restore loads the persisted session. Missing or unreadable state yields an
// empty session; the failure is logged and never returned.
func (s *Store) Restore(ctx context.Context) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	loaded, err := s.storage.Load(ctx)
	switch {
	case errors.Is(err, domainsession.ErrNotFound):
		loaded = domainsession.Session{}
		s.log.Debug("no persisted session")
	case err != nil:
		s.log.Warn("discarding unreadable session", zap.Error(err))
		loaded = domainsession.Session{}
		if cerr := s.storage.Clear(ctx); cerr != nil {
			s.log.Warn("clear unreadable session", zap.Error(cerr))
		}
	case loaded.Token == "":
		loaded = domainsession.Session{}
	}

	s.mu.Lock()
	s.current = clone(loaded)
	s.restored = true
	s.mu.Unlock()

	mutations.WithLabelValues("restore").Inc()
	s.log.Debug("session restored", zap.Bool("authenticated", !loaded.Empty()))
}

// Restored distinguishes "still restoring" from "confirmed logged out".
func (s *Store) Restored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restored
}

func (s *Store) Login(ctx context.Context, token string, u user.User) error {
	if token == "" {
		return ErrEmptyToken
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()

	next := domainsession.Session{Token: token, User: &u}
	if err := s.storage.Save(ctx, next); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = clone(next)
	s.restored = true
	s.mu.Unlock()

	mutations.WithLabelValues("login").Inc()
	s.log.Info("logged in", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	return nil
}

// Logout always empties the in-memory session, even when clearing the durable
// copy fails; that error is returned so callers can report it. Calling it on
// an empty session is a no-op apart from the storage clear.
func (s *Store) Logout(ctx context.Context) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	err := s.storage.Clear(ctx)

	s.mu.Lock()
	wasAuthenticated := !s.current.Empty()
	s.current = domainsession.Session{}
	s.mu.Unlock()

	mutations.WithLabelValues("logout").Inc()
	if wasAuthenticated {
		s.log.Info("logged out")
	}
	if err != nil {
		s.log.Warn("clear persisted session", zap.Error(err))
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// UpdateUser replaces the cached profile and keeps the token. Without a token
// it is a no-op, so a late update cannot bring back a session that was logged
// out meanwhile.
func (s *Store) UpdateUser(ctx context.Context, u user.User) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	next := s.Snapshot()
	if next.Token == "" {
		s.log.Debug("user update without session ignored", zap.Int64("user_id", u.ID))
		return nil
	}
	next.User = &u

	if err := s.storage.Save(ctx, next); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	mutations.WithLabelValues("update_user").Inc()
	return nil
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() domainsession.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.current)
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

func clone(in domainsession.Session) domainsession.Session {
	out := domainsession.Session{Token: in.Token}
	if in.User != nil {
		u := *in.User
		out.User = &u
	}
	return out
}
