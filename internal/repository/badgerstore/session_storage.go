package badgerstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/NordCoder/upwatch/internal/domain/session"
)

const (
	tokenKey = "session:token"
	userKey  = "session:user"
)

var _ session.Storage = (*SessionStorage)(nil)

// SessionStorage persists the console session in a local BadgerDB so it
// survives process restarts. Token and user live under separate keys and are
// always written in one transaction.
type SessionStorage struct {
	db *badger.DB
}

func Open(path string) (*SessionStorage, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for session: %w", err)
	}
	return &SessionStorage{db: db}, nil
}

// OpenInMemory opens a throwaway database, used by tests.
func OpenInMemory() (*SessionStorage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger db: %w", err)
	}
	return &SessionStorage{db: db}, nil
}

func (s *SessionStorage) Close() error { return s.db.Close() }

func (s *SessionStorage) Load(ctx context.Context) (session.Session, error) {
	var out session.Session

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tokenKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return session.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get token: %w", err)
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		out.Token = string(raw)

		item, err = txn.Get([]byte(userKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &out.User); err != nil {
				return fmt.Errorf("unmarshal user: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return session.Session{Token: out.Token}, err
	}
	return out, nil
}

func (s *SessionStorage) Save(ctx context.Context, sess session.Session) error {
	var userData []byte
	if sess.User != nil {
		data, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		userData = data
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(tokenKey), []byte(sess.Token)); err != nil {
			return fmt.Errorf("set token: %w", err)
		}
		if userData == nil {
			if err := txn.Delete([]byte(userKey)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete user: %w", err)
			}
			return nil
		}
		if err := txn.Set([]byte(userKey), userData); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		return nil
	})
}

func (s *SessionStorage) Clear(ctx context.Context) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, k := range []string{tokenKey, userKey} {
			if err := txn.Delete([]byte(k)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete %s: %w", k, err)
			}
		}
		return nil
	})
}

// Ping reports whether the underlying database is still usable.
func (s *SessionStorage) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("session db closed")
	}
	return nil
}
