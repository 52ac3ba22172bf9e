package session

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("no persisted session")

// Storage is the durable side of the session store. Load returns ErrNotFound
// when nothing has been persisted.
type Storage interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}
