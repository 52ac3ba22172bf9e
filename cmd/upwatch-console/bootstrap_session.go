package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	config "github.com/NordCoder/upwatch/internal/config/console"
	domainsession "github.com/NordCoder/upwatch/internal/domain/session"
	"github.com/NordCoder/upwatch/internal/repository/badgerstore"
	"github.com/NordCoder/upwatch/internal/repository/memory"
)

type sessionStorage interface {
	domainsession.Storage
	Ping(ctx context.Context) error
}

func initSessionStorage(cfg *config.Config, logger *zap.Logger) (sessionStorage, func() error, error) {
	switch cfg.Session.Store {
	case "memory":
		logger.Debug("session kept in memory")
		return memory.NewSessionStorage(), func() error { return nil }, nil
	case "badger":
		s, err := badgerstore.Open(cfg.Session.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("session store opened", zap.String("path", cfg.Session.Path))
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("session store %q: %w", cfg.Session.Store, config.ErrUnknownStore)
	}
}
