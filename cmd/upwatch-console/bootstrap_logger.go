package main

import (
	"go.uber.org/zap"

	config "github.com/NordCoder/upwatch/internal/config/console"
	"github.com/NordCoder/upwatch/internal/obs"
)

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return obs.NewLogger(cfg.AsLoggerConfig())
}
