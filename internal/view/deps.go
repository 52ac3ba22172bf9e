package view

import (
	"time"

	"go.uber.org/zap"

	"github.com/NordCoder/upwatch/internal/obs"
)

// Deps is what every controller is built from.
type Deps struct {
	Backend Backend
	Guard   *AuthGuard
	Log     *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) logger(view string) *zap.Logger {
	return obs.Component(d.Log, "view").With(zap.String("view", view))
}
