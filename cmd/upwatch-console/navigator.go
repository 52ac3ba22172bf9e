package main

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// consoleNav records where the views asked to go; the command decides what
// to do with it once the work is done.
type consoleNav struct {
	log     *zap.Logger
	toLogin atomic.Bool
}

func (n *consoleNav) RedirectToLogin() {
	n.toLogin.Store(true)
	n.log.Debug("redirect to login")
}

func (n *consoleNav) ShowDashboard() {
	n.log.Debug("show dashboard")
}
