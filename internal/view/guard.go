package view

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// AuthGuard turns an Unauthorized outcome into logout plus a single redirect.
// It is shared by every controller bound to the same session.
type AuthGuard struct {
	session Session
	nav     Navigator
	log     *zap.Logger

	mu sync.Mutex
}

func NewAuthGuard(s Session, nav Navigator, log *zap.Logger) *AuthGuard {
	return &AuthGuard{session: s, nav: nav, log: log}
}

// Expired handles a 401 received for a request made with token. When the
// session no longer holds that token, someone already logged out or logged in
// again, and the failure is absorbed without a second redirect.
func (g *AuthGuard) Expired(ctx context.Context, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if current := g.session.Token(); current == "" || current != token {
		g.log.Debug("unauthorized response for a replaced session ignored")
		return
	}
	if err := g.session.Logout(ctx); err != nil {
		g.log.Warn("logout after unauthorized", zap.Error(err))
	}
	g.log.Info("session rejected by backend, redirecting to login")
	g.nav.RedirectToLogin()
}

// Require reports whether a view may issue calls. A restored but empty
// session sends the user to login; before restore completes nothing happens.
func (g *AuthGuard) Require() (token string, ok bool) {
	if !g.session.Restored() {
		return "", false
	}
	token = g.session.Token()
	if token == "" {
		g.nav.RedirectToLogin()
		return "", false
	}
	return token, true
}
