package view

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/NordCoder/upwatch/internal/gateway"
)

const msgInvalidCredentials = "Invalid credentials"

type loginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerForm struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// AuthFlow backs the login and signup forms. Unlike the data views, a 401
// here means bad credentials and is reported on the form.
type AuthFlow struct {
	deps    Deps
	session Session
	nav     Navigator
	log     *zap.Logger
}

func NewAuthFlow(deps Deps, s Session, nav Navigator) *AuthFlow {
	return &AuthFlow{deps: deps, session: s, nav: nav, log: deps.logger("auth")}
}

func (a *AuthFlow) Login(ctx context.Context, username, password string) error {
	if err := validateForm(loginForm{Username: username, Password: password}); err != nil {
		return err
	}
	creds, err := a.deps.Backend.Authenticate(ctx, username, password)
	if err != nil {
		return a.formError(err, msgInvalidCredentials)
	}
	if err := a.session.Login(ctx, creds.Access, creds.User); err != nil {
		return &FormError{Message: "Login failed", Err: err}
	}
	a.nav.ShowDashboard()
	return nil
}

func (a *AuthFlow) Register(ctx context.Context, username, password, email string) error {
	if err := validateForm(registerForm{Username: username, Password: password, Email: email}); err != nil {
		return err
	}
	creds, err := a.deps.Backend.Register(ctx, username, password, email)
	if err != nil {
		return a.formError(err, gateway.OpRegister.Fallback())
	}
	if err := a.session.Login(ctx, creds.Access, creds.User); err != nil {
		return &FormError{Message: "Registration failed", Err: err}
	}
	a.nav.ShowDashboard()
	return nil
}

// RefreshProfile re-reads the current user from the backend into the session.
func (a *AuthFlow) RefreshProfile(ctx context.Context) error {
	token, ok := a.deps.Guard.Require()
	if !ok {
		return ErrNoSession
	}
	u, err := a.deps.Backend.FetchSelf(ctx, token)
	switch outcome, msg := gateway.Classify(err); outcome {
	case gateway.OutcomeUnauthorized:
		a.deps.Guard.Expired(ctx, token)
		return ErrSessionExpired
	case gateway.OutcomeFailure:
		return &FormError{Message: msg, Err: err}
	}
	if err := a.session.UpdateUser(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (a *AuthFlow) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.nav.RedirectToLogin()
	return err
}

func (a *AuthFlow) formError(err error, unauthorizedMsg string) error {
	outcome, msg := gateway.Classify(err)
	if outcome == gateway.OutcomeUnauthorized {
		msg = unauthorizedMsg
	}
	a.log.Info("auth form rejected", zap.String("message", msg), zap.Error(err))
	return &FormError{Message: msg, Err: err}
}
