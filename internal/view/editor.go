package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/NordCoder/upwatch/internal/domain/endpoint"
	"github.com/NordCoder/upwatch/internal/gateway"
)

// Editor creates, updates and deletes endpoints. Input is validated before
// any request is made; success returns the user to the dashboard.
type Editor struct {
	deps Deps
	nav  Navigator
	log  *zap.Logger
}

func NewEditor(deps Deps, nav Navigator) *Editor {
	return &Editor{deps: deps, nav: nav, log: deps.logger("editor")}
}

// Create sends in with the interval defaulted to DefaultIntervalMinutes when unset.
func (e *Editor) Create(ctx context.Context, in endpoint.Create) (endpoint.Endpoint, error) {
	if in.IntervalMinutes == nil {
		m := endpoint.DefaultIntervalMinutes
		in.IntervalMinutes = &m
	}
	if err := validateForm(in); err != nil {
		return endpoint.Endpoint{}, err
	}
	var out endpoint.Endpoint
	err := e.run(ctx, func(ctx context.Context, token string) (err error) {
		out, err = e.deps.Backend.CreateEndpoint(ctx, token, in)
		return err
	})
	if err != nil {
		return endpoint.Endpoint{}, err
	}
	e.log.Info("endpoint created", zap.Int64("endpoint_id", out.ID))
	return out, nil
}

func (e *Editor) Update(ctx context.Context, id int64, patch endpoint.Patch) (endpoint.Endpoint, error) {
	if patch.Empty() {
		return endpoint.Endpoint{}, &FormError{Message: "Nothing to update"}
	}
	if err := validateForm(patch); err != nil {
		return endpoint.Endpoint{}, err
	}
	var out endpoint.Endpoint
	err := e.run(ctx, func(ctx context.Context, token string) (err error) {
		out, err = e.deps.Backend.UpdateEndpoint(ctx, token, id, patch)
		return err
	})
	if err != nil {
		return endpoint.Endpoint{}, err
	}
	return out, nil
}

func (e *Editor) Delete(ctx context.Context, id int64) error {
	err := e.run(ctx, func(ctx context.Context, token string) error {
		return e.deps.Backend.DeleteEndpoint(ctx, token, id)
	})
	if err != nil {
		return err
	}
	e.log.Info("endpoint deleted", zap.Int64("endpoint_id", id))
	return nil
}

func (e *Editor) run(ctx context.Context, fn func(ctx context.Context, token string) error) error {
	token, ok := e.deps.Guard.Require()
	if !ok {
		return ErrNoSession
	}
	err := fn(ctx, token)
	switch outcome, msg := gateway.Classify(err); outcome {
	case gateway.OutcomeUnauthorized:
		e.deps.Guard.Expired(ctx, token)
		return ErrSessionExpired
	case gateway.OutcomeFailure:
		return &FormError{Message: msg, Err: err}
	}
	e.nav.ShowDashboard()
	return nil
}
