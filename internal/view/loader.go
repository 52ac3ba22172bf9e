package view

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/NordCoder/upwatch/internal/gateway"
)

type fetchFunc[T any] func(ctx context.Context, token string) (T, error)

// loader is the state machine shared by every view. Each start bumps the
// generation; a result commits only if its generation is still the latest.
// Superseded requests keep running and their results, including 401s, are
// dropped.
type loader[T any] struct {
	view  string
	guard *AuthGuard
	log   *zap.Logger

	mu    sync.Mutex
	state State[T]

	wg sync.WaitGroup
}

func newLoader[T any](view string, guard *AuthGuard, log *zap.Logger) *loader[T] {
	return &loader[T]{view: view, guard: guard, log: log}
}

func (l *loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Wait blocks until every load and action started so far has resolved.
func (l *loader[T]) Wait() { l.wg.Wait() }

// start begins a load and returns its generation, or 0 when no call was made.
func (l *loader[T]) start(ctx context.Context, fetch fetchFunc[T]) uint64 {
	token, ok := l.guard.Require()
	if !ok {
		return 0
	}

	l.mu.Lock()
	l.state.Generation++
	gen := l.state.Generation
	l.state.Status = StatusLoading
	l.state.Error = ""
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		data, err := fetch(ctx, token)
		l.resolve(ctx, gen, token, data, err)
	}()
	return gen
}

func (l *loader[T]) resolve(ctx context.Context, gen uint64, token string, data T, err error) {
	outcome, msg := gateway.Classify(err)

	l.mu.Lock()
	if gen != l.state.Generation {
		l.mu.Unlock()
		loadsTotal.WithLabelValues(l.view, "stale").Inc()
		l.log.Debug("stale result dropped", zap.Uint64("generation", gen))
		return
	}
	switch outcome {
	case gateway.OutcomeSuccess:
		l.state.Status = StatusLoaded
		l.state.Data = data
		l.state.HasData = true
		l.state.Error = ""
	case gateway.OutcomeFailure:
		l.state.Status = StatusErrored
		l.state.Error = msg
	case gateway.OutcomeUnauthorized:
		l.state.Status = StatusIdle
		l.state.Error = ""
	}
	l.mu.Unlock()

	switch outcome {
	case gateway.OutcomeSuccess:
		loadsTotal.WithLabelValues(l.view, "loaded").Inc()
	case gateway.OutcomeFailure:
		loadsTotal.WithLabelValues(l.view, "errored").Inc()
		l.log.Info("load failed", zap.Uint64("generation", gen), zap.String("message", msg), zap.Error(err))
	case gateway.OutcomeUnauthorized:
		loadsTotal.WithLabelValues(l.view, "unauthorized").Inc()
		l.guard.Expired(ctx, token)
	}
}

// action runs fn beside the load cycle, publishing its pending flag and error.
// then runs after fn unless fn hit a 401.
func (l *loader[T]) action(ctx context.Context, fn func(ctx context.Context, token string) error, then func()) bool {
	token, ok := l.guard.Require()
	if !ok {
		return false
	}

	l.mu.Lock()
	l.state.ActionPending = true
	l.state.ActionError = ""
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		err := fn(ctx, token)
		outcome, msg := gateway.Classify(err)

		l.mu.Lock()
		l.state.ActionPending = false
		if outcome == gateway.OutcomeFailure {
			l.state.ActionError = msg
		}
		l.mu.Unlock()

		if outcome == gateway.OutcomeUnauthorized {
			l.guard.Expired(ctx, token)
			return
		}
		if outcome == gateway.OutcomeFailure {
			l.log.Info("action failed", zap.String("message", msg), zap.Error(err))
		}
		if then != nil {
			then()
		}
	}()
	return true
}

// both runs two calls concurrently and waits for both. An Unauthorized from
// either side wins; otherwise the first failure to arrive is returned.
func both[A, B any](ctx context.Context, fa func(context.Context) (A, error), fb func(context.Context) (B, error)) (A, B, error) {
	var (
		a    A
		b    B
		errA error
		errB error
		g    errgroup.Group
	)
	g.Go(func() error {
		a, errA = fa(ctx)
		return errA
	})
	g.Go(func() error {
		b, errB = fb(ctx)
		return errB
	})
	first := g.Wait()

	switch {
	case errors.Is(errA, gateway.ErrUnauthorized):
		return a, b, errA
	case errors.Is(errB, gateway.ErrUnauthorized):
		return a, b, errB
	}
	return a, b, first
}
