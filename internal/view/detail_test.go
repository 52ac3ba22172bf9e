package view

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordCoder/upwatch/internal/domain/check"
	"github.com/NordCoder/upwatch/internal/domain/endpoint"
	"github.com/NordCoder/upwatch/internal/gateway"
)

func TestDetail_LoadUsesSinceAndLimit(t *testing.T) {
	f := newFixture(t)
	var (
		mu   sync.Mutex
		seen []check.ListOptions
	)
	f.backend.listChecks = func(_ context.Context, id int64, opts check.ListOptions) ([]check.Result, error) {
		assert.Equal(t, int64(4), id)
		mu.Lock()
		seen = append(seen, opts)
		mu.Unlock()
		return []check.Result{{ID: 1, Success: true}}, nil
	}
	d := NewDetail(f.deps, 4)

	d.Load(context.Background())
	d.Wait()
	_, err := d.SetSince(context.Background(), check.Since24h)
	require.NoError(t, err)
	d.Wait()

	require.Len(t, seen, 2)
	assert.Equal(t, check.DefaultHistoryLimit, seen[0].Limit)
	assert.True(t, seen[0].Since.IsZero())
	assert.Equal(t, f.now.Add(-24*time.Hour), seen[1].Since)

	st := d.State()
	assert.Equal(t, StatusLoaded, st.Status)
	assert.Equal(t, int64(4), st.Data.Endpoint.ID)
	assert.Len(t, st.Data.Checks, 1)
}

func TestDetail_EndpointFailureErrorsWholeView(t *testing.T) {
	f := newFixture(t)
	f.backend.getEndpoint = func(context.Context, int64) (endpoint.Endpoint, error) {
		return endpoint.Endpoint{}, failure(gateway.OpGetEndpoint, "Not found.")
	}
	d := NewDetail(f.deps, 4)

	d.Load(context.Background())
	d.Wait()

	st := d.State()
	assert.Equal(t, StatusErrored, st.Status)
	assert.Equal(t, "Not found.", st.Error)
	assert.False(t, st.HasData)
}

func TestDetail_ChecksFailureErrorsWholeView(t *testing.T) {
	f := newFixture(t)
	f.backend.listChecks = func(context.Context, int64, check.ListOptions) ([]check.Result, error) {
		return nil, failure(gateway.OpListChecks, "Failed to fetch checks")
	}
	d := NewDetail(f.deps, 4)

	d.Load(context.Background())
	d.Wait()

	st := d.State()
	assert.Equal(t, StatusErrored, st.Status)
	assert.Equal(t, "Failed to fetch checks", st.Error)
	assert.False(t, st.HasData)
	assert.Zero(t, st.Data.Endpoint.ID)
}

func TestDetail_ChecksUnauthorizedRedirectsOnce(t *testing.T) {
	f := newFixture(t)
	f.backend.listChecks = func(context.Context, int64, check.ListOptions) ([]check.Result, error) {
		return nil, unauthorized(gateway.OpListChecks)
	}
	d := NewDetail(f.deps, 4)

	d.Load(context.Background())
	d.Wait()

	st := d.State()
	assert.Equal(t, StatusIdle, st.Status)
	assert.False(t, st.HasData)
	assert.True(t, f.store.Snapshot().Empty())
	assert.Equal(t, int32(1), f.nav.logins.Load())
}

func TestDetail_InvalidSince(t *testing.T) {
	f := newFixture(t)
	d := NewDetail(f.deps, 4)

	_, err := d.SetSince(context.Background(), "1y")
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Equal(t, check.SinceAll, d.Since())
}

func TestDetail_RunCheckNow(t *testing.T) {
	t.Run("reloads after success", func(t *testing.T) {
		f := newFixture(t)
		d := NewDetail(f.deps, 4)

		require.True(t, d.RunCheckNow(context.Background()))
		d.Wait()

		calls := f.backend.Calls()
		require.Len(t, calls, 3)
		assert.Equal(t, gateway.OpRunCheckNow, calls[0])
		assert.ElementsMatch(t, []gateway.Op{gateway.OpGetEndpoint, gateway.OpListChecks}, calls[1:])
		st := d.State()
		assert.Equal(t, StatusLoaded, st.Status)
		assert.False(t, st.ActionPending)
		assert.Empty(t, st.ActionError)
	})

	t.Run("reloads after failure and reports it", func(t *testing.T) {
		f := newFixture(t)
		f.backend.runCheckNow = func(int64) (check.Result, error) {
			return check.Result{}, failure(gateway.OpRunCheckNow, "Failed to run check")
		}
		d := NewDetail(f.deps, 4)

		d.RunCheckNow(context.Background())
		d.Wait()

		st := d.State()
		assert.Equal(t, StatusLoaded, st.Status)
		assert.Equal(t, "Failed to run check", st.ActionError)
		assert.Empty(t, st.Error)
		assert.Len(t, f.backend.Calls(), 3)
	})

	t.Run("unauthorized stops", func(t *testing.T) {
		f := newFixture(t)
		f.backend.runCheckNow = func(int64) (check.Result, error) {
			return check.Result{}, unauthorized(gateway.OpRunCheckNow)
		}
		d := NewDetail(f.deps, 4)

		d.RunCheckNow(context.Background())
		d.Wait()

		assert.Equal(t, []gateway.Op{gateway.OpRunCheckNow}, f.backend.Calls())
		assert.Equal(t, int32(1), f.nav.logins.Load())
		assert.True(t, f.store.Snapshot().Empty())
		assert.Empty(t, d.State().ActionError)
	})

	t.Run("needs a session", func(t *testing.T) {
		f := newAnonymousFixture(t)
		d := NewDetail(f.deps, 4)

		assert.False(t, d.RunCheckNow(context.Background()))
		assert.Empty(t, f.backend.Calls())
	})
}
