package view

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NordCoder/upwatch/internal/domain/analytics"
	"github.com/NordCoder/upwatch/internal/domain/check"
	"github.com/NordCoder/upwatch/internal/domain/endpoint"
	"github.com/NordCoder/upwatch/internal/domain/session"
	"github.com/NordCoder/upwatch/internal/domain/user"
	"github.com/NordCoder/upwatch/internal/gateway"
	"github.com/NordCoder/upwatch/internal/repository/memory"
	sessionstore "github.com/NordCoder/upwatch/internal/session"
)

// fakeBackend answers through per-operation funcs; unset ones return zero values.
type fakeBackend struct {
	mu    sync.Mutex
	calls []gateway.Op

	authenticate   func(username, password string) (session.Credentials, error)
	register       func(username, password, email string) (session.Credentials, error)
	fetchSelf      func(token string) (user.User, error)
	listEndpoints  func(ctx context.Context, status endpoint.StatusFilter) ([]endpoint.Endpoint, error)
	getEndpoint    func(ctx context.Context, id int64) (endpoint.Endpoint, error)
	createEndpoint func(in endpoint.Create) (endpoint.Endpoint, error)
	updateEndpoint func(id int64, patch endpoint.Patch) (endpoint.Endpoint, error)
	deleteEndpoint func(id int64) error
	listChecks     func(ctx context.Context, id int64, opts check.ListOptions) ([]check.Result, error)
	runCheckNow    func(id int64) (check.Result, error)
	dashboardStats func(ctx context.Context, endpointID int64) (analytics.DashboardStats, error)
	analytics      func(ctx context.Context, q analytics.Query) (analytics.Report, error)
}

func (f *fakeBackend) record(op gateway.Op) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeBackend) Calls() []gateway.Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gateway.Op(nil), f.calls...)
}

func (f *fakeBackend) Authenticate(_ context.Context, username, password string) (session.Credentials, error) {
	f.record(gateway.OpAuthenticate)
	if f.authenticate == nil {
		return session.Credentials{}, nil
	}
	return f.authenticate(username, password)
}

func (f *fakeBackend) Register(_ context.Context, username, password, email string) (session.Credentials, error) {
	f.record(gateway.OpRegister)
	if f.register == nil {
		return session.Credentials{}, nil
	}
	return f.register(username, password, email)
}

func (f *fakeBackend) FetchSelf(_ context.Context, token string) (user.User, error) {
	f.record(gateway.OpFetchSelf)
	if f.fetchSelf == nil {
		return user.User{}, nil
	}
	return f.fetchSelf(token)
}

func (f *fakeBackend) ListEndpoints(ctx context.Context, _ string, status endpoint.StatusFilter) ([]endpoint.Endpoint, error) {
	f.record(gateway.OpListEndpoints)
	if f.listEndpoints == nil {
		return nil, nil
	}
	return f.listEndpoints(ctx, status)
}

func (f *fakeBackend) GetEndpoint(ctx context.Context, _ string, id int64) (endpoint.Endpoint, error) {
	f.record(gateway.OpGetEndpoint)
	if f.getEndpoint == nil {
		return endpoint.Endpoint{ID: id}, nil
	}
	return f.getEndpoint(ctx, id)
}

func (f *fakeBackend) CreateEndpoint(_ context.Context, _ string, in endpoint.Create) (endpoint.Endpoint, error) {
	f.record(gateway.OpCreateEndpoint)
	if f.createEndpoint == nil {
		return endpoint.Endpoint{}, nil
	}
	return f.createEndpoint(in)
}

func (f *fakeBackend) UpdateEndpoint(_ context.Context, _ string, id int64, patch endpoint.Patch) (endpoint.Endpoint, error) {
	f.record(gateway.OpUpdateEndpoint)
	if f.updateEndpoint == nil {
		return endpoint.Endpoint{ID: id}, nil
	}
	return f.updateEndpoint(id, patch)
}

func (f *fakeBackend) DeleteEndpoint(_ context.Context, _ string, id int64) error {
	f.record(gateway.OpDeleteEndpoint)
	if f.deleteEndpoint == nil {
		return nil
	}
	return f.deleteEndpoint(id)
}

func (f *fakeBackend) ListChecks(ctx context.Context, _ string, id int64, opts check.ListOptions) ([]check.Result, error) {
	f.record(gateway.OpListChecks)
	if f.listChecks == nil {
		return nil, nil
	}
	return f.listChecks(ctx, id, opts)
}

func (f *fakeBackend) RunCheckNow(_ context.Context, _ string, id int64) (check.Result, error) {
	f.record(gateway.OpRunCheckNow)
	if f.runCheckNow == nil {
		return check.Result{}, nil
	}
	return f.runCheckNow(id)
}

func (f *fakeBackend) DashboardStats(ctx context.Context, _ string, endpointID int64) (analytics.DashboardStats, error) {
	f.record(gateway.OpDashboardStats)
	if f.dashboardStats == nil {
		return analytics.DashboardStats{}, nil
	}
	return f.dashboardStats(ctx, endpointID)
}

func (f *fakeBackend) Analytics(ctx context.Context, _ string, q analytics.Query) (analytics.Report, error) {
	f.record(gateway.OpAnalytics)
	if f.analytics == nil {
		return analytics.Report{}, nil
	}
	return f.analytics(ctx, q)
}

type fakeNav struct {
	logins     atomic.Int32
	dashboards atomic.Int32
}

func (n *fakeNav) RedirectToLogin() { n.logins.Add(1) }
func (n *fakeNav) ShowDashboard()   { n.dashboards.Add(1) }

type fixture struct {
	backend *fakeBackend
	store   *sessionstore.Store
	nav     *fakeNav
	deps    Deps
	now     *time.Time
}

var alice = user.User{ID: 1, Username: "alice", Email: "alice@example.com"}

// newFixture returns controllers' dependencies over a restored session
// holding token "tok".
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := newAnonymousFixture(t)
	require.NoError(t, f.store.Login(context.Background(), "tok", alice))
	return f
}

// newAnonymousFixture returns dependencies over a restored, empty session.
func newAnonymousFixture(t *testing.T) *fixture {
	t.Helper()
	f := newUnrestoredFixture(t)
	f.store.Restore(context.Background())
	return f
}

func newUnrestoredFixture(t *testing.T) *fixture {
	t.Helper()
	backend := &fakeBackend{}
	store := sessionstore.NewStore(memory.NewSessionStorage(), zap.NewNop())
	nav := &fakeNav{}
	now := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	f := &fixture{backend: backend, store: store, nav: nav, now: &now}
	f.deps = Deps{
		Backend: backend,
		Guard:   NewAuthGuard(store, nav, zap.NewNop()),
		Log:     zap.NewNop(),
		Now:     func() time.Time { return *f.now },
	}
	return f
}

func unauthorized(op gateway.Op) error {
	return fmt.Errorf("%s: %w", op, gateway.ErrUnauthorized)
}

func failure(op gateway.Op, msg string) error {
	return &gateway.RequestError{Op: op, Status: 500, Message: msg}
}

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)
