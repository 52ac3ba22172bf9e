package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NordCoder/upwatch/internal/domain/user"
	"github.com/NordCoder/upwatch/internal/gateway"
	"github.com/NordCoder/upwatch/internal/repository/memory"
	"github.com/NordCoder/upwatch/internal/session"
	"github.com/NordCoder/upwatch/internal/view"
)

func newTestApp(t *testing.T, h http.HandlerFunc) (*app, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	log := zap.NewNop()
	store := session.NewStore(memory.NewSessionStorage(), log)
	store.Restore(context.Background())
	nav := &consoleNav{log: log}
	out := &bytes.Buffer{}
	return &app{
		deps: view.Deps{
			Backend: gateway.New(gateway.Config{BaseURL: srv.URL}, srv.Client(), log),
			Guard:   view.NewAuthGuard(store, nav, log),
			Log:     log,
		},
		store: store,
		nav:   nav,
		log:   log,
		out:   out,
	}, out
}

func parse(t *testing.T, args ...string) *options {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o := bindOptions(fs)
	require.NoError(t, fs.Parse(args))
	o.changed = fs.Changed
	return o
}

func TestDispatch_DashboardNeedsLogin(t *testing.T) {
	a, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})

	code := a.dispatch(context.Background(), "dashboard", parse(t))

	assert.Equal(t, exitNoLogin, code)
	assert.Empty(t, out.String())
}

func TestDispatch_LoginThenDashboard(t *testing.T) {
	a, out := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/auth/login/":
			_, _ = w.Write([]byte(`{"user":{"id":1,"username":"alice","email":""},"access":"acc","refresh":"ref"}`))
		case "/api/v1/dashboard/stats/":
			assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"total_endpoints":1,"up_count":1,"down_count":0,"uptime_pct_24h":99.5,"recent_checks":[]}`))
		case "/api/v1/endpoints/":
			assert.Equal(t, "up", r.URL.Query().Get("status"))
			_, _ = w.Write([]byte(`[{"id":1,"name":"api","url":"https://api.example","interval_minutes":5}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	require.Equal(t, exitOK, a.dispatch(context.Background(), "login", parse(t, "-u", "alice", "-p", "pw")))
	assert.Equal(t, "acc", a.store.Token())

	out.Reset()
	require.Equal(t, exitOK, a.dispatch(context.Background(), "dashboard", parse(t, "--status", "up")))

	var st view.State[view.DashboardData]
	require.NoError(t, json.Unmarshal(out.Bytes(), &st))
	assert.Equal(t, view.StatusLoaded, st.Status)
	assert.Equal(t, 1, st.Data.Stats.TotalEndpoints)
	require.Len(t, st.Data.Endpoints, 1)
	assert.Equal(t, "api", st.Data.Endpoints[0].Name)
}

func TestDispatch_UsageErrors(t *testing.T) {
	a, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, a.store.Login(context.Background(), "tok", user.User{ID: 1, Username: "alice"}))

	assert.Equal(t, exitUsage, a.dispatch(context.Background(), "detail", parse(t)))
	assert.Equal(t, exitUsage, a.dispatch(context.Background(), "dashboard", parse(t, "--status", "sideways")))
	assert.Equal(t, exitUsage, a.dispatch(context.Background(), "frobnicate", parse(t)))
}

func TestRun_UsageExitCodes(t *testing.T) {
	assert.Equal(t, exitUsage, run([]string{"--no-such-flag"}))
	assert.Equal(t, exitUsage, run(nil))
	assert.Equal(t, exitUsage, run([]string{"dashboard", "detail"}))
}
