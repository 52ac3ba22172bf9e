package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/NordCoder/upwatch/internal/domain/analytics"
	"github.com/NordCoder/upwatch/internal/domain/check"
	"github.com/NordCoder/upwatch/internal/domain/endpoint"
	"github.com/NordCoder/upwatch/internal/session"
	"github.com/NordCoder/upwatch/internal/view"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	exitNoLogin = 3
)

type options struct {
	username string
	password string
	email    string

	endpointID int64
	status     string
	since      string
	checkNow   bool
	rangeName  string
	groupBy    string

	name     string
	url      string
	interval int

	changed func(name string) bool
}

func bindOptions(fs *pflag.FlagSet) *options {
	o := &options{}
	fs.StringVarP(&o.username, "username", "u", "", "account username")
	fs.StringVarP(&o.password, "password", "p", "", "account password")
	fs.StringVar(&o.email, "email", "", "account email (register)")
	fs.Int64VarP(&o.endpointID, "endpoint", "e", 0, "endpoint id")
	fs.StringVar(&o.status, "status", string(endpoint.StatusAll), "dashboard filter: all, up or down")
	fs.StringVar(&o.since, "since", string(check.SinceAll), "check history window: all, 24h or 7d")
	fs.BoolVar(&o.checkNow, "check-now", false, "run a check before printing the detail view")
	fs.StringVar(&o.rangeName, "range", string(analytics.Range7d), "analytics window: 7d or 30d")
	fs.StringVar(&o.groupBy, "group-by", string(analytics.GroupByDay), "analytics bucket: day or hour")
	fs.StringVar(&o.name, "name", "", "endpoint name")
	fs.StringVar(&o.url, "url", "", "endpoint URL")
	fs.IntVar(&o.interval, "interval", 0,
		fmt.Sprintf("check interval in minutes, one of %v (create defaults to %d)", endpoint.AllowedIntervals, endpoint.DefaultIntervalMinutes))
	return o
}

type app struct {
	deps  view.Deps
	store *session.Store
	nav   *consoleNav
	log   *zap.Logger
	out   io.Writer
}

func (a *app) dispatch(ctx context.Context, cmd string, o *options) int {
	var err error
	switch cmd {
	case "login":
		err = a.login(ctx, o)
	case "register":
		err = a.register(ctx, o)
	case "logout":
		err = view.NewAuthFlow(a.deps, a.store, a.nav).Logout(ctx)
		a.nav.toLogin.Store(false)
	case "whoami":
		err = a.whoami(ctx)
	case "dashboard":
		err = a.dashboard(ctx, o)
	case "detail":
		err = a.detail(ctx, o)
	case "analytics":
		err = a.analytics(ctx, o)
	case "create":
		err = a.create(ctx, o)
	case "update":
		err = a.update(ctx, o)
	case "delete":
		err = a.remove(ctx, o)
	default:
		a.log.Error("unknown command", zap.String("command", cmd))
		return exitUsage
	}

	switch {
	case a.nav.toLogin.Load():
		a.log.Warn("not logged in, run: upwatch-console login -u <user> -p <password>")
		return exitNoLogin
	case errors.Is(err, view.ErrInvalidFilter), errors.Is(err, errMissingEndpoint):
		a.log.Error("invalid arguments", zap.Error(err))
		return exitUsage
	case err != nil:
		a.log.Error(cmd+" failed", zap.Error(err))
		return exitFailed
	}
	return exitOK
}

var errMissingEndpoint = errors.New("--endpoint is required")

func (a *app) login(ctx context.Context, o *options) error {
	if err := view.NewAuthFlow(a.deps, a.store, a.nav).Login(ctx, o.username, o.password); err != nil {
		return err
	}
	return a.print(a.store.Snapshot().User)
}

func (a *app) register(ctx context.Context, o *options) error {
	if err := view.NewAuthFlow(a.deps, a.store, a.nav).Register(ctx, o.username, o.password, o.email); err != nil {
		return err
	}
	return a.print(a.store.Snapshot().User)
}

func (a *app) whoami(ctx context.Context) error {
	if err := view.NewAuthFlow(a.deps, a.store, a.nav).RefreshProfile(ctx); err != nil {
		if errors.Is(err, view.ErrNoSession) || errors.Is(err, view.ErrSessionExpired) {
			return nil
		}
		return err
	}
	return a.print(a.store.Snapshot().User)
}

func (a *app) dashboard(ctx context.Context, o *options) error {
	d := view.NewDashboard(a.deps)
	if _, err := d.SetFilter(ctx, view.DashboardFilter{
		Status:     endpoint.StatusFilter(o.status),
		EndpointID: o.endpointID,
	}); err != nil {
		return err
	}
	d.Wait()
	return printState(a, d.State())
}

func (a *app) detail(ctx context.Context, o *options) error {
	if o.endpointID == 0 {
		return errMissingEndpoint
	}
	d := view.NewDetail(a.deps, o.endpointID)
	if _, err := d.SetSince(ctx, check.Since(o.since)); err != nil {
		return err
	}
	d.Wait()
	if o.checkNow && d.State().Status != view.StatusIdle {
		d.RunCheckNow(ctx)
		d.Wait()
	}
	return printState(a, d.State())
}

func (a *app) analytics(ctx context.Context, o *options) error {
	an := view.NewAnalytics(a.deps)
	an.LoadOptions(ctx)
	if _, err := an.SetFilter(ctx, view.AnalyticsFilter{
		EndpointID: o.endpointID,
		Range:      analytics.Range(o.rangeName),
		GroupBy:    analytics.GroupBy(o.groupBy),
	}); err != nil {
		an.Wait()
		return err
	}
	an.Wait()
	st := an.State()
	type output struct {
		Endpoints []endpoint.Endpoint          `json:"endpoints"`
		Report    view.State[analytics.Report] `json:"report"`
	}
	if err := a.print(output{Endpoints: an.Options(), Report: st}); err != nil {
		return err
	}
	return stateErr(st.Error)
}

func (a *app) create(ctx context.Context, o *options) error {
	in := endpoint.Create{Name: o.name, URL: o.url}
	if o.changed("interval") {
		in.IntervalMinutes = &o.interval
	}
	ep, err := view.NewEditor(a.deps, a.nav).Create(ctx, in)
	if err != nil {
		return err
	}
	return a.print(ep)
}

func (a *app) update(ctx context.Context, o *options) error {
	if o.endpointID == 0 {
		return errMissingEndpoint
	}
	var p endpoint.Patch
	if o.changed("name") {
		p.Name = &o.name
	}
	if o.changed("url") {
		p.URL = &o.url
	}
	if o.changed("interval") {
		p.IntervalMinutes = &o.interval
	}
	ep, err := view.NewEditor(a.deps, a.nav).Update(ctx, o.endpointID, p)
	if err != nil {
		return err
	}
	return a.print(ep)
}

func (a *app) remove(ctx context.Context, o *options) error {
	if o.endpointID == 0 {
		return errMissingEndpoint
	}
	return view.NewEditor(a.deps, a.nav).Delete(ctx, o.endpointID)
}

// printState writes st and turns an inline error into the command's result.
func printState[T any](a *app, st view.State[T]) error {
	if err := a.print(st); err != nil {
		return err
	}
	if err := stateErr(st.Error); err != nil {
		return err
	}
	return stateErr(st.ActionError)
}

func (a *app) print(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(raw))
	return err
}

func stateErr(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}
