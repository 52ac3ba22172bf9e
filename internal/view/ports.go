package view

import (
	"context"

	"github.com/NordCoder/upwatch/internal/domain/analytics"
	"github.com/NordCoder/upwatch/internal/domain/check"
	"github.com/NordCoder/upwatch/internal/domain/endpoint"
	"github.com/NordCoder/upwatch/internal/domain/session"
	"github.com/NordCoder/upwatch/internal/domain/user"
)

// Backend is the subset of gateway.Client the controllers call.
type Backend interface {
	Authenticate(ctx context.Context, username, password string) (session.Credentials, error)
	Register(ctx context.Context, username, password, email string) (session.Credentials, error)
	FetchSelf(ctx context.Context, token string) (user.User, error)

	ListEndpoints(ctx context.Context, token string, status endpoint.StatusFilter) ([]endpoint.Endpoint, error)
	GetEndpoint(ctx context.Context, token string, id int64) (endpoint.Endpoint, error)
	CreateEndpoint(ctx context.Context, token string, in endpoint.Create) (endpoint.Endpoint, error)
	UpdateEndpoint(ctx context.Context, token string, id int64, patch endpoint.Patch) (endpoint.Endpoint, error)
	DeleteEndpoint(ctx context.Context, token string, id int64) error

	ListChecks(ctx context.Context, token string, id int64, opts check.ListOptions) ([]check.Result, error)
	RunCheckNow(ctx context.Context, token string, id int64) (check.Result, error)

	DashboardStats(ctx context.Context, token string, endpointID int64) (analytics.DashboardStats, error)
	Analytics(ctx context.Context, token string, q analytics.Query) (analytics.Report, error)
}

// Session is the part of session.Store the controllers depend on.
type Session interface {
	Token() string
	Restored() bool
	Login(ctx context.Context, token string, u user.User) error
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, u user.User) error
}

// Navigator is implemented by whatever hosts the views.
type Navigator interface {
	RedirectToLogin()
	ShowDashboard()
}
