package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/NordCoder/upwatch/internal/domain/analytics"
	"github.com/NordCoder/upwatch/internal/domain/endpoint"
)

type DashboardFilter struct {
	Status endpoint.StatusFilter `json:"status"`
	// EndpointID scopes the stats to one endpoint; 0 means all.
	EndpointID int64 `json:"endpoint_id,omitempty"`
}

type DashboardData struct {
	Stats     analytics.DashboardStats `json:"stats"`
	Endpoints []endpoint.Endpoint      `json:"endpoints"`
}

// Dashboard loads aggregate stats and the filtered endpoint list as one unit.
type Dashboard struct {
	deps Deps
	*loader[DashboardData]

	fmu    sync.Mutex
	filter DashboardFilter
}

func NewDashboard(deps Deps) *Dashboard {
	return &Dashboard{
		deps:   deps,
		loader: newLoader[DashboardData]("dashboard", deps.Guard, deps.logger("dashboard")),
		filter: DashboardFilter{Status: endpoint.StatusAll},
	}
}

func (d *Dashboard) Filter() DashboardFilter {
	d.fmu.Lock()
	defer d.fmu.Unlock()
	return d.filter
}

// Load fetches with the current filter. It returns the generation started,
// or 0 when the session does not allow a call.
func (d *Dashboard) Load(ctx context.Context) uint64 {
	f := d.Filter()
	return d.start(ctx, func(ctx context.Context, token string) (DashboardData, error) {
		stats, eps, err := both(ctx,
			func(ctx context.Context) (analytics.DashboardStats, error) {
				return d.deps.Backend.DashboardStats(ctx, token, f.EndpointID)
			},
			func(ctx context.Context) ([]endpoint.Endpoint, error) {
				return d.deps.Backend.ListEndpoints(ctx, token, f.Status)
			},
		)
		return DashboardData{Stats: stats, Endpoints: eps}, err
	})
}

// SetFilter replaces the whole filter and reloads.
func (d *Dashboard) SetFilter(ctx context.Context, f DashboardFilter) (uint64, error) {
	if !f.Status.Valid() {
		return 0, fmt.Errorf("status filter %q: %w", f.Status, ErrInvalidFilter)
	}
	d.fmu.Lock()
	d.filter = f
	d.fmu.Unlock()
	return d.Load(ctx), nil
}

func (d *Dashboard) SetStatus(ctx context.Context, s endpoint.StatusFilter) (uint64, error) {
	f := d.Filter()
	f.Status = s
	return d.SetFilter(ctx, f)
}

func (d *Dashboard) SetScope(ctx context.Context, endpointID int64) uint64 {
	d.fmu.Lock()
	d.filter.EndpointID = endpointID
	d.fmu.Unlock()
	return d.Load(ctx)
}
