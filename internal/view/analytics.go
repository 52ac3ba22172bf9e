package view

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/NordCoder/upwatch/internal/domain/analytics"
	"github.com/NordCoder/upwatch/internal/domain/endpoint"
	"github.com/NordCoder/upwatch/internal/gateway"
)

type AnalyticsFilter struct {
	// EndpointID 0 aggregates over every endpoint.
	EndpointID int64             `json:"endpoint_id,omitempty"`
	Range      analytics.Range   `json:"range"`
	GroupBy    analytics.GroupBy `json:"group_by"`
}

// Analytics loads the time-series report for the selected window. The window
// is resolved against the clock each time a request is issued.
type Analytics struct {
	deps Deps
	*loader[analytics.Report]

	fmu    sync.Mutex
	filter AnalyticsFilter

	omu     sync.Mutex
	options []endpoint.Endpoint
}

func NewAnalytics(deps Deps) *Analytics {
	return &Analytics{
		deps:   deps,
		loader: newLoader[analytics.Report]("analytics", deps.Guard, deps.logger("analytics")),
		filter: AnalyticsFilter{Range: analytics.Range7d, GroupBy: analytics.GroupByDay},
	}
}

func (a *Analytics) Filter() AnalyticsFilter {
	a.fmu.Lock()
	defer a.fmu.Unlock()
	return a.filter
}

func (a *Analytics) Load(ctx context.Context) uint64 {
	f := a.Filter()
	return a.start(ctx, func(ctx context.Context, token string) (analytics.Report, error) {
		since, until := f.Range.Window(a.deps.now())
		return a.deps.Backend.Analytics(ctx, token, analytics.Query{
			EndpointID: f.EndpointID,
			Since:      since,
			Until:      until,
			GroupBy:    f.GroupBy,
		})
	})
}

// SetFilter replaces the whole filter and reloads.
func (a *Analytics) SetFilter(ctx context.Context, f AnalyticsFilter) (uint64, error) {
	if !f.Range.Valid() {
		return 0, fmt.Errorf("range %q: %w", f.Range, ErrInvalidFilter)
	}
	if !f.GroupBy.Valid() {
		return 0, fmt.Errorf("group by %q: %w", f.GroupBy, ErrInvalidFilter)
	}
	a.fmu.Lock()
	a.filter = f
	a.fmu.Unlock()
	return a.Load(ctx), nil
}

func (a *Analytics) SetEndpoint(ctx context.Context, id int64) uint64 {
	a.fmu.Lock()
	a.filter.EndpointID = id
	a.fmu.Unlock()
	return a.Load(ctx)
}

func (a *Analytics) SetRange(ctx context.Context, r analytics.Range) (uint64, error) {
	f := a.Filter()
	f.Range = r
	return a.SetFilter(ctx, f)
}

func (a *Analytics) SetGroupBy(ctx context.Context, g analytics.GroupBy) (uint64, error) {
	f := a.Filter()
	f.GroupBy = g
	return a.SetFilter(ctx, f)
}

// LoadOptions fetches the endpoint list for the selector. Failures other than
// Unauthorized leave the previous options in place and are only logged.
func (a *Analytics) LoadOptions(ctx context.Context) {
	token, ok := a.deps.Guard.Require()
	if !ok {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		eps, err := a.deps.Backend.ListEndpoints(ctx, token, endpoint.StatusAll)
		switch outcome, msg := gateway.Classify(err); outcome {
		case gateway.OutcomeSuccess:
			a.omu.Lock()
			a.options = eps
			a.omu.Unlock()
		case gateway.OutcomeUnauthorized:
			a.deps.Guard.Expired(ctx, token)
		default:
			a.log.Warn("endpoint options unavailable", zap.String("message", msg))
		}
	}()
}

func (a *Analytics) Options() []endpoint.Endpoint {
	a.omu.Lock()
	defer a.omu.Unlock()
	return a.options
}
