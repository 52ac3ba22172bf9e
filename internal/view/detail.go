package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/NordCoder/upwatch/internal/domain/check"
	"github.com/NordCoder/upwatch/internal/domain/endpoint"
)

type DetailData struct {
	Endpoint endpoint.Endpoint `json:"endpoint"`
	Checks   []check.Result    `json:"checks"`
}

// Detail shows one endpoint together with its recent check history.
type Detail struct {
	deps Deps
	id   int64
	*loader[DetailData]

	fmu   sync.Mutex
	since check.Since
}

func NewDetail(deps Deps, id int64) *Detail {
	return &Detail{
		deps:   deps,
		id:     id,
		loader: newLoader[DetailData]("detail", deps.Guard, deps.logger("detail")),
		since:  check.SinceAll,
	}
}

func (d *Detail) EndpointID() int64 { return d.id }

func (d *Detail) Since() check.Since {
	d.fmu.Lock()
	defer d.fmu.Unlock()
	return d.since
}

func (d *Detail) Load(ctx context.Context) uint64 {
	since := d.Since()
	return d.start(ctx, func(ctx context.Context, token string) (DetailData, error) {
		opts := check.ListOptions{
			Limit: check.DefaultHistoryLimit,
			Since: since.Bound(d.deps.now()),
		}
		ep, checks, err := both(ctx,
			func(ctx context.Context) (endpoint.Endpoint, error) {
				return d.deps.Backend.GetEndpoint(ctx, token, d.id)
			},
			func(ctx context.Context) ([]check.Result, error) {
				return d.deps.Backend.ListChecks(ctx, token, d.id, opts)
			},
		)
		return DetailData{Endpoint: ep, Checks: checks}, err
	})
}

func (d *Detail) SetSince(ctx context.Context, s check.Since) (uint64, error) {
	if !s.Valid() {
		return 0, fmt.Errorf("since filter %q: %w", s, ErrInvalidFilter)
	}
	d.fmu.Lock()
	d.since = s
	d.fmu.Unlock()
	return d.Load(ctx), nil
}

// RunCheckNow probes the endpoint and then reloads the view whether or not
// the probe request succeeded. A probe failure lands in ActionError.
func (d *Detail) RunCheckNow(ctx context.Context) bool {
	return d.action(ctx,
		func(ctx context.Context, token string) error {
			_, err := d.deps.Backend.RunCheckNow(ctx, token, d.id)
			return err
		},
		func() { d.Load(ctx) },
	)
}
