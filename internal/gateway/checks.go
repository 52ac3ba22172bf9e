package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/NordCoder/upwatch/internal/domain/check"
)

// ListChecks returns the endpoint's check history. Limits above
// check.MaxHistoryLimit are clamped.
func (c *Client) ListChecks(ctx context.Context, token string, id int64, opts check.ListOptions) ([]check.Result, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(min(opts.Limit, check.MaxHistoryLimit)))
	}
	if !opts.Since.IsZero() {
		q.Set("since", FormatTime(opts.Since))
	}
	var out []check.Result
	err := c.do(ctx, call{op: OpListChecks, method: http.MethodGet, path: idPath(id, "checks"), query: q, token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RunCheckNow asks the backend to probe the endpoint immediately and returns
// the recorded result.
func (c *Client) RunCheckNow(ctx context.Context, token string, id int64) (check.Result, error) {
	var out check.Result
	err := c.do(ctx, call{op: OpRunCheckNow, method: http.MethodPost, path: idPath(id, "check-now"), token: token, out: &out})
	return out, err
}
