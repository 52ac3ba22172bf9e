package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/NordCoder/upwatch/internal/domain/endpoint"
)

// ListEndpoints returns the caller's endpoints. StatusAll and the empty
// filter both omit the status parameter.
func (c *Client) ListEndpoints(ctx context.Context, token string, status endpoint.StatusFilter) ([]endpoint.Endpoint, error) {
	q := url.Values{}
	if status != "" && status != endpoint.StatusAll {
		q.Set("status", string(status))
	}
	var out []endpoint.Endpoint
	err := c.do(ctx, call{op: OpListEndpoints, method: http.MethodGet, path: "endpoints/", query: q, token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEndpoint(ctx context.Context, token string, id int64) (endpoint.Endpoint, error) {
	var out endpoint.Endpoint
	err := c.do(ctx, call{op: OpGetEndpoint, method: http.MethodGet, path: idPath(id, ""), token: token, out: &out})
	return out, err
}

// CreateEndpoint sends the request as given; a nil interval is left for the
// backend to default.
func (c *Client) CreateEndpoint(ctx context.Context, token string, in endpoint.Create) (endpoint.Endpoint, error) {
	var out endpoint.Endpoint
	err := c.do(ctx, call{op: OpCreateEndpoint, method: http.MethodPost, path: "endpoints/", token: token, body: in, out: &out})
	return out, err
}

func (c *Client) UpdateEndpoint(ctx context.Context, token string, id int64, patch endpoint.Patch) (endpoint.Endpoint, error) {
	var out endpoint.Endpoint
	err := c.do(ctx, call{op: OpUpdateEndpoint, method: http.MethodPatch, path: idPath(id, ""), token: token, body: patch, out: &out})
	return out, err
}

func (c *Client) DeleteEndpoint(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{op: OpDeleteEndpoint, method: http.MethodDelete, path: idPath(id, ""), token: token})
}
