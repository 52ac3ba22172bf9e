package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/NordCoder/upwatch/internal/domain/analytics"
)

// DashboardStats returns aggregate status. endpointID 0 means all endpoints.
func (c *Client) DashboardStats(ctx context.Context, token string, endpointID int64) (analytics.DashboardStats, error) {
	q := url.Values{}
	if endpointID != 0 {
		q.Set("endpoint_id", strconv.FormatInt(endpointID, 10))
	}
	var out analytics.DashboardStats
	err := c.do(ctx, call{op: OpDashboardStats, method: http.MethodGet, path: "dashboard/stats/", query: q, token: token, out: &out})
	return out, err
}

// Analytics passes the series and summary through exactly as the backend
// computed them.
func (c *Client) Analytics(ctx context.Context, token string, query analytics.Query) (analytics.Report, error) {
	q := url.Values{}
	if query.EndpointID != 0 {
		q.Set("endpoint_id", strconv.FormatInt(query.EndpointID, 10))
	}
	if !query.Since.IsZero() {
		q.Set("since", FormatTime(query.Since))
	}
	if !query.Until.IsZero() {
		q.Set("until", FormatTime(query.Until))
	}
	if query.GroupBy != "" {
		q.Set("group_by", string(query.GroupBy))
	}
	var out analytics.Report
	err := c.do(ctx, call{op: OpAnalytics, method: http.MethodGet, path: "analytics/", query: q, token: token, out: &out})
	return out, err
}
