package check

import "time"

// Result is one probe outcome. Results are immutable once recorded by the backend.
type Result struct {
	ID             int64     `json:"id"`
	StatusCode     *int      `json:"status_code"`
	ResponseTimeMS *int      `json:"response_time_ms"`
	Success        bool      `json:"success"`
	CheckedAt      time.Time `json:"checked_at"`
	ErrorMessage   string    `json:"error_message"`
}

// Recent is a Result as listed on the dashboard, tagged with its endpoint.
type Recent struct {
	Result
	EndpointID   int64  `json:"endpoint_id"`
	EndpointName string `json:"endpoint_name"`
}

// Since is the history window selectable on the endpoint detail view.
type Since string

const (
	SinceAll Since = "all"
	Since24h Since = "24h"
	Since7d  Since = "7d"
)

// Bound returns the lower time bound for the window, or the zero time for SinceAll.
func (s Since) Bound(now time.Time) time.Time {
	switch s {
	case Since24h:
		return now.Add(-24 * time.Hour)
	case Since7d:
		return now.AddDate(0, 0, -7)
	default:
		return time.Time{}
	}
}

func (s Since) Valid() bool {
	switch s {
	case SinceAll, Since24h, Since7d:
		return true
	}
	return false
}
