package analytics

import (
	"time"

	"github.com/NordCoder/upwatch/internal/domain/check"
)

type SeriesItem struct {
	Period            string  `json:"period"`
	TotalChecks       int     `json:"total_checks"`
	FailureCount      int     `json:"failure_count"`
	UptimePct         float64 `json:"uptime_pct"`
	AvgResponseTimeMS float64 `json:"avg_response_time_ms"`
}

type Summary struct {
	UptimePct         float64 `json:"uptime_pct"`
	AvgResponseTimeMS float64 `json:"avg_response_time_ms"`
	TotalChecks       int     `json:"total_checks"`
}

type Report struct {
	Series  []SeriesItem `json:"series"`
	Summary Summary      `json:"summary"`
}

type DashboardStats struct {
	TotalEndpoints int            `json:"total_endpoints"`
	UpCount        int            `json:"up_count"`
	DownCount      int            `json:"down_count"`
	UptimePct24h   *float64       `json:"uptime_pct_24h"`
	RecentChecks   []check.Recent `json:"recent_checks"`
}

type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
)

func (r Range) Valid() bool { return r == Range7d || r == Range30d }

// Window resolves the symbolic range against now. It is evaluated per request
// so that repeated queries with the same range advance with the clock.
func (r Range) Window(now time.Time) (since, until time.Time) {
	days := 7
	if r == Range30d {
		days = 30
	}
	return now.AddDate(0, 0, -days), now
}

type GroupBy string

const (
	GroupByDay  GroupBy = "day"
	GroupByHour GroupBy = "hour"
)

func (g GroupBy) Valid() bool { return g == GroupByDay || g == GroupByHour }

type Query struct {
	EndpointID int64
	Since      time.Time
	Until      time.Time
	GroupBy    GroupBy
}
