package endpoint

import (
	"time"

	"github.com/NordCoder/upwatch/internal/domain/check"
)

const DefaultIntervalMinutes = 5

// AllowedIntervals lists the check intervals, in minutes, the backend accepts.
// It must match the oneof tags on Create and Patch.
var AllowedIntervals = []int{1, 2, 3, 5, 10, 15, 30, 60}

type Endpoint struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	URL             string        `json:"url"`
	IntervalMinutes int           `json:"interval_minutes"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	LatestCheck     *check.Result `json:"latest_check"`
}

// Up reports the status derived from the latest check. ok is false when the
// endpoint has never been checked.
func (e *Endpoint) Up() (up bool, ok bool) {
	if e.LatestCheck == nil {
		return false, false
	}
	return e.LatestCheck.Success, true
}

type Create struct {
	Name            string `json:"name" validate:"required,max=255"`
	URL             string `json:"url" validate:"required,url"`
	IntervalMinutes *int   `json:"interval_minutes,omitempty" validate:"omitnil,oneof=1 2 3 5 10 15 30 60"`
}

// Patch carries the fields of a partial update; nil fields are left untouched.
type Patch struct {
	Name            *string `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	URL             *string `json:"url,omitempty" validate:"omitnil,url"`
	IntervalMinutes *int    `json:"interval_minutes,omitempty" validate:"omitnil,oneof=1 2 3 5 10 15 30 60"`
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.URL == nil && p.IntervalMinutes == nil
}

// StatusFilter narrows the endpoint list by latest check outcome.
type StatusFilter string

const (
	StatusAll  StatusFilter = "all"
	StatusUp   StatusFilter = "up"
	StatusDown StatusFilter = "down"
)

func (s StatusFilter) Valid() bool {
	switch s {
	case StatusAll, StatusUp, StatusDown:
		return true
	}
	return false
}
