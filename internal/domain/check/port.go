package check

import "time"

// DefaultHistoryLimit is how many results the detail view asks for.
const DefaultHistoryLimit = 100

// MaxHistoryLimit is the backend's cap on a single history page.
const MaxHistoryLimit = 500

// ListOptions constrains a history query. Zero values are not sent.
type ListOptions struct {
	Limit int
	Since time.Time
}
