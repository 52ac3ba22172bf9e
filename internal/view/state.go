package view

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// State is what a view renders. Data stays populated after a failed reload so
// the previous result remains visible next to Error.
type State[T any] struct {
	Status     Status `json:"status"`
	Generation uint64 `json:"generation"`
	HasData    bool   `json:"has_data"`
	Data       T      `json:"data"`
	Error      string `json:"error,omitempty"`

	// ActionPending and ActionError belong to one-off actions such as
	// run-check-now, reported apart from the load itself.
	ActionPending bool   `json:"action_pending,omitempty"`
	ActionError   string `json:"action_error,omitempty"`
}
