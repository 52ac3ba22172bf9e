package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned, wrapped with the operation name, whenever the
// backend answers 401. The body of such a response is never inspected.
var ErrUnauthorized = errors.New("unauthorized")

// RequestError is any failure other than ErrUnauthorized. Status is zero when
// the request never got an HTTP response.
type RequestError struct {
	Op      Op
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeUnauthorized
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUnauthorized:
		return "unauthorized"
	default:
		return "failure"
	}
}

// Classify maps an error returned by the Client to exactly one outcome and,
// for failures, the message meant for the user.
func Classify(err error) (Outcome, string) {
	if err == nil {
		return OutcomeSuccess, ""
	}
	if errors.Is(err, ErrUnauthorized) {
		return OutcomeUnauthorized, ""
	}
	var re *RequestError
	if errors.As(err, &re) {
		return OutcomeFailure, re.Message
	}
	return OutcomeFailure, err.Error()
}

func unauthorized(op Op) error {
	return fmt.Errorf("%s: %w", op, ErrUnauthorized)
}
