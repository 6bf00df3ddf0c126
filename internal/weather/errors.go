package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a refresh cycle produced no snapshot.
type ErrorKind int

const (
	// Transport failures reported by the weather client.
	HTTPError ErrorKind = iota
	ConnectionError
	TimeoutError
	RequestError

	// APIError means the service answered with a non-success status code.
	APIError
	// UnknownCondition means the payload used a category outside the icon table.
	UnknownCondition
)

var kindLabels = map[ErrorKind]string{
	HTTPError:        "Http Error",
	ConnectionError:  "Connection Error",
	TimeoutError:     "Timeout Error",
	RequestError:     "Request Error",
	APIError:         "API Error",
	UnknownCondition: "Unknown Condition",
}

func (k ErrorKind) String() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// IsTransport reports whether the kind originates from the network layer.
func (k ErrorKind) IsTransport() bool {
	return k <= RequestError
}

// ErrorState is the failure outcome of a refresh cycle. Label is the short
// text shown in the bar, Detail goes to the tooltip.
type ErrorState struct {
	Kind   ErrorKind
	Label  string
	Detail string
}

// NewErrorState builds an ErrorState labelled after its kind.
func NewErrorState(kind ErrorKind, detail string) *ErrorState {
	return &ErrorState{Kind: kind, Label: kind.String(), Detail: detail}
}

func (e *ErrorState) Error() string {
	if e.Detail == "" {
		return e.Label
	}
	return e.Label + ": " + e.Detail
}

// Is matches another *ErrorState of the same kind, so callers can use
// errors.Is(err, &ErrorState{Kind: TimeoutError}).
func (e *ErrorState) Is(target error) bool {
	t, ok := target.(*ErrorState)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// AsErrorState extracts an *ErrorState from err. Errors of any other type are
// reported as RequestError so that every failure has a renderable state.
func AsErrorState(err error) *ErrorState {
	if err == nil {
		return nil
	}
	var es *ErrorState
	if errors.As(err, &es) {
		return es
	}
	return NewErrorState(RequestError, err.Error())
}
