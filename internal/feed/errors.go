package feed

import (
	"errors"
	"fmt"
)

// Sentinel errors for feed operations.
var (
	// ErrStaleResult marks a fetch that resolved after its identity was superseded.
	// It never reaches callers; it is only logged and counted.
	ErrStaleResult = errors.New("stale feed result discarded")

	// ErrClosed is returned by WaitSettled once the controller has been closed.
	ErrClosed = errors.New("feed controller closed")
)

// TransportError reports a fetch that could not complete (network, backend outage,
// open circuit).
type TransportError struct {
	Op  string
	Err error
}

// Error returns a formatted error message.
func (e *TransportError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("transport error: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// QueryError reports that the backend rejected the identity or cursor as invalid.
type QueryError struct {
	Field  string
	Reason string
	Err    error
}

// Error returns a formatted error message.
func (e *QueryError) Error() string {
	msg := "invalid query"
	if e.Field != "" {
		msg += " field '" + e.Field + "'"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error { return e.Err }

// IsTransportError reports whether err wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsQueryError reports whether err wraps a *QueryError.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
