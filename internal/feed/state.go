package feed

// State is the pagination state of the active query.
type State int

const (
	// StateIdle means no fetch is in flight and another page may be requested.
	StateIdle State = iota
	// StateFetchingFirst means the first page of the active query is in flight.
	StateFetchingFirst
	// StateFetchingNext means a continuation page is in flight.
	StateFetchingNext
	// StateExhausted means the last committed page was terminal.
	StateExhausted
	// StateFailed means the last fetch failed; committed pages stay visible.
	StateFailed
)

// String returns the state name used in logs and metrics.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingFirst:
		return "fetching_first"
	case StateFetchingNext:
		return "fetching_next"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetching reports whether a fetch is in flight.
func (s State) Fetching() bool {
	return s == StateFetchingFirst || s == StateFetchingNext
}

// Terminal reports whether only a filter change (or Retry, for Failed) leaves the state.
func (s State) Terminal() bool {
	return s == StateExhausted || s == StateFailed
}

// phase is the metrics/log label for a fetching state.
func (s State) phase() string {
	if s == StateFetchingFirst {
		return "first"
	}
	return "next"
}
