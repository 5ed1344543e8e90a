package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"booksaetong/internal/observability/metrics"
	"booksaetong/internal/observability/tracing"
)

// Snapshot is a consistent read of the controller's derived state. Items and HasMore
// are computed from committed pages only.
type Snapshot[T any] struct {
	Filter             FilterState
	Identity           QueryIdentity
	Items              []T
	Pages              int
	HasMore            bool
	IsLoadingFirstPage bool
	IsLoadingNextPage  bool
	State              State
	Err                error
	// IsEmpty is true once a first page has committed and the query matched nothing.
	IsEmpty bool
}

type options struct {
	pageSize int
	logger   *slog.Logger
}

// Option configures a Controller.
type Option func(*options)

// WithPageSize sets the page size folded into every query identity.
func WithPageSize(n int) Option {
	return func(o *options) { o.pageSize = n }
}

// WithLogger sets the logger used for filter changes, fetch outcomes and stale results.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Controller drives paginated fetches for the active filter.
//
// All state transitions happen under one mutex; fetches run on their own goroutines
// and report back through complete, which drops results whose (identity, epoch) tag
// no longer matches the active cache entry.
type Controller[T any] struct {
	fetcher Fetcher[T]
	keys    KeyBuilder
	logger  *slog.Logger

	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu       sync.Mutex
	filter   FilterState
	cache    *PageCache[T]
	state    State
	err      error
	inflight context.CancelFunc
	changed  chan struct{}
	closed   bool
}

// NewController returns an idle controller with no active query. The first SetFilter
// call (an empty filter included) activates a query and fetches its first page.
func NewController[T any](fetcher Fetcher[T], opts ...Option) *Controller[T] {
	o := options{pageSize: DefaultPageSize, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	base, stop := context.WithCancel(context.Background())
	return &Controller[T]{
		fetcher: fetcher,
		keys:    NewKeyBuilder(o.pageSize),
		logger:  o.logger,
		base:    base,
		stop:    stop,
		cache:   NewPageCache[T](),
		changed: make(chan struct{}),
	}
}

// SetFilter activates the query for f. If its identity equals the active one this is
// a no-op. Otherwise the active entry is discarded whatever its state, a fresh entry
// is installed and its first page is requested immediately. It reports whether a
// reset happened.
func (c *Controller[T]) SetFilter(f FilterState) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	id := c.keys.Build(f)
	if _, ok := c.cache.Get(id); ok {
		return false
	}

	c.cancelInflightLocked()
	c.filter = f
	entry := c.cache.Reset(id)
	c.state = StateIdle
	c.err = nil

	metrics.RecordFilterChange()
	c.logger.Info("feed filter changed",
		slog.String("keyword", id.Keyword),
		slog.String("location", id.LocationScope),
		slog.Int("page_size", id.PageSize))

	c.startFetchLocked(entry, StateFetchingFirst)
	return true
}

// RequestNextPage issues a fetch when the controller is Idle and the active query has
// more pages, or has no page yet. In every other state it returns immediately without
// fetching. The check and the transition happen atomically, so concurrent callers
// issue at most one fetch per opening. It reports whether a fetch was issued.
func (c *Controller[T]) RequestNextPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.cache.Active()
	if c.closed || entry == nil || c.state != StateIdle {
		return false
	}
	if len(entry.pages) == 0 {
		c.startFetchLocked(entry, StateFetchingFirst)
		return true
	}
	if !entry.HasMore() {
		return false
	}
	c.startFetchLocked(entry, StateFetchingNext)
	return true
}

// Retry re-issues the fetch that failed, at the same cursor. Committed pages are kept.
// It is a no-op unless the controller is Failed.
func (c *Controller[T]) Retry() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.cache.Active()
	if c.closed || entry == nil || c.state != StateFailed {
		return false
	}
	c.err = nil
	if len(entry.pages) == 0 {
		c.startFetchLocked(entry, StateFetchingFirst)
	} else {
		c.startFetchLocked(entry, StateFetchingNext)
	}
	return true
}

// Snapshot returns the current derived state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot[T]{
		Filter:             c.filter,
		State:              c.state,
		Err:                c.err,
		IsLoadingFirstPage: c.state == StateFetchingFirst,
		IsLoadingNextPage:  c.state == StateFetchingNext,
	}
	entry := c.cache.Active()
	if entry == nil {
		s.Items = []T{}
		return s
	}
	s.Identity = entry.identity
	s.Items = entry.Items()
	s.Pages = len(entry.pages)
	s.HasMore = entry.HasMore()
	s.IsEmpty = s.Pages > 0 && len(s.Items) == 0
	return s
}

// Changed returns a channel that is closed at the next state transition.
// Call it again after it fires to wait for the following one.
func (c *Controller[T]) Changed() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changed
}

// WaitSettled blocks until no fetch is in flight.
func (c *Controller[T]) WaitSettled(ctx context.Context) error {
	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return ErrClosed
		}
		if !c.state.Fetching() {
			c.mu.Unlock()
			return nil
		}
		ch := c.changed
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close tears the feed down: the in-flight fetch is cancelled and its result ignored,
// the cache entry is discarded and the filter returns to empty. Close waits for fetch
// goroutines to return and is safe to call more than once.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancelInflightLocked()
	c.cache.Invalidate()
	c.filter = FilterState{}
	c.state = StateIdle
	c.err = nil
	c.broadcastLocked()
	c.mu.Unlock()

	c.stop()
	c.wg.Wait()
}

func (c *Controller[T]) startFetchLocked(entry *CacheEntry[T], phase State) {
	ctx, cancel := context.WithCancel(c.base)
	c.inflight = cancel
	c.state = phase
	entry.pending = true

	id, epoch, cursor := entry.identity, entry.epoch, entry.cursor
	c.wg.Add(1)
	go c.runFetch(ctx, cancel, id, epoch, cursor, phase)
	c.broadcastLocked()
}

func (c *Controller[T]) runFetch(ctx context.Context, cancel context.CancelFunc, id QueryIdentity, epoch uint64, cursor Cursor, phase State) {
	defer c.wg.Done()
	defer cancel()

	ctx, span := tracing.GetTracer().Start(ctx, "feed.FetchPage",
		trace.WithAttributes(
			attribute.String("feed.phase", phase.phase()),
			attribute.String("feed.keyword", id.Keyword),
			attribute.String("feed.location", id.LocationScope),
			attribute.Int("feed.page_size", id.PageSize),
		))
	defer span.End()

	start := time.Now()
	page, err := c.fetcher.FetchPage(ctx, id, cursor)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.Int("feed.items", len(page.Items)),
			attribute.Bool("feed.terminal", page.IsTerminal()))
	}

	c.complete(id, epoch, phase, page, err, elapsed)
}

func (c *Controller[T]) complete(id QueryIdentity, epoch uint64, phase State, page Page[T], err error, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache.Get(id)
	if c.closed || !ok || entry.epoch != epoch {
		metrics.RecordStaleResult()
		c.logger.Debug("feed result discarded",
			slog.String("keyword", id.Keyword),
			slog.String("location", id.LocationScope),
			slog.String("phase", phase.phase()),
			slog.Any("reason", ErrStaleResult))
		return
	}

	entry.pending = false
	c.inflight = nil

	if err != nil {
		c.state = StateFailed
		c.err = err
		metrics.RecordPageFetch(phase.phase(), "error", elapsed)
		c.logger.Warn("feed page fetch failed",
			slog.String("keyword", id.Keyword),
			slog.String("location", id.LocationScope),
			slog.String("phase", phase.phase()),
			slog.Any("error", err))
		c.broadcastLocked()
		return
	}

	// The tag was checked above, so Append cannot report a stale result here.
	_ = c.cache.Append(id, epoch, page)
	if page.IsTerminal() {
		c.state = StateExhausted
	} else {
		c.state = StateIdle
	}
	metrics.RecordPageFetch(phase.phase(), "success", elapsed)
	c.logger.Debug("feed page committed",
		slog.String("keyword", id.Keyword),
		slog.String("location", id.LocationScope),
		slog.String("phase", phase.phase()),
		slog.Int("items", len(page.Items)),
		slog.Int("total_items", entry.Len()),
		slog.Bool("has_more", entry.HasMore()))
	c.broadcastLocked()
}

func (c *Controller[T]) cancelInflightLocked() {
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}
}

func (c *Controller[T]) broadcastLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}
