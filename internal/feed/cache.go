package feed

import "slices"

// CacheEntry holds the committed pages of one query identity.
//
// Pages only grow by appending. An entry is never truncated: invalidation replaces
// it with a fresh one carrying a new epoch.
type CacheEntry[T any] struct {
	identity QueryIdentity
	epoch    uint64
	pages    []Page[T]
	cursor   Cursor
	terminal bool
	pending  bool
}

// Identity returns the query identity the entry is bound to.
func (e *CacheEntry[T]) Identity() QueryIdentity { return e.identity }

// Epoch distinguishes entries created for the same identity at different times.
func (e *CacheEntry[T]) Epoch() uint64 { return e.epoch }

// Pages returns the committed pages. The slice is clipped so appending to it
// never writes into the entry.
func (e *CacheEntry[T]) Pages() []Page[T] { return slices.Clip(e.pages) }

// Cursor returns where the next fetch resumes. It is StartCursor before the first page.
func (e *CacheEntry[T]) Cursor() Cursor { return e.cursor }

// Terminal reports whether the last committed page had no continuation.
func (e *CacheEntry[T]) Terminal() bool { return e.terminal }

// Pending reports whether a fetch for this entry is in flight.
func (e *CacheEntry[T]) Pending() bool { return e.pending }

// HasMore is true iff at least one page is committed and the last one was not terminal.
func (e *CacheEntry[T]) HasMore() bool { return len(e.pages) > 0 && !e.terminal }

// Items flattens the committed pages.
func (e *CacheEntry[T]) Items() []T { return Flatten(e.pages) }

// Len returns the number of committed items.
func (e *CacheEntry[T]) Len() int {
	n := 0
	for _, p := range e.pages {
		n += len(p.Items)
	}
	return n
}

// PageCache binds the active query identity to its CacheEntry. Only one entry is
// active at a time; activating another identity discards the previous entry.
//
// PageCache is not safe for concurrent use; the Controller serializes access.
type PageCache[T any] struct {
	active *CacheEntry[T]
	epoch  uint64
}

// NewPageCache returns an empty cache.
func NewPageCache[T any]() *PageCache[T] {
	return &PageCache[T]{}
}

// Active returns the active entry, or nil before the first Reset and after Invalidate.
func (c *PageCache[T]) Active() *CacheEntry[T] { return c.active }

// Get returns the entry for id if it is the active one.
func (c *PageCache[T]) Get(id QueryIdentity) (*CacheEntry[T], bool) {
	if c.active == nil || c.active.identity != id {
		return nil, false
	}
	return c.active, true
}

// Reset discards the active entry and installs a fresh empty one for id, even when
// id equals the current identity.
func (c *PageCache[T]) Reset(id QueryIdentity) *CacheEntry[T] {
	c.epoch++
	c.active = &CacheEntry[T]{identity: id, epoch: c.epoch}
	return c.active
}

// Append commits a page to the entry identified by (id, epoch). It returns
// ErrStaleResult when that entry is no longer active.
func (c *PageCache[T]) Append(id QueryIdentity, epoch uint64, p Page[T]) error {
	e := c.active
	if e == nil || e.identity != id || e.epoch != epoch {
		return ErrStaleResult
	}
	e.pages = append(e.pages, p.clone())
	e.cursor = p.NextCursor
	e.terminal = p.IsTerminal()
	return nil
}

// Invalidate drops the active entry.
func (c *PageCache[T]) Invalidate() {
	c.active = nil
}
