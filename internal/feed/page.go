package feed

import (
	"context"
	"slices"
)

// Cursor is an opaque continuation token owned by the Fetcher.
// As a fetch argument the empty cursor means "start"; as Page.NextCursor it means
// "no further pages".
type Cursor string

// StartCursor requests the first page of a query.
const StartCursor Cursor = ""

// IsStart reports whether the cursor points at the beginning of a query.
func (c Cursor) IsStart() bool { return c == StartCursor }

// Page is one fetched slice of results.
type Page[T any] struct {
	Items      []T
	NextCursor Cursor
}

// IsTerminal reports whether no page follows this one.
func (p Page[T]) IsTerminal() bool { return p.NextCursor == "" }

// clone detaches the page from the fetcher's backing array so later writes by the
// fetcher cannot reach committed items.
func (p Page[T]) clone() Page[T] {
	return Page[T]{Items: slices.Clone(p.Items), NextCursor: p.NextCursor}
}

// Fetcher performs exactly one page fetch for a query identity.
//
// Implementations should return a *TransportError when the fetch could not complete
// and a *QueryError when the backend rejected the identity or cursor. The context is
// cancelled when the identity is superseded; honoring it is optional.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, id QueryIdentity, cursor Cursor) (Page[T], error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc[T any] func(ctx context.Context, id QueryIdentity, cursor Cursor) (Page[T], error)

// FetchPage calls f.
func (f FetcherFunc[T]) FetchPage(ctx context.Context, id QueryIdentity, cursor Cursor) (Page[T], error) {
	return f(ctx, id, cursor)
}
