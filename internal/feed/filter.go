// Package feed implements the incrementally loaded, filter-driven product feed used by
// the "near me" listing. A Controller owns one active query at a time, fetches pages
// through an injected Fetcher, accumulates them in a PageCache, and resets everything
// when the filter changes. A Sentinel turns viewport samples into next-page requests.
package feed

// FilterState is the user-controlled input of the feed.
// An empty field means "no filter" for that dimension.
type FilterState struct {
	Keyword       string
	LocationScope string
}

// IsZero reports whether neither dimension is filtered.
func (f FilterState) IsZero() bool {
	return f.Keyword == "" && f.LocationScope == ""
}

// QueryIdentity identifies one logical search. It is comparable with == and is the
// only key used by the PageCache.
type QueryIdentity struct {
	Keyword       string
	LocationScope string
	PageSize      int
}

// HasKeyword reports whether the identity carries a keyword predicate.
func (q QueryIdentity) HasKeyword() bool { return q.Keyword != "" }

// HasLocation reports whether the identity carries a location predicate.
func (q QueryIdentity) HasLocation() bool { return q.LocationScope != "" }

// KeyBuilder derives query identities for a fixed page size.
type KeyBuilder struct {
	PageSize int
}

// NewKeyBuilder returns a KeyBuilder for the given page size.
// A non-positive size falls back to DefaultPageSize.
func NewKeyBuilder(pageSize int) KeyBuilder {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return KeyBuilder{PageSize: pageSize}
}

// Build composes the filter into a query identity. Fields are copied verbatim:
// no trimming or case folding, so "" stays "unfiltered" and " " stays a real filter.
func (b KeyBuilder) Build(f FilterState) QueryIdentity {
	return QueryIdentity{
		Keyword:       f.Keyword,
		LocationScope: f.LocationScope,
		PageSize:      b.PageSize,
	}
}

// DefaultPageSize is the number of products requested per page.
const DefaultPageSize = 12
