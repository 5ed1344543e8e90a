package pagination

// Response is the page envelope returned by list endpoints:
//
//	{"data": [...], "next_cursor": "...", "has_more": true}
type Response[T any] struct {
	Data []T `json:"data"`
	Metadata
}

// NewResponse creates a page response. A nil slice is replaced by an empty one so the
// JSON always carries an array.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{Data: data, Metadata: metadata}
}
