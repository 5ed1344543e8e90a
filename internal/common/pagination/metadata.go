package pagination

// Metadata describes where a page ends.
type Metadata struct {
	NextCursor string `json:"next_cursor"` // Empty on the last page
	HasMore    bool   `json:"has_more"`
}

// NewMetadata derives metadata from the next cursor.
func NewMetadata(nextCursor string) Metadata {
	return Metadata{NextCursor: nextCursor, HasMore: nextCursor != ""}
}
