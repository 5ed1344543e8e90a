package feed

// Flatten concatenates page items in page order.
//
// Pages are not deduplicated against each other: non-overlapping pages are the
// backing store's cursor contract, and an item that appears twice (rows mutated
// between fetches) is shown twice.
func Flatten[T any](pages []Page[T]) []T {
	n := 0
	for _, p := range pages {
		n += len(p.Items)
	}
	out := make([]T, 0, n)
	for _, p := range pages {
		out = append(out, p.Items...)
	}
	return out
}
