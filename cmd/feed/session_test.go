package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booksaetong/internal/domain/entity"
	"booksaetong/internal/feed"
)

/* ───────── test doubles ───────── */

// listingFetcher serves an in-memory catalogue with index cursors.
type listingFetcher struct {
	items    []entity.Product
	failNext atomic.Int32
	calls    atomic.Int32
}

func newListingFetcher(n int, address string) *listingFetcher {
	f := &listingFetcher{}
	for i := range n {
		f.items = append(f.items, entity.Product{
			ID:      fmt.Sprintf("p-%02d", i),
			Title:   fmt.Sprintf("중고책 %02d", i),
			Price:   int64(1000 * (i + 1)),
			Address: address,
		})
	}
	return f
}

func (f *listingFetcher) FetchPage(_ context.Context, id feed.QueryIdentity, cursor feed.Cursor) (feed.Page[entity.Product], error) {
	f.calls.Add(1)
	if f.failNext.Load() > 0 {
		f.failNext.Add(-1)
		return feed.Page[entity.Product]{}, &feed.TransportError{Op: "search products", Err: errors.New("connection reset")}
	}

	var matched []entity.Product
	for _, p := range f.items {
		if id.HasKeyword() && !strings.Contains(p.Title, id.Keyword) {
			continue
		}
		if id.HasLocation() && !strings.Contains(p.Address, id.LocationScope) {
			continue
		}
		matched = append(matched, p)
	}

	start := 0
	if !cursor.IsStart() {
		start, _ = strconv.Atoi(string(cursor))
	}
	end := min(start+id.PageSize, len(matched))
	page := feed.Page[entity.Product]{Items: matched[start:end]}
	if end < len(matched) {
		page.NextCursor = feed.Cursor(strconv.Itoa(end))
	}
	return page, nil
}

func runScript(t *testing.T, f feed.Fetcher[entity.Product], initial feed.FilterState, script ...string) string {
	t.Helper()
	ctrl := feed.NewController(f, feed.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(ctrl.Close)

	var out bytes.Buffer
	s := newSession(ctrl, &out)
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	require.NoError(t, s.run(context.Background(), in, initial))
	return out.String()
}

/* ───────── session ───────── */

func TestSession_ScrollToEndLoadsNextPage(t *testing.T) {
	f := newListingFetcher(17, "서울 마포구")

	out := runScript(t, f, feed.FilterState{LocationScope: "서울"},
		"scroll 0 800 1440",
		"end",
		"show",
		"quit",
	)

	assert.Contains(t, out, `[idle] keyword="" location=서울 items=12 pages=1 has_more=true`)
	assert.Contains(t, out, "640px from bottom")
	assert.Contains(t, out, `[exhausted] keyword="" location=서울 items=17 pages=2 has_more=false`)
	assert.Contains(t, out, " 17. 중고책 16  17,000원  서울 마포구")
	assert.Contains(t, out, "-- end of feed --")
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestSession_NearBottomFiresOncePerCrossing(t *testing.T) {
	f := newListingFetcher(40, "부산")

	runScript(t, f, feed.FilterState{},
		"scroll 640 800 1440",
		"scroll 641 800 1440",
		"quit",
	)

	assert.Equal(t, int32(2), f.calls.Load(), "second sample in the zone must not fetch again")
}

func TestSession_FilterChanges(t *testing.T) {
	f := newListingFetcher(5, "서울")

	out := runScript(t, f, feed.FilterState{},
		"k 중고책 03",
		"k 중고책 03",
		"k 없는책",
		"l",
		"quit",
	)

	assert.Contains(t, out, `[exhausted] keyword="중고책 03" location=everywhere items=1 pages=1 has_more=false`)
	assert.Contains(t, out, "filter unchanged")
	assert.Contains(t, out, "no listings match")
}

func TestSession_FailureAndRetry(t *testing.T) {
	f := newListingFetcher(3, "대구")
	f.failNext.Store(1)

	out := runScript(t, f, feed.FilterState{},
		"retry",
		"retry",
		"quit",
	)

	assert.Contains(t, out, "[failed]")
	assert.Contains(t, out, "error: transport error: search products: connection reset (type retry)")
	assert.Contains(t, out, `[exhausted] keyword="" location=everywhere items=3 pages=1 has_more=false`)
	assert.Contains(t, out, "nothing to retry")
}

func TestSession_BadInput(t *testing.T) {
	out := runScript(t, newListingFetcher(1, "광주"), feed.FilterState{},
		"scroll 1 2",
		"scroll a b c",
		"bogus",
		"help",
	)

	assert.Contains(t, out, "scroll: want <offset> <viewport> <content>, got 2 values")
	assert.Contains(t, out, `scroll: invalid value "a"`)
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "commands:")
}

func TestSession_ReturnsOnCancelledContext(t *testing.T) {
	ctrl := feed.NewController[entity.Product](newListingFetcher(1, "서울"))
	t.Cleanup(ctrl.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := newSession(ctrl, &out).run(ctx, strings.NewReader("show\nshow\n"), feed.FilterState{})

	assert.NoError(t, err)
	assert.NotContains(t, out.String(), "중고책")
}

func TestFormatPrice(t *testing.T) {
	tests := map[int64]string{
		0:       "0",
		500:     "500",
		1000:    "1,000",
		25000:   "25,000",
		1234567: "1,234,567",
		-120000: "-120,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatPrice(in), in)
	}
}

func TestSession_ShowTruncatesLongTitles(t *testing.T) {
	f := newListingFetcher(1, "인천")
	f.items[0].Title = strings.Repeat("가", 60)

	out := runScript(t, f, feed.FilterState{}, "show", "quit")

	assert.Contains(t, out, "  1. "+strings.Repeat("가", 39)+"…  1,000원  인천")
}
