package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"booksaetong/internal/domain/entity"
	"booksaetong/internal/feed"
	"booksaetong/internal/utils/text"
)

const (
	// rowHeight is the height of one listing card in the simulated viewport.
	rowHeight = 120.0
	// screenHeight is the viewport used by "end".
	screenHeight = 800.0
	// titleWidth is where "show" cuts long titles, in characters.
	titleWidth = 40

	helpText = `commands:
  k <keyword>                           set the keyword (empty clears it)
  l <scope>                             set the location scope (empty clears it)
  scroll <offset> <viewport> <content>  report a scroll position
  end                                   jump to the bottom of the list
  retry                                 re-issue the failed fetch
  show                                  list the loaded items
  quit                                  exit
`
)

// session is one interactive browse loop over a feed controller.
type session struct {
	ctrl     *feed.Controller[entity.Product]
	sentinel *feed.Sentinel
	filter   feed.FilterState
	out      io.Writer
	// wait bounds how long a command blocks on an in-flight fetch.
	wait time.Duration
}

func newSession(ctrl *feed.Controller[entity.Product], out io.Writer, opts ...feed.SentinelOption) *session {
	s := &session{ctrl: ctrl, out: out, wait: 30 * time.Second}
	s.sentinel = feed.NewSentinel(func() { ctrl.RequestNextPage() }, opts...)
	return s
}

// run activates the initial filter, then executes one command per input line until
// quit, EOF or ctx is done.
func (s *session) run(ctx context.Context, in io.Reader, initial feed.FilterState) error {
	s.filter = initial
	s.ctrl.SetFilter(s.filter)
	s.settle(ctx)
	s.status()

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		if quit := s.exec(ctx, sc.Text()); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the session should end.
func (s *session) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "k", "keyword":
		s.filter.Keyword = arg
		s.applyFilter(ctx)
	case "l", "location":
		s.filter.LocationScope = arg
		s.applyFilter(ctx)
	case "scroll":
		v, err := parseViewport(arg)
		if err != nil {
			fmt.Fprintf(s.out, "scroll: %v\n", err)
			return false
		}
		s.observe(ctx, v)
	case "end":
		content := float64(len(s.ctrl.Snapshot().Items)) * rowHeight
		s.observe(ctx, feed.Viewport{
			ScrollOffset:   max(0, content-screenHeight),
			ViewportHeight: screenHeight,
			ContentHeight:  content,
		})
	case "retry":
		if !s.ctrl.Retry() {
			fmt.Fprintln(s.out, "nothing to retry")
			return false
		}
		s.settle(ctx)
		s.status()
	case "show":
		s.show()
	case "help", "?":
		fmt.Fprint(s.out, helpText)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(s.out, "unknown command %q (try help)\n", cmd)
	}
	return false
}

func (s *session) applyFilter(ctx context.Context) {
	if !s.ctrl.SetFilter(s.filter) {
		fmt.Fprintln(s.out, "filter unchanged")
		return
	}
	s.settle(ctx)
	s.status()
}

func (s *session) observe(ctx context.Context, v feed.Viewport) {
	if !s.sentinel.Observe(v) {
		fmt.Fprintf(s.out, "%.0fpx from bottom\n", v.DistanceToBottom())
		return
	}
	s.settle(ctx)
	s.status()
}

func (s *session) settle(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.wait)
	defer cancel()
	if err := s.ctrl.WaitSettled(ctx); errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintln(s.out, "still loading...")
	}
}

func (s *session) status() {
	snap := s.ctrl.Snapshot()
	scope := snap.Identity.LocationScope
	if scope == "" {
		scope = "everywhere"
	}
	fmt.Fprintf(s.out, "[%s] keyword=%q location=%s items=%d pages=%d has_more=%t\n",
		snap.State, snap.Identity.Keyword, scope, len(snap.Items), snap.Pages, snap.HasMore)

	switch {
	case snap.Err != nil:
		fmt.Fprintf(s.out, "error: %s\n", describeError(snap.Err))
	case snap.IsEmpty:
		fmt.Fprintln(s.out, "no listings match")
	}
}

func (s *session) show() {
	snap := s.ctrl.Snapshot()
	for i, p := range snap.Items {
		fmt.Fprintf(s.out, "%3d. %s  %s원  %s\n", i+1, text.Truncate(p.Title, titleWidth), formatPrice(p.Price), p.Address)
	}
	if !snap.HasMore && snap.Pages > 0 {
		fmt.Fprintln(s.out, "-- end of feed --")
	}
}

func describeError(err error) string {
	if feed.IsTransportError(err) {
		return err.Error() + " (type retry)"
	}
	return err.Error()
}

func parseViewport(arg string) (feed.Viewport, error) {
	fields := strings.Fields(arg)
	if len(fields) != 3 {
		return feed.Viewport{}, fmt.Errorf("want <offset> <viewport> <content>, got %d values", len(fields))
	}
	var vals [3]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil || n < 0 {
			return feed.Viewport{}, fmt.Errorf("invalid value %q", f)
		}
		vals[i] = n
	}
	return feed.Viewport{ScrollOffset: vals[0], ViewportHeight: vals[1], ContentHeight: vals[2]}, nil
}

// formatPrice renders 12000 as "12,000".
func formatPrice(won int64) string {
	s := strconv.FormatInt(won, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
