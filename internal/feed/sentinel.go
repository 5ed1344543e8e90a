package feed

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"booksaetong/internal/observability/metrics"
)

// DefaultThreshold is the distance from the content bottom, in pixels, at which the
// viewport counts as "near the bottom".
const DefaultThreshold = 2.0

// Viewport is one sample of the scroll position.
type Viewport struct {
	ScrollOffset   float64
	ViewportHeight float64
	ContentHeight  float64
}

// DistanceToBottom returns how far the visible area's lower edge is from the end of
// the content. It is negative when overscrolled.
func (v Viewport) DistanceToBottom() float64 {
	return v.ContentHeight - (v.ScrollOffset + v.ViewportHeight)
}

// SentinelOption configures a Sentinel.
type SentinelOption func(*Sentinel)

// WithThreshold sets the near-bottom distance. Negative values are ignored.
func WithThreshold(px float64) SentinelOption {
	return func(s *Sentinel) {
		if px >= 0 {
			s.threshold = px
		}
	}
}

// WithMinInterval spaces consecutive triggers at least d apart. A crossing that falls
// inside the interval stays armed, so the next near-bottom sample after the interval
// fires it.
func WithMinInterval(d time.Duration) SentinelOption {
	return func(s *Sentinel) {
		if d > 0 {
			s.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// Sentinel converts viewport samples into "near bottom" triggers. It fires once per
// crossing into the threshold zone and re-arms when the viewport leaves the zone or
// the content grows. It holds no feed state.
type Sentinel struct {
	threshold float64
	trigger   func()
	limiter   *rate.Limiter

	mu          sync.Mutex
	armed       bool
	lastContent float64
}

// NewSentinel returns an armed sentinel calling trigger on each crossing.
// trigger is typically Controller.RequestNextPage.
func NewSentinel(trigger func(), opts ...SentinelOption) *Sentinel {
	s := &Sentinel{
		threshold: DefaultThreshold,
		trigger:   trigger,
		armed:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Observe feeds one sample and reports whether it fired the trigger.
func (s *Sentinel) Observe(v Viewport) bool {
	s.mu.Lock()
	if v.ContentHeight > s.lastContent {
		s.armed = true
	}
	s.lastContent = v.ContentHeight

	near := v.DistanceToBottom() <= s.threshold
	if !near {
		s.armed = true
		s.mu.Unlock()
		return false
	}
	if !s.armed {
		s.mu.Unlock()
		return false
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.mu.Unlock()
		return false
	}
	s.armed = false
	s.mu.Unlock()

	metrics.RecordSentinelTrigger()
	s.trigger()
	return true
}

// Handle is the registration returned by Start. Stopping it ends that observation
// only; the sentinel can be started again or fed with Observe directly.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start observes samples until ctx is done, the channel closes, or the handle is
// stopped.
func (s *Sentinel) Start(ctx context.Context, samples <-chan Viewport) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-samples:
				if !ok {
					return
				}
				s.Observe(v)
			}
		}
	}()
	return h
}

// Stop unregisters the observation and waits for the observer goroutine to exit. A
// sample the goroutine already received is observed first. After Stop returns this
// handle never calls the trigger again. Stop is idempotent.
func (h *Handle) Stop() {
	h.once.Do(func() {
		h.cancel()
		<-h.done
	})
}

// Done is closed when the observer goroutine has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }
