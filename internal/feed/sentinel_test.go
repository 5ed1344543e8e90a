package feed

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingTrigger() (func(), *atomic.Int32) {
	var n atomic.Int32
	return func() { n.Add(1) }, &n
}

// at returns a sample whose lower edge is dist pixels above the content bottom.
func at(dist, content float64) Viewport {
	return Viewport{ScrollOffset: content - 800 - dist, ViewportHeight: 800, ContentHeight: content}
}

func TestViewport_DistanceToBottom(t *testing.T) {
	assert.Equal(t, 100.0, Viewport{ScrollOffset: 100, ViewportHeight: 800, ContentHeight: 1000}.DistanceToBottom())
	assert.Equal(t, -5.0, Viewport{ScrollOffset: 205, ViewportHeight: 800, ContentHeight: 1000}.DistanceToBottom())
}

func TestSentinel_FiresOncePerCrossing(t *testing.T) {
	trigger, n := countingTrigger()
	s := NewSentinel(trigger)

	assert.False(t, s.Observe(at(500, 3000)))
	assert.True(t, s.Observe(at(1, 3000)))
	assert.False(t, s.Observe(at(0, 3000)), "staying in the zone does not fire again")
	assert.False(t, s.Observe(at(-3, 3000)))
	assert.Equal(t, int32(1), n.Load())

	assert.False(t, s.Observe(at(300, 3000)))
	assert.True(t, s.Observe(at(2, 3000)), "leaving and re-entering fires again")
	assert.Equal(t, int32(2), n.Load())
}

func TestSentinel_RearmsWhenContentGrows(t *testing.T) {
	trigger, n := countingTrigger()
	s := NewSentinel(trigger)

	require.True(t, s.Observe(at(0, 3000)))
	assert.True(t, s.Observe(at(0, 3600)), "a taller feed that still ends in view fires again")
	assert.False(t, s.Observe(at(0, 3600)))
	assert.Equal(t, int32(2), n.Load())
}

func TestSentinel_Threshold(t *testing.T) {
	tests := []struct {
		name string
		opts []SentinelOption
		dist float64
		want bool
	}{
		{"default threshold inclusive", nil, DefaultThreshold, true},
		{"default threshold exceeded", nil, 3, false},
		{"custom threshold", []SentinelOption{WithThreshold(200)}, 150, true},
		{"negative threshold ignored", []SentinelOption{WithThreshold(-10)}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger, _ := countingTrigger()
			assert.Equal(t, tt.want, NewSentinel(trigger, tt.opts...).Observe(at(tt.dist, 2000)))
		})
	}
}

func TestSentinel_MinIntervalDropsCrossings(t *testing.T) {
	trigger, n := countingTrigger()
	s := NewSentinel(trigger, WithMinInterval(time.Hour))

	assert.True(t, s.Observe(at(0, 2000)))
	s.Observe(at(500, 2000))
	assert.False(t, s.Observe(at(0, 2000)), "second crossing inside the interval is dropped")
	assert.Equal(t, int32(1), n.Load())
}

func TestSentinel_DroppedCrossingFiresAfterInterval(t *testing.T) {
	trigger, n := countingTrigger()
	s := NewSentinel(trigger, WithMinInterval(50*time.Millisecond))

	require.True(t, s.Observe(at(0, 300)))
	assert.False(t, s.Observe(at(0, 600)), "growth inside the interval is held back")

	time.Sleep(100 * time.Millisecond)
	assert.True(t, s.Observe(at(0, 600)), "the held crossing fires once the interval passed")
	for range 5 {
		assert.False(t, s.Observe(at(0, 600)))
	}
	assert.Equal(t, int32(2), n.Load())
}

func TestSentinel_StartAndStop(t *testing.T) {
	trigger, n := countingTrigger()
	s := NewSentinel(trigger)
	samples := make(chan Viewport)

	h := s.Start(context.Background(), samples)
	samples <- at(400, 2000)
	samples <- at(0, 2000)
	samples <- at(400, 2000)
	samples <- at(0, 2000)

	// the last sample may still be in the observer's hands; Stop observes it first
	h.Stop()
	h.Stop()
	assert.Equal(t, int32(2), n.Load())

	select {
	case <-h.Done():
	default:
		t.Fatal("observer goroutine still running after Stop")
	}
	select {
	case samples <- at(0, 4000):
		t.Fatal("a stopped handle still receives samples")
	default:
	}
	assert.Equal(t, int32(2), n.Load())
}

func TestSentinel_RestartAfterStop(t *testing.T) {
	trigger, n := countingTrigger()
	s := NewSentinel(trigger)

	first := make(chan Viewport)
	h := s.Start(context.Background(), first)
	first <- at(0, 2000)
	h.Stop()
	require.Equal(t, int32(1), n.Load())

	second := make(chan Viewport)
	h = s.Start(context.Background(), second)
	second <- at(0, 3000)
	h.Stop()
	assert.Equal(t, int32(2), n.Load(), "a new handle on the same sentinel fires")

	assert.True(t, s.Observe(at(0, 4000)), "direct observation works after Stop")
}

func TestSentinel_StartExitsWhenSamplesClose(t *testing.T) {
	trigger, _ := countingTrigger()
	samples := make(chan Viewport)
	h := NewSentinel(trigger).Start(context.Background(), samples)

	close(samples)
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("observer did not exit")
	}
	h.Stop()
}

func TestSentinel_StartExitsOnContextCancel(t *testing.T) {
	trigger, _ := countingTrigger()
	ctx, cancel := context.WithCancel(context.Background())
	h := NewSentinel(trigger).Start(ctx, make(chan Viewport))

	cancel()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("observer did not exit")
	}
}

func TestSentinel_DrivesController(t *testing.T) {
	c := newTestController(catalogue(map[string][]string{"서울": titles("seoul", 30)}))
	defer c.Close()
	s := NewSentinel(func() { c.RequestNextPage() })

	c.SetFilter(FilterState{LocationScope: "서울"})
	require.Len(t, settle(t, c).Items, 12)

	// Each page adds 1200px of content; scrolling to the end pulls the next page.
	for _, content := range []float64{1200, 2400} {
		require.True(t, s.Observe(at(0, content)))
		settle(t, c)
	}
	snap := c.Snapshot()
	assert.Len(t, snap.Items, 30)
	assert.False(t, snap.HasMore)

	assert.True(t, s.Observe(at(0, 3600)))
	assert.Len(t, settle(t, c).Items, 30, "exhausted feeds ignore further triggers")
}
