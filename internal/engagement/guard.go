package engagement

import (
	"context"
	"sync"
	"time"

	"github.com/iftakhar005/talenthunt/internal/entities"
)

// DefaultVideoWindow is continuous playback needed before a video view is counted.
const DefaultVideoWindow = 3 * time.Second

// Policy defines when a play is counted. Zero Delay counts on the first play signal.
type Policy struct {
	Delay time.Duration
}

// Immediate counts on the first play signal.
func Immediate() Policy {
	return Policy{}
}

// Delayed counts after d of continuous playback, pause cancels pending count.
func Delayed(d time.Duration) Policy {
	return Policy{Delay: d}
}

// PolicyFor returns default policy of the content type: videos are counted after
// DefaultVideoWindow, audio and blogs on the first play or open.
func PolicyFor(t entities.ContentType) Policy {
	if t == entities.VideoType {
		return Delayed(DefaultVideoWindow)
	}
	return Immediate()
}

// PlayGuard increments engagement counter at most once per armed content.
// A failed increment is logged and not retried.
type PlayGuard struct {
	c      Counter
	t      entities.ContentType
	policy Policy

	mu      sync.Mutex
	id      string
	counted bool
	timer   *time.Timer
	gen     uint64
	// done is closed when the last armed count is sent or cancelled
	done chan struct{}
	err  error
}

// NewPlayGuard returns guard armed for the content.
func NewPlayGuard(c Counter, t entities.ContentType, id string, p Policy) *PlayGuard {
	return &PlayGuard{
		c:      c,
		t:      t,
		id:     id,
		policy: p,
	}
}

// Counted reports whether the increment was already issued for current content.
func (g *PlayGuard) Counted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.counted
}

// Play handles "started playing" signal.
func (g *PlayGuard) Play(ctx context.Context) {
	g.mu.Lock()

	if g.counted || g.timer != nil {
		g.mu.Unlock()
		return
	}

	done := make(chan struct{})
	g.done = done

	if g.policy.Delay <= 0 {
		g.counted = true
		id := g.id
		g.mu.Unlock()

		g.count(ctx, id, done)
		return
	}

	gen := g.gen
	g.timer = time.AfterFunc(g.policy.Delay, func() {
		g.mu.Lock()
		if gen != g.gen || g.counted {
			g.mu.Unlock()
			return
		}
		g.counted = true
		g.timer = nil
		id := g.id
		g.mu.Unlock()

		g.count(ctx, id, done)
	})

	g.mu.Unlock()
}

// Wait blocks until the pending count of the last Play is sent or cancelled and
// returns the increment error. It returns immediately when nothing was armed.
func (g *PlayGuard) Wait(ctx context.Context) error {
	g.mu.Lock()
	done := g.done
	g.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.err
}

// Pause handles pause signal, pending delayed count is cancelled.
func (g *PlayGuard) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cancel()
}

// Reset re-arms the guard when content identifier changes.
func (g *PlayGuard) Reset(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id == g.id {
		return
	}

	g.cancel()
	g.id = id
	g.counted = false
	g.done = nil
	g.err = nil
}

// cancel must be called under lock.
func (g *PlayGuard) cancel() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
		close(g.done)
	}
	g.gen++
}

func (g *PlayGuard) count(ctx context.Context, id string, done chan struct{}) {
	defer close(done)

	err := g.c.CountEngagement(ctx, g.t, id)
	if err != nil {
		log.WithError(err).
			WithField("content", id).
			WithField("type", g.t).
			Error("failed to count engagement")
	}

	g.mu.Lock()
	if g.id == id {
		g.err = err
	}
	g.mu.Unlock()
}
