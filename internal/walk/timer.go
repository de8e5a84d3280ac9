package walk

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultTickInterval = time.Second

// Timer is the live walk stopwatch. While running, a goroutine refreshes the elapsed time
// every tick. Stopping persists the wall clock time between start and stop, so missed
// ticks do not lose time.
type Timer struct {
	tracker      *Tracker
	now          func() time.Time
	tickInterval time.Duration
	onTick       func(elapsed time.Duration)

	mutex     sync.Mutex
	running   bool
	startedAt time.Time
	elapsed   time.Duration
	cancel    context.CancelFunc
	done      chan struct{}
}

type TimerOption func(t *Timer)

func WithClock(now func() time.Time) TimerOption {
	return func(t *Timer) {
		t.now = now
	}
}

func WithTickInterval(d time.Duration) TimerOption {
	return func(t *Timer) {
		t.tickInterval = d
	}
}

// WithOnTick sets a callback invoked from the timer goroutine on every tick.
func WithOnTick(f func(elapsed time.Duration)) TimerOption {
	return func(t *Timer) {
		t.onTick = f
	}
}

func NewTimer(tracker *Tracker, opts ...TimerOption) *Timer {
	t := &Timer{
		tracker:      tracker,
		now:          time.Now,
		tickInterval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins timing. Starting a running timer does nothing and returns false.
// The timer outlives ctx cancellation; it runs until Stop.
func (t *Timer) Start(ctx context.Context) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.running {
		return false
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	t.running = true
	t.startedAt = t.now()
	t.elapsed = 0
	t.cancel = cancel
	t.done = make(chan struct{})

	go t.loop(runCtx, t.done)

	log.Debugf("walk timer started at %s", t.startedAt.Format(time.TimeOnly))
	return true
}

func (t *Timer) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mutex.Lock()
			t.elapsed = t.now().Sub(t.startedAt)
			elapsed := t.elapsed
			t.mutex.Unlock()

			if t.onTick != nil {
				t.onTick(elapsed)
			}
		}
	}
}

func (t *Timer) Running() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.running
}

// Elapsed is the time counted at the last tick.
func (t *Timer) Elapsed() time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.elapsed
}

// Stop ends timing and adds the elapsed whole seconds to today's walk.
// Stopping a stopped timer returns 0.
func (t *Timer) Stop(ctx context.Context) (int, error) {
	t.mutex.Lock()
	if !t.running {
		t.mutex.Unlock()
		return 0, nil
	}
	t.running = false
	t.cancel()
	done := t.done
	startedAt := t.startedAt
	t.mutex.Unlock()

	<-done

	stoppedAt := t.now()
	seconds := int(stoppedAt.Sub(startedAt) / time.Second)
	if seconds <= 0 {
		return 0, nil
	}

	if _, err := t.tracker.AddSecondsToTodaysWalk(ctx, seconds, stoppedAt); err != nil {
		return 0, fmt.Errorf("persist walk timer: %w", err)
	}
	log.Debugf("walk timer stopped, %d seconds added", seconds)
	return seconds, nil
}
