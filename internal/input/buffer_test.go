package input

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshills/modalkit/internal/input/key"
)

// manualTimer fires only when the test says so.
type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (c *manualClock) schedule(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// last returns the most recently started timer.
func (c *manualClock) last() *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.timers) == 0 {
		return nil
	}
	return c.timers[len(c.timers)-1]
}

// fire runs the latest timer if it is still armed.
func (c *manualClock) fire() bool {
	t := c.last()
	if t == nil || t.stopped {
		return false
	}
	t.f()
	return true
}

func runeEvent(r rune) key.Event { return key.NewRuneEvent(r, key.ModNone) }

func TestKeyBufferAdd(t *testing.T) {
	b := NewKeyBuffer(DefaultSequenceTimeout, nil)
	clock := &manualClock{}
	b.SetScheduler(clock.schedule)

	snap := b.Add(runeEvent('d'))
	if len(snap) != 1 {
		t.Fatalf("expected 1 buffered key, got %d", len(snap))
	}
	b.Add(runeEvent('2'))

	if b.Len() != 2 {
		t.Errorf("expected Len 2, got %d", b.Len())
	}
	if b.String() != "d2" {
		t.Errorf("expected %q, got %q", "d2", b.String())
	}

	// The snapshot is not aliased to the buffer.
	snap[0] = runeEvent('x')
	if b.Keys()[0].Rune != 'd' {
		t.Error("Add returned a slice aliasing the buffer")
	}

	if len(clock.timers) != 2 {
		t.Fatalf("expected a timer per key, got %d", len(clock.timers))
	}
	if !clock.timers[0].stopped {
		t.Error("first timer should be stopped when a key arrives")
	}
	if clock.timers[1].d != DefaultSequenceTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultSequenceTimeout, clock.timers[1].d)
	}
}

func TestKeyBufferExpire(t *testing.T) {
	b := NewKeyBuffer(DefaultSequenceTimeout, nil)
	clock := &manualClock{}
	b.SetScheduler(clock.schedule)

	var discarded []key.Event
	b.OnExpire(func(keys []key.Event) { discarded = keys })

	b.Add(runeEvent('g'))
	if !clock.fire() {
		t.Fatal("timer should be armed")
	}

	if b.Len() != 0 {
		t.Errorf("expected empty buffer after expiry, got %q", b.String())
	}
	if len(discarded) != 1 || discarded[0].Rune != 'g' {
		t.Errorf("expected discarded [g], got %v", discarded)
	}
}

func TestKeyBufferStaleTimer(t *testing.T) {
	b := NewKeyBuffer(DefaultSequenceTimeout, nil)
	clock := &manualClock{}
	b.SetScheduler(clock.schedule)

	expired := 0
	b.OnExpire(func([]key.Event) { expired++ })

	b.Add(runeEvent('d'))
	stale := clock.last()
	b.Add(runeEvent('2'))

	// A timer that lost the race with Add must not clear the new sequence.
	stale.f()
	if b.String() != "d2" {
		t.Errorf("stale timer cleared the buffer: %q", b.String())
	}
	if expired != 0 {
		t.Errorf("expected no expiry callback, got %d", expired)
	}
}

func TestKeyBufferClear(t *testing.T) {
	b := NewKeyBuffer(DefaultSequenceTimeout, nil)
	clock := &manualClock{}
	b.SetScheduler(clock.schedule)

	expired := 0
	b.OnExpire(func([]key.Event) { expired++ })

	b.Add(runeEvent('d'))
	timer := clock.last()
	b.Clear()

	if !timer.stopped {
		t.Error("Clear should stop the timer")
	}
	timer.f()
	if expired != 0 {
		t.Error("expiry after Clear should be ignored")
	}
}

func TestKeyBufferNoTimeout(t *testing.T) {
	b := NewKeyBuffer(0, nil)
	clock := &manualClock{}
	b.SetScheduler(clock.schedule)

	b.Add(runeEvent('d'))
	if clock.last() != nil {
		t.Error("a zero timeout should not start a timer")
	}
}

func TestKeyBufferSessionLock(t *testing.T) {
	var session sync.Mutex
	b := NewKeyBuffer(DefaultSequenceTimeout, &session)
	clock := &manualClock{}
	b.SetScheduler(clock.schedule)

	b.Add(runeEvent('d'))

	session.Lock()
	done := make(chan struct{})
	go func() {
		clock.fire()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("expiry ran while the session was busy")
	case <-time.After(20 * time.Millisecond):
	}
	session.Unlock()
	<-done

	if b.Len() != 0 {
		t.Error("buffer should be cleared once the session is free")
	}
}

func TestKeyBufferRealTimer(t *testing.T) {
	b := NewKeyBuffer(10*time.Millisecond, nil)
	b.Add(runeEvent('d'))

	require.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)
}
