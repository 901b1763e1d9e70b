package input

import (
	"sync"
	"time"

	"github.com/dshills/modalkit/internal/input/key"
)

// DefaultSequenceTimeout is how long the key buffer waits for the next
// key of a multi-key command.
const DefaultSequenceTimeout = 1000 * time.Millisecond

// Timer is the part of *time.Timer the key buffer uses.
type Timer interface {
	Stop() bool
}

// Scheduler starts a one-shot timer. time.AfterFunc is the default;
// tests substitute a manual one.
type Scheduler func(d time.Duration, f func()) Timer

func realScheduler(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// KeyBuffer accumulates the keys of a command being typed. Every Add
// restarts an inactivity timer; when it fires the buffer clears itself.
type KeyBuffer struct {
	mu     sync.Mutex
	events []key.Event

	timeout  time.Duration
	schedule Scheduler
	timer    Timer

	// generation invalidates timers started for an older sequence.
	generation uint64

	// session is held while the expiry runs so it never overlaps the
	// owner's parse and execute cycle.
	session sync.Locker

	onExpire func(discarded []key.Event)
}

// NewKeyBuffer creates a buffer with the given inactivity timeout. A
// non-positive timeout disables expiry. session may be nil.
func NewKeyBuffer(timeout time.Duration, session sync.Locker) *KeyBuffer {
	return &KeyBuffer{
		timeout:  timeout,
		schedule: realScheduler,
		session:  session,
	}
}

// SetScheduler replaces the timer source.
func (b *KeyBuffer) SetScheduler(s Scheduler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.schedule = s
}

// SetTimeout changes the inactivity timeout for keys added later.
func (b *KeyBuffer) SetTimeout(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timeout = d
}

// Timeout returns the inactivity timeout.
func (b *KeyBuffer) Timeout() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timeout
}

// OnExpire sets a callback run after the timer cleared a non-empty
// buffer. It runs with the session lock held.
func (b *KeyBuffer) OnExpire(fn func(discarded []key.Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onExpire = fn
}

// Add appends a key, restarts the timer and returns the buffered keys.
func (b *KeyBuffer) Add(ev key.Event) []key.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, ev)
	b.stopLocked()
	b.generation++
	if b.timeout > 0 {
		gen := b.generation
		b.timer = b.schedule(b.timeout, func() { b.expire(gen) })
	}
	return append([]key.Event(nil), b.events...)
}

// Clear empties the buffer and cancels the timer.
func (b *KeyBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
	b.stopLocked()
	b.generation++
}

// Keys returns a snapshot of the buffered keys.
func (b *KeyBuffer) Keys() []key.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]key.Event(nil), b.events...)
}

// Len returns the number of buffered keys.
func (b *KeyBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// String returns the buffered keys in key notation.
func (b *KeyBuffer) String() string {
	return key.NewSequenceFrom(b.Keys()...).String()
}

func (b *KeyBuffer) stopLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// expire clears the buffer if no key arrived since the timer started.
func (b *KeyBuffer) expire(gen uint64) {
	if b.session != nil {
		b.session.Lock()
		defer b.session.Unlock()
	}

	b.mu.Lock()
	if gen != b.generation || len(b.events) == 0 {
		b.mu.Unlock()
		return
	}
	discarded := b.events
	b.events = nil
	b.timer = nil
	b.generation++
	fn := b.onExpire
	b.mu.Unlock()

	if fn != nil {
		fn(discarded)
	}
}
