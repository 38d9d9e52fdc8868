// Package popup owns the transient "added to cart" indicator. One item is
// shown at a time and auto-hides after a fixed delay; pending hides never
// stack.
package popup

import (
	"sync"
	"time"

	"gardenshop/internal/domain"
)

// DefaultDelay is how long the indicator stays visible after an add.
const DefaultDelay = 3 * time.Second

// State is the visible popup snapshot for one user. Never persisted.
type State struct {
	Visible bool             `json:"visible"`
	Item    *domain.CartLine `json:"item,omitempty"`
}

type entry struct {
	state State
	timer *time.Timer
	// gen identifies the timer that is allowed to hide this entry. A Show
	// landing while the previous timer's callback is already running bumps
	// it, so the stale callback finds a mismatch and leaves the new item
	// alone. Scheduler-wide monotonic, so an entry recreated after Hide can
	// never collide with a callback from its predecessor.
	gen uint64
}

// Scheduler keeps at most one live auto-hide timer per user. Each Show
// cancels any pending hide before scheduling a fresh one, so rapid
// successive adds converge on a single timer for the newest item.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	seq     uint64
	entries map[string]*entry
	closed  bool
}

// New builds a scheduler with the given auto-hide delay. A non-positive
// delay falls back to DefaultDelay.
func New(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{
		delay:   delay,
		entries: make(map[string]*entry),
	}
}

// Show makes the indicator visible for the given line and schedules the
// auto-hide. A pending hide for the same user is cancelled first.
func (s *Scheduler) Show(userID string, line domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	e, ok := s.entries[userID]
	if !ok {
		e = &entry{}
		s.entries[userID] = e
	}
	s.cancelLocked(e)

	s.seq++
	gen := s.seq
	e.gen = gen
	e.state = State{Visible: true, Item: &line}
	e.timer = time.AfterFunc(s.delay, func() {
		s.autoHide(userID, gen)
	})
}

// Hide clears the indicator immediately and cancels the scheduled hide.
// Safe to call with nothing pending.
func (s *Scheduler) Hide(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return
	}
	s.cancelLocked(e)
	delete(s.entries, userID)
}

// State returns the current popup snapshot for a user.
func (s *Scheduler) State(userID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[userID]; ok {
		return e.state
	}
	return State{}
}

// Close cancels every pending timer. Further Shows are ignored; callbacks
// racing Close cannot mutate state after teardown.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, e := range s.entries {
		s.cancelLocked(e)
		delete(s.entries, id)
	}
}

// autoHide runs when the delay elapses. Stop on an already-fired timer
// returns false, so a callback can arrive here after its Show was
// superseded; the generation check keeps it from hiding the newer item.
func (s *Scheduler) autoHide(userID string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	e, ok := s.entries[userID]
	if !ok || e.gen != gen {
		return
	}
	e.timer = nil
	delete(s.entries, userID)
}

// cancelLocked stops a pending timer if one exists. Cancelling an absent
// timer is a no-op.
func (s *Scheduler) cancelLocked(e *entry) {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// pendingTimers reports how many hide timers are live, for tests.
func (s *Scheduler) pendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.entries {
		if e.timer != nil {
			n++
		}
	}
	return n
}
