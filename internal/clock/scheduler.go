package clock

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback. Zero is never issued.
type TimerID uint64

type entry struct {
	id  TimerID
	due time.Time
	fn  func()
}

// Scheduler is a single-threaded queue of delayed callbacks. Nothing fires on
// its own: the owner calls Run from its tick, so callbacks always execute on
// the owner's goroutine and can be cancelled wholesale on teardown.
type Scheduler struct {
	clock   Clock
	entries []entry
	nextID  TimerID
	closed  bool
}

func NewScheduler(c Clock) *Scheduler {
	if c == nil {
		c = Real{}
	}
	return &Scheduler{clock: c}
}

// After schedules fn to run once d has elapsed on the scheduler's clock.
// Returns 0 once the scheduler is closed.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if s.closed || fn == nil {
		return 0
	}
	s.nextID++
	s.entries = append(s.entries, entry{id: s.nextID, due: s.clock.Now().Add(d), fn: fn})
	return s.nextID
}

// Cancel drops a pending callback. Reports whether it was still pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i := range s.entries {
		if s.entries[i].id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending callback.
func (s *Scheduler) CancelAll() {
	s.entries = nil
}

// Close cancels everything and rejects further scheduling.
func (s *Scheduler) Close() {
	s.CancelAll()
	s.closed = true
}

// Pending returns the number of callbacks not yet fired.
func (s *Scheduler) Pending() int { return len(s.entries) }

// Run fires every callback due at or before now, earliest first and in
// scheduling order for equal deadlines. Callbacks scheduled by a callback are
// eligible in the same call if already due. Returns how many fired.
func (s *Scheduler) Run(now time.Time) int {
	fired := 0
	for !s.closed {
		idx := s.nextDue(now)
		if idx < 0 {
			break
		}
		e := s.entries[idx]
		s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
		e.fn()
		fired++
	}
	return fired
}

func (s *Scheduler) nextDue(now time.Time) int {
	if len(s.entries) == 0 {
		return -1
	}
	sort.SliceStable(s.entries, func(i, j int) bool {
		if s.entries[i].due.Equal(s.entries[j].due) {
			return s.entries[i].id < s.entries[j].id
		}
		return s.entries[i].due.Before(s.entries[j].due)
	})
	if s.entries[0].due.After(now) {
		return -1
	}
	return 0
}
