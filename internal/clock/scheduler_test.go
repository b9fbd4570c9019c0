package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSchedulerFiresInDueOrder(t *testing.T) {
	c := NewMock(epoch)
	s := NewScheduler(c)

	var got []string
	s.After(300*time.Millisecond, func() { got = append(got, "c") })
	s.After(100*time.Millisecond, func() { got = append(got, "a") })
	s.After(100*time.Millisecond, func() { got = append(got, "b") })

	if n := s.Run(c.Now()); n != 0 {
		t.Fatalf("Run before due fired %d", n)
	}
	c.Advance(100 * time.Millisecond)
	if n := s.Run(c.Now()); n != 2 {
		t.Fatalf("Run at 100ms fired %d, want 2", n)
	}
	c.Advance(time.Second)
	s.Run(c.Now())

	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("order=%v, want [a b c]", got)
	}
	if s.Pending() != 0 {
		t.Fatalf("Pending=%d, want 0", s.Pending())
	}
}

func TestSchedulerCancel(t *testing.T) {
	c := NewMock(epoch)
	s := NewScheduler(c)

	fired := false
	id := s.After(time.Millisecond, func() { fired = true })
	if !s.Cancel(id) {
		t.Fatalf("Cancel returned false for pending timer")
	}
	if s.Cancel(id) {
		t.Fatalf("Cancel twice returned true")
	}
	c.Advance(time.Second)
	s.Run(c.Now())
	if fired {
		t.Fatalf("cancelled timer fired")
	}
}

func TestSchedulerChainedCallbackRunsWhenDue(t *testing.T) {
	c := NewMock(epoch)
	s := NewScheduler(c)

	steps := 0
	s.After(400*time.Millisecond, func() {
		steps++
		s.After(100*time.Millisecond, func() { steps++ })
	})

	c.Advance(400 * time.Millisecond)
	s.Run(c.Now())
	if steps != 1 {
		t.Fatalf("steps=%d after first deadline, want 1", steps)
	}
	c.Advance(100 * time.Millisecond)
	s.Run(c.Now())
	if steps != 2 {
		t.Fatalf("steps=%d after chained deadline, want 2", steps)
	}
}

func TestSchedulerCloseRejectsWork(t *testing.T) {
	c := NewMock(epoch)
	s := NewScheduler(c)

	fired := 0
	s.After(0, func() { fired++ })
	s.Close()
	if id := s.After(0, func() { fired++ }); id != 0 {
		t.Fatalf("After on closed scheduler returned %d", id)
	}
	s.Run(c.Now().Add(time.Hour))
	if fired != 0 {
		t.Fatalf("closed scheduler fired %d callbacks", fired)
	}
}
