package engine

import (
	"sort"
	"time"
)

// Token identifies a scheduled task; the zero Token is never issued
type Token uint64

// Scheduler is a frame-driven list of cancelable one-shot tasks
// Time only moves through Advance, so tasks fire on the tick goroutine
// Not safe for concurrent use
type Scheduler struct {
	now   time.Duration
	next  Token
	tasks []task
	batch []task // Due tasks of the Advance in progress
}

type task struct {
	token Token
	due   time.Duration
	fn    func()
}

// NewScheduler creates an empty scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once d from now and returns its token
func (s *Scheduler) After(d time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}
	s.next++
	s.tasks = append(s.tasks, task{token: s.next, due: s.now + d, fn: fn})
	return s.next
}

// Cancel removes a pending task, reporting whether it was still pending
func (s *Scheduler) Cancel(tok Token) bool {
	for i, t := range s.tasks {
		if t.token == tok {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	// Due in the running batch but not yet fired
	for i := range s.batch {
		if s.batch[i].token == tok && s.batch[i].fn != nil {
			s.batch[i].fn = nil
			return true
		}
	}
	return false
}

// Pending reports whether tok has not yet fired or been cancelled
func (s *Scheduler) Pending(tok Token) bool {
	for _, t := range s.tasks {
		if t.token == tok {
			return true
		}
	}
	for _, t := range s.batch {
		if t.token == tok && t.fn != nil {
			return true
		}
	}
	return false
}

// Len returns the number of pending tasks
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Advance moves time forward by dt and runs every task that became due
// Tasks run in due order, ties broken by scheduling order
// A task scheduled from inside a callback waits for the next Advance
// Returns the number of tasks run
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}

	due := make([]task, 0, len(s.tasks))
	keep := s.tasks[:0]
	for _, t := range s.tasks {
		if t.due <= s.now {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	s.tasks = keep

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	s.batch = due

	ran := 0
	for i := range s.batch {
		fn := s.batch[i].fn
		if fn == nil {
			continue
		}
		s.batch[i].fn = nil
		fn()
		ran++
	}
	s.batch = nil
	return ran
}

// Clear drops all pending tasks
func (s *Scheduler) Clear() {
	s.tasks = s.tasks[:0]
	for i := range s.batch {
		s.batch[i].fn = nil
	}
}

// Now returns the scheduler's elapsed time
func (s *Scheduler) Now() time.Duration {
	return s.now
}
