// Package frame drives timed animation runs from the host's update loop.
package frame

import (
	"slices"
	"time"

	"github.com/iburimskiy/circle-selector/internal/circle"
)

type run struct {
	start    time.Time
	duration time.Duration
	onTick   func(float64)
	onDone   func()
}

// Scheduler implements circle.Scheduler on top of a game loop. Runs only
// advance when Advance is called, so every callback fires on the caller's
// goroutine.
type Scheduler struct {
	clock func() time.Time
	next  circle.TimerID
	runs  map[circle.TimerID]*run
}

var _ circle.Scheduler = (*Scheduler)(nil)

// New creates a Scheduler reading time from clock. A nil clock uses time.Now.
func New(clock func() time.Time) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{
		clock: clock,
		runs:  make(map[circle.TimerID]*run),
	}
}

// Schedule registers a run starting now.
func (s *Scheduler) Schedule(d time.Duration, onTick func(float64), onDone func()) circle.TimerID {
	s.next++
	s.runs[s.next] = &run{
		start:    s.clock(),
		duration: d,
		onTick:   onTick,
		onDone:   onDone,
	}
	return s.next
}

// Cancel drops the run. It is a no-op for finished or unknown runs.
func (s *Scheduler) Cancel(id circle.TimerID) {
	delete(s.runs, id)
}

// Pending returns the number of unfinished runs.
func (s *Scheduler) Pending() int {
	return len(s.runs)
}

// Advance ticks every run with its progress at the current clock time.
// Runs reaching the end get a final tick of 1 and then onDone. Runs
// scheduled from inside a callback wait for the next Advance.
func (s *Scheduler) Advance() {
	if len(s.runs) == 0 {
		return
	}
	now := s.clock()

	ids := make([]circle.TimerID, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		r, ok := s.runs[id]
		if !ok {
			// cancelled by an earlier callback
			continue
		}
		p := progress(now.Sub(r.start), r.duration)
		if r.onTick != nil {
			r.onTick(p)
		}
		if p < 1 {
			continue
		}
		if _, ok := s.runs[id]; !ok {
			continue
		}
		delete(s.runs, id)
		if r.onDone != nil {
			r.onDone()
		}
	}
}

func progress(elapsed, d time.Duration) float64 {
	if d <= 0 || elapsed >= d {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(d)
}
