package circle

import (
	"math"
	"time"
)

// Handle identifies one animation run of one sector. The generation
// changes on every start, so callbacks of a cancelled run never match.
type Handle struct {
	Index      int
	Generation uint64
}

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// AccelerateDecelerate starts and ends slowly. It is the default easing
// of click animations.
func AccelerateDecelerate(t float64) float64 {
	return 0.5 - math.Cos(math.Pi*t)/2
}

// Linear returns t.
func Linear(t float64) float64 { return t }

// scaleTarget receives interpolated scales.
type scaleTarget interface {
	applyScale(i int, scale float64) bool
	invalidate()
}

type run struct {
	handle   Handle
	timer    TimerID
	from, to float64
}

// Animator runs at most one scale interpolation per sector.
type Animator struct {
	scheduler  Scheduler
	duration   time.Duration
	ease       Easing
	target     scaleTarget
	runs       map[int]*run
	generation uint64
}

func newAnimator(s Scheduler, d time.Duration, ease Easing, target scaleTarget) *Animator {
	if ease == nil {
		ease = AccelerateDecelerate
	}
	return &Animator{
		scheduler: s,
		duration:  d,
		ease:      ease,
		target:    target,
		runs:      make(map[int]*run),
	}
}

// Start cancels any run of sector i and interpolates its scale from
// from to to. Without a scheduler the destination is applied at once.
func (a *Animator) Start(i int, from, to float64) Handle {
	a.Cancel(i)

	a.generation++
	h := Handle{Index: i, Generation: a.generation}

	if a.scheduler == nil {
		a.target.applyScale(i, to)
		a.target.invalidate()
		return h
	}

	r := &run{handle: h, from: from, to: to}
	a.runs[i] = r
	r.timer = a.scheduler.Schedule(a.duration,
		func(progress float64) { a.tick(h, progress) },
		func() { a.finish(h) },
	)
	return h
}

func (a *Animator) current(h Handle) (*run, bool) {
	r, ok := a.runs[h.Index]
	if !ok || r.handle != h {
		return nil, false
	}
	return r, true
}

func (a *Animator) tick(h Handle, progress float64) {
	r, ok := a.current(h)
	if !ok {
		return
	}
	progress = math.Max(0, math.Min(1, progress))
	v := r.from + (r.to-r.from)*a.ease(progress)
	if !a.target.applyScale(h.Index, v) {
		delete(a.runs, h.Index)
		return
	}
	a.target.invalidate()
}

func (a *Animator) finish(h Handle) {
	r, ok := a.current(h)
	if !ok {
		return
	}
	delete(a.runs, h.Index)
	a.target.applyScale(h.Index, r.to)
	a.target.invalidate()
}

// Cancel stops the run of sector i, leaving its scale where it is.
func (a *Animator) Cancel(i int) {
	r, ok := a.runs[i]
	if !ok {
		return
	}
	delete(a.runs, i)
	if a.scheduler != nil {
		a.scheduler.Cancel(r.timer)
	}
}

// CancelAll stops every run.
func (a *Animator) CancelAll() {
	for i := range a.runs {
		a.Cancel(i)
	}
}

// Running reports whether sector i is animating.
func (a *Animator) Running(i int) bool {
	_, ok := a.runs[i]
	return ok
}

// Active returns the number of running animations.
func (a *Animator) Active() int {
	return len(a.runs)
}
