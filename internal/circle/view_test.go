package circle

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"
)

type fakeRun struct {
	d      time.Duration
	onTick func(float64)
	onDone func()
}

// fakeScheduler hands control of every tick to the test.
type fakeScheduler struct {
	next      TimerID
	live      map[TimerID]*fakeRun
	all       map[TimerID]*fakeRun
	cancelled []TimerID
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		live: make(map[TimerID]*fakeRun),
		all:  make(map[TimerID]*fakeRun),
	}
}

func (f *fakeScheduler) Schedule(d time.Duration, onTick func(float64), onDone func()) TimerID {
	f.next++
	r := &fakeRun{d: d, onTick: onTick, onDone: onDone}
	f.live[f.next] = r
	f.all[f.next] = r
	return f.next
}

func (f *fakeScheduler) Cancel(id TimerID) {
	if _, ok := f.live[id]; ok {
		delete(f.live, id)
		f.cancelled = append(f.cancelled, id)
	}
}

func (f *fakeScheduler) tick(id TimerID, p float64) {
	if r, ok := f.live[id]; ok {
		r.onTick(p)
	}
}

func (f *fakeScheduler) finish(id TimerID) {
	if r, ok := f.live[id]; ok {
		r.onTick(1)
		delete(f.live, id)
		r.onDone()
	}
}

func solidIcons() IconProvider {
	return IconProviderFunc(func(ref IconRef, size int) image.Image {
		if ref == "missing" {
			return nil
		}
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	})
}

type recordingSurface struct {
	calls []string
	fills []Paint
}

func (r *recordingSurface) FillArc(oval Rect, startDeg, sweepDeg float64, paint Paint) {
	if paint.Shadow != nil {
		r.calls = append(r.calls, "shadow")
	} else {
		r.calls = append(r.calls, "fill")
	}
	r.fills = append(r.fills, paint)
}

func (r *recordingSurface) StrokeArc(oval Rect, startDeg, sweepDeg, width float64, stroke color.NRGBA) {
	r.calls = append(r.calls, "stroke")
}

func (r *recordingSurface) DrawImage(img image.Image, x, y float64) {
	r.calls = append(r.calls, "image")
}

func testConfig() Config {
	cfg := DefaultConfig(1)
	cfg.Radius = 100
	cfg.ScaleOnClick = 1.2
	cfg.ShadowRadius = 10
	return cfg
}

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Icon: IconRef("icon")}
	}
	return items
}

type harness struct {
	view    *View
	sched   *fakeScheduler
	redraws int
}

func newHarness(t *testing.T, n int) *harness {
	t.Helper()
	h := &harness{sched: newFakeScheduler()}
	h.view = New(testConfig(), Deps{
		Icons:       solidIcons(),
		DefaultIcon: image.NewNRGBA(image.Rect(0, 0, 4, 4)),
		Scheduler:   h.sched,
		Invalidate:  func() { h.redraws++ },
		Density:     1,
	})
	h.view.SetItems(makeItems(n))
	h.view.Layout(300, 300)
	return h
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// pointAt returns the widget point at angle degrees and distance from the pivot.
func pointAt(v *View, degrees, dist float64) (float64, float64) {
	rad := degrees * math.Pi / 180
	return v.Pivot().X + dist*math.Cos(rad), v.Pivot().Y + dist*math.Sin(rad)
}

func TestLayoutBuildsOneSectorPerItem(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	if got := len(v.Sectors()); got != 5 {
		t.Fatalf("len(Sectors) = %d, want 5", got)
	}
	if v.Radius() != 100 {
		t.Errorf("Radius = %v, want 100", v.Radius())
	}
	if p := v.Pivot(); p.X != 150 || p.Y != 150 {
		t.Errorf("Pivot = %+v, want (150, 150)", p)
	}
	for i, s := range v.Sectors() {
		if s.Scale != 1 || s.Checked {
			t.Errorf("sector %d: scale %v checked %v, want resting state", i, s.Scale, s.Checked)
		}
		if s.Paint.Color != DefaultColor {
			t.Errorf("sector %d: color %v, want %v", i, s.Paint.Color, DefaultColor)
		}
		if b := s.Icon.Image.Bounds(); b.Dx() != 33 {
			t.Errorf("sector %d: icon size %d, want 33", i, b.Dx())
		}
	}
}

func TestLayoutBuildsCheckedItemsEnlarged(t *testing.T) {
	sched := newFakeScheduler()
	v := New(testConfig(), Deps{Icons: solidIcons(), Scheduler: sched})
	items := makeItems(3)
	items[1].Checked = true
	v.SetItems(items)
	v.Layout(300, 300)

	s := v.Sectors()[1]
	if !s.Checked || s.Scale != 1.2 {
		t.Fatalf("checked sector: checked %v scale %v, want true 1.2", s.Checked, s.Scale)
	}
	if want := Darken(DefaultColor, 1.2); s.Paint.Color != want {
		t.Errorf("checked color = %v, want %v", s.Paint.Color, want)
	}
	if b := s.ScaledIcon.Image.Bounds(); b.Dx() != 39 {
		t.Errorf("scaled icon size = %d, want 39", b.Dx())
	}
}

func TestTapTogglesAndAnimates(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	var toggled []int
	v.OnToggle = func(i int, checked bool) {
		if !checked {
			t.Errorf("OnToggle(%d, false), want checked", i)
		}
		toggled = append(toggled, i)
	}

	i, ok := v.PointerUp(150, 130)
	if !ok || i != 3 {
		t.Fatalf("PointerUp = (%d, %v), want (3, true)", i, ok)
	}
	if len(toggled) != 1 || toggled[0] != 3 {
		t.Errorf("OnToggle calls = %v, want [3]", toggled)
	}

	// flag flips before the animation runs
	if s := v.Sectors()[3]; !s.Checked || s.Scale != 1 {
		t.Errorf("after tap: checked %v scale %v, want true 1", s.Checked, s.Scale)
	}
	if !v.Items()[3].Checked {
		t.Error("item 3 should be checked")
	}
	if len(h.sched.live) != 1 {
		t.Fatalf("live runs = %d, want 1", len(h.sched.live))
	}
	if r := h.sched.all[1]; r.d != DefaultAnimationDuration {
		t.Errorf("duration = %v, want %v", r.d, DefaultAnimationDuration)
	}

	before := h.redraws
	h.sched.tick(1, 0.5)
	s := v.Sectors()[3]
	if !near(s.Scale, 1.1) {
		t.Errorf("mid scale = %v, want 1.1", s.Scale)
	}
	if want := Darken(DefaultColor, s.Scale); s.Paint.Color != want {
		t.Errorf("mid color = %v, want %v", s.Paint.Color, want)
	}
	if !near(s.Paint.Shadow.Radius, 10*s.Scale) {
		t.Errorf("mid shadow radius = %v, want %v", s.Paint.Shadow.Radius, 10*s.Scale)
	}
	if h.redraws <= before {
		t.Error("tick did not request a redraw")
	}

	h.sched.finish(1)
	s = v.Sectors()[3]
	if s.Scale != 1.2 {
		t.Errorf("final scale = %v, want 1.2", s.Scale)
	}
	if want := Darken(DefaultColor, 1.2); s.Paint.Color != want {
		t.Errorf("final color = %v, want %v", s.Paint.Color, want)
	}
	if v.Animating() {
		t.Error("animation should be idle after completion")
	}
}

func TestIconGrowsAroundItsAnchor(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	v.PointerUp(150, 130)
	h.sched.finish(1)

	s := v.Sectors()[3]
	w := float64(s.Icon.Image.Bounds().Dx())
	if !near(s.ScaledIcon.X, s.Icon.X-w/2*0.2) || !near(s.ScaledIcon.Y, s.Icon.Y-w/2*0.2) {
		t.Errorf("scaled icon at (%v, %v), icon at (%v, %v)", s.ScaledIcon.X, s.ScaledIcon.Y, s.Icon.X, s.Icon.Y)
	}
	if got := s.ScaledIcon.Image.Bounds().Dx(); got != int(w*1.2) {
		t.Errorf("scaled icon width = %d, want %d", got, int(w*1.2))
	}
}

func TestTapRoundTrip(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view
	orig := v.Sectors()[3]

	v.PointerUp(150, 130)
	h.sched.finish(1)
	v.PointerUp(150, 130)
	h.sched.finish(2)

	s := v.Sectors()[3]
	if s.Checked || v.Items()[3].Checked {
		t.Error("sector should be unchecked after two taps")
	}
	if s.Scale != orig.Scale {
		t.Errorf("scale = %v, want %v", s.Scale, orig.Scale)
	}
	if s.Paint.Color != orig.Paint.Color {
		t.Errorf("color = %v, want %v", s.Paint.Color, orig.Paint.Color)
	}
	if s.ScaledIcon.X != orig.ScaledIcon.X || s.ScaledIcon.Y != orig.ScaledIcon.Y {
		t.Errorf("icon moved to (%v, %v), want (%v, %v)", s.ScaledIcon.X, s.ScaledIcon.Y, orig.ScaledIcon.X, orig.ScaledIcon.Y)
	}
}

func TestRetapReversesFromCurrentScale(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	v.PointerUp(150, 130)
	h.sched.tick(1, 0.5)
	mid := v.Sectors()[3].Scale

	v.PointerUp(150, 130)
	if len(h.sched.cancelled) != 1 || h.sched.cancelled[0] != 1 {
		t.Fatalf("cancelled = %v, want [1]", h.sched.cancelled)
	}
	if v.Sectors()[3].Checked {
		t.Error("second tap should uncheck the sector")
	}
	if s := v.Sectors()[3].Scale; s != mid {
		t.Errorf("scale jumped to %v on re-tap, want %v", s, mid)
	}

	h.sched.tick(2, 0)
	if s := v.Sectors()[3].Scale; !near(s, mid) {
		t.Errorf("reverse run starts at %v, want %v", s, mid)
	}

	// a stale callback of the first run must not move the sector
	h.sched.all[1].onTick(1)
	if s := v.Sectors()[3].Scale; !near(s, mid) {
		t.Errorf("stale tick moved scale to %v", s)
	}

	h.sched.finish(2)
	if s := v.Sectors()[3].Scale; s != 1 {
		t.Errorf("final scale = %v, want 1", s)
	}
}

func TestCheckedSectorHitOutsideBaseRadius(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	x, y := pointAt(v, 36, 50)
	if i, ok := v.PointerUp(x, y); !ok || i != 0 {
		t.Fatalf("tap inside = (%d, %v), want (0, true)", i, ok)
	}
	h.sched.finish(1)

	x, y = pointAt(v, 36, 110)
	if i, ok := v.SectorAt(x, y); !ok || i != 0 {
		t.Errorf("ring hit on checked sector = (%d, %v), want (0, true)", i, ok)
	}

	x, y = pointAt(v, 108, 110)
	if _, ok := v.SectorAt(x, y); ok {
		t.Error("ring hit on unchecked sector should miss")
	}

	x, y = pointAt(v, 36, 130)
	if _, ok := v.PointerUp(x, y); ok {
		t.Error("tap beyond the scaled radius should miss")
	}
}

func TestOnClickFiresForEveryPointerUp(t *testing.T) {
	h := newHarness(t, 4)
	v := h.view

	var clicks [][]Item
	v.OnClick = func(items []Item) { clicks = append(clicks, items) }

	v.PointerUp(150, 130)
	v.PointerUp(0, 0)

	if len(clicks) != 2 {
		t.Fatalf("OnClick calls = %d, want 2", len(clicks))
	}
	checked := 0
	for _, it := range clicks[0] {
		if it.Checked {
			checked++
		}
	}
	if checked != 1 {
		t.Errorf("first click saw %d checked items, want 1", checked)
	}
}

func TestAddItemBeforeLayoutIsOnlyRecorded(t *testing.T) {
	sched := newFakeScheduler()
	v := New(testConfig(), Deps{Icons: solidIcons(), Scheduler: sched})
	v.SetItems(makeItems(5))
	v.AddItem(Item{Icon: "extra"})

	if got := len(v.Items()); got != 6 {
		t.Errorf("len(Items) = %d, want 6", got)
	}
	if got := len(v.Sectors()); got != 0 {
		t.Errorf("len(Sectors) = %d before layout, want 0", got)
	}
	surf := &recordingSurface{}
	v.Draw(surf)
	if len(surf.calls) != 0 {
		t.Errorf("draw before layout issued %d calls, want 0", len(surf.calls))
	}

	v.Layout(300, 300)
	if got := len(v.Sectors()); got != 6 {
		t.Errorf("len(Sectors) after layout = %d, want 6", got)
	}
}

func TestAddItemAfterLayoutIsDrawnImmediately(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	before := h.redraws
	v.AddItem(Item{Icon: "extra"})
	if h.redraws == before {
		t.Error("AddItem after layout should request a redraw")
	}
	if got := len(v.Sectors()); got != 6 {
		t.Fatalf("len(Sectors) = %d, want 6", got)
	}

	surf := &recordingSurface{}
	v.Draw(surf)
	fills := 0
	for _, c := range surf.calls {
		if c == "fill" {
			fills++
		}
	}
	if fills != 6 {
		t.Errorf("drawn sectors = %d, want 6", fills)
	}

	// anchors follow the new sector count
	want := SectorCenter(6, 100, v.Pivot(), 0)
	s := v.Sectors()[0]
	w := float64(s.Icon.Image.Bounds().Dx())
	if !near(s.Icon.X+w/2, want.X) || !near(s.Icon.Y+w/2, want.Y) {
		t.Errorf("icon 0 centered at (%v, %v), want (%v, %v)", s.Icon.X+w/2, s.Icon.Y+w/2, want.X, want.Y)
	}
}

func TestSetItemsAfterLayoutRebuildsAndStopsAnimations(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	v.PointerUp(150, 130)
	h.sched.tick(1, 0.5)

	items := v.Items()
	v.SetItems(items[:4])

	if v.Animating() {
		t.Error("rebuild should stop running animations")
	}
	if len(h.sched.live) != 0 {
		t.Errorf("live runs = %d, want 0", len(h.sched.live))
	}
	if got := len(v.Sectors()); got != 4 {
		t.Fatalf("len(Sectors) = %d, want 4", got)
	}
	if s := v.Sectors()[3]; !s.Checked || s.Scale != 1.2 {
		t.Errorf("rebuilt sector 3: checked %v scale %v, want true 1.2", s.Checked, s.Scale)
	}
}

func TestSetColorKeepsScaleAndGeometry(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	v.PointerUp(150, 130)
	h.sched.finish(1)
	before := v.Sectors()

	red := color.NRGBA{R: 200, G: 20, B: 20, A: 255}
	v.SetColor(red)

	for i, s := range v.Sectors() {
		want := red
		if i == 3 {
			want = Darken(red, 1.2)
		}
		if s.Paint.Color != want {
			t.Errorf("sector %d: color %v, want %v", i, s.Paint.Color, want)
		}
		if s.Scale != before[i].Scale {
			t.Errorf("sector %d: scale changed to %v", i, s.Scale)
		}
		if s.ScaledIcon.X != before[i].ScaledIcon.X || s.Bounds != before[i].Bounds {
			t.Errorf("sector %d: geometry changed", i)
		}
	}
	if v.Color() != red {
		t.Errorf("Color = %v, want %v", v.Color(), red)
	}
}

func TestSetShadowRadius(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	v.SetShadowRadius(20)
	for i, s := range v.Sectors() {
		c := SectorCenter(5, 100, v.Pivot(), i)
		sh := s.Paint.Shadow
		if sh == nil {
			t.Fatalf("sector %d has no shadow", i)
		}
		if !near(sh.Radius, 20) {
			t.Errorf("sector %d: shadow radius %v, want 20", i, sh.Radius)
		}
		if !near(sh.DX, (c.X-150)/30) || !near(sh.DY, (c.Y-150)/30) {
			t.Errorf("sector %d: shadow offset (%v, %v)", i, sh.DX, sh.DY)
		}
	}
}

func TestSetRadiusRefreshesGeometryButKeepsColor(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	v.PointerUp(150, 130)
	h.sched.finish(1)
	colorBefore := v.Sectors()[3].Paint.Color

	v.SetRadius(60)
	s := v.Sectors()[3]
	if want := (Circle{Center: v.Pivot(), Radius: 60}).Bounds(); s.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", s.Bounds, want)
	}
	if s.Paint.Color != colorBefore {
		t.Errorf("color changed to %v", s.Paint.Color)
	}
	if s.Scale != 1.2 || !s.Checked {
		t.Errorf("scale %v checked %v, want 1.2 true", s.Scale, s.Checked)
	}
	if got := s.Icon.Image.Bounds().Dx(); got != 20 {
		t.Errorf("icon size = %d, want 20", got)
	}
}

func TestMeasure(t *testing.T) {
	v := New(testConfig(), Deps{})

	tests := []struct {
		name string
		ms   MeasureSpec
		want float64
	}{
		{"unspecified", MeasureSpec{Mode: Unspecified}, 264},
		{"at most, smaller", MeasureSpec{Mode: AtMost, Size: 200}, 200},
		{"at most, larger", MeasureSpec{Mode: AtMost, Size: 400}, 264},
		{"exactly", MeasureSpec{Mode: Exactly, Size: 500}, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := v.Measure(tt.ms, tt.ms)
			if !near(w, tt.want) || !near(h, tt.want) {
				t.Errorf("Measure = (%v, %v), want %v", w, h, tt.want)
			}
		})
	}
}

func TestMeasureAppliesDefaultRadius(t *testing.T) {
	cfg := testConfig()
	cfg.Radius = 0
	v := New(cfg, Deps{Density: 2})
	v.Measure(MeasureSpec{}, MeasureSpec{})
	if v.Radius() != cfg.DefaultRadius {
		t.Errorf("Radius = %v, want default %v", v.Radius(), cfg.DefaultRadius)
	}
}

func TestLayoutShrinksRadiusToFit(t *testing.T) {
	v := New(testConfig(), Deps{})
	v.SetItems(makeItems(3))
	v.Layout(200, 260)

	want := 200.0/2/1.2 - 10
	if !near(v.Radius(), want) {
		t.Errorf("Radius = %v, want %v", v.Radius(), want)
	}
	if !near(v.DesiredSize(), 200) {
		t.Errorf("DesiredSize = %v, want 200", v.DesiredSize())
	}
}

func TestScaleOnClickIsClamped(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{3, 1.5}, {0.5, 1.1}, {1.3, 1.3}} {
		cfg := testConfig()
		cfg.ScaleOnClick = tt.in
		if got := New(cfg, Deps{}).ScaleOnClick(); got != tt.want {
			t.Errorf("ScaleOnClick(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnresolvedIconFallsBackToDefault(t *testing.T) {
	v := New(testConfig(), Deps{
		Icons:       solidIcons(),
		DefaultIcon: image.NewNRGBA(image.Rect(0, 0, 4, 4)),
	})
	v.SetItems([]Item{{Icon: "missing"}, {Icon: "icon"}})
	v.Layout(300, 300)

	s := v.Sectors()[0]
	if s.Icon.Image == nil {
		t.Fatal("expected the default icon")
	}
	if b := s.Icon.Image.Bounds(); b.Dx() != 33 || b.Dy() != 33 {
		t.Errorf("default icon size = %v, want 33x33", b.Size())
	}
}

func TestNoIconAtAllIsNotDrawn(t *testing.T) {
	v := New(testConfig(), Deps{Icons: solidIcons()})
	v.SetItems([]Item{{Icon: "missing"}})
	v.Layout(300, 300)

	surf := &recordingSurface{}
	v.Draw(surf)
	for _, c := range surf.calls {
		if c == "image" {
			t.Fatal("no icon should be drawn without a default icon")
		}
	}
}

func TestZeroItemsIsInert(t *testing.T) {
	v := New(testConfig(), Deps{Scheduler: newFakeScheduler()})
	v.Layout(300, 300)

	surf := &recordingSurface{}
	v.Draw(surf)
	if len(surf.calls) != 0 {
		t.Errorf("draw issued %d calls, want 0", len(surf.calls))
	}
	if _, ok := v.PointerUp(150, 150); ok {
		t.Error("no sector should be hit")
	}
	if v.Toggle(0) {
		t.Error("Toggle(0) should fail without sectors")
	}
}

func TestDrawOrder(t *testing.T) {
	h := newHarness(t, 3)
	surf := &recordingSurface{}
	h.view.Draw(surf)

	want := []string{
		"shadow", "shadow", "shadow",
		"fill", "stroke", "image",
		"fill", "stroke", "image",
		"fill", "stroke", "image",
	}
	if len(surf.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", surf.calls, want)
	}
	for i := range want {
		if surf.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", surf.calls, want)
		}
	}
}

func TestToggleWithoutSchedulerJumpsToDestination(t *testing.T) {
	v := New(testConfig(), Deps{Icons: solidIcons()})
	v.SetItems(makeItems(2))
	v.Layout(300, 300)

	if !v.Toggle(1) {
		t.Fatal("Toggle(1) failed")
	}
	if s := v.Sectors()[1]; s.Scale != 1.2 || !s.Checked {
		t.Errorf("sector 1: scale %v checked %v, want 1.2 true", s.Scale, s.Checked)
	}
}

func TestSetScaleOnClickMovesRestingCheckedSectors(t *testing.T) {
	h := newHarness(t, 5)
	v := h.view

	v.PointerUp(150, 130)
	h.sched.finish(1)

	v.SetScaleOnClick(1.4)
	if s := v.Sectors()[3]; !near(s.Scale, 1.4) {
		t.Errorf("scale = %v, want 1.4", s.Scale)
	}
	if s := v.Sectors()[0]; s.Scale != 1 {
		t.Errorf("unchecked sector scale = %v, want 1", s.Scale)
	}
}
