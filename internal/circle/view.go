// Package circle implements a circular selector: a disc cut into equal
// sectors, each with an icon and a checked state that is toggled by
// tapping and animated by growing, darkening and casting a longer shadow.
//
// The package is host-agnostic. A host calls Measure, Layout, Draw and
// the pointer entry points, and supplies icons, animation ticks and
// redraw requests through the interfaces in host.go. All methods must be
// called from a single UI goroutine.
package circle

import (
	"image"
	"image/color"

	"github.com/iburimskiy/circle-selector/internal/logging"
)

// Deps are the host collaborators of a View.
type Deps struct {
	Icons IconProvider
	// DefaultIcon replaces icons the provider cannot resolve.
	DefaultIcon image.Image
	Scheduler   Scheduler
	// Invalidate requests a redraw. Coalescing is up to the host.
	Invalidate func()
	Density    Density
	Easing     Easing
	Logger     *logging.Logger
}

// View is the widget facade. It owns the items, the circle
// configuration and the derived sectors.
type View struct {
	cfg         Config
	icons       IconProvider
	defaultIcon image.Image
	redraw      func()
	density     Density
	log         *logging.Logger

	items   []Item
	sectors []Sector

	radius  float64
	pivot   Point
	laidOut bool

	animator *Animator

	// OnToggle is called after a tap flips the checked state of a sector.
	OnToggle func(index int, checked bool)
	// OnClick is called on every pointer-up, hit or not.
	OnClick func(items []Item)
}

// New creates a View. cfg.ScaleOnClick is clamped to its allowed range.
func New(cfg Config, deps Deps) *View {
	log := deps.Logger
	if log == nil {
		log = logging.NopLogger()
	}
	cfg = cfg.normalized()

	v := &View{
		cfg:         cfg,
		icons:       deps.Icons,
		defaultIcon: deps.DefaultIcon,
		redraw:      deps.Invalidate,
		density:     deps.Density,
		log:         log.WithComponent("circle"),
		radius:      cfg.Radius,
	}
	v.animator = newAnimator(deps.Scheduler, cfg.AnimationDuration, deps.Easing, v)
	return v
}

func (v *View) invalidate() {
	if v.redraw != nil {
		v.redraw()
	}
}

// Items returns a copy of the item list.
func (v *View) Items() []Item {
	out := make([]Item, len(v.items))
	copy(out, v.items)
	return out
}

// Sectors returns a copy of the current sector state.
func (v *View) Sectors() []Sector {
	out := make([]Sector, len(v.sectors))
	copy(out, v.sectors)
	return out
}

// Radius returns the current radius in pixels.
func (v *View) Radius() float64 { return v.radius }

// Color returns the base fill color.
func (v *View) Color() color.NRGBA { return v.cfg.Color }

// ShadowRadius returns the shadow blur radius in pixels.
func (v *View) ShadowRadius() float64 { return v.cfg.ShadowRadius }

// ScaleOnClick returns the clamped enlargement factor of checked sectors.
func (v *View) ScaleOnClick() float64 { return v.cfg.ScaleOnClick }

// Pivot returns the circle center in widget-local pixels.
func (v *View) Pivot() Point { return v.pivot }

// LaidOut reports whether at least one layout pass has happened.
func (v *View) LaidOut() bool { return v.laidOut }

// Animating reports whether any sector is animating.
func (v *View) Animating() bool { return v.animator.Active() > 0 }

// SetItems replaces the item list. After the first layout the sectors
// are rebuilt immediately; before it they are built by Layout.
func (v *View) SetItems(items []Item) {
	v.items = make([]Item, len(items))
	copy(v.items, items)
	if v.laidOut {
		v.rebuildSectors()
	}
	v.invalidate()
}

// AddItem appends an item. Before the first layout it is only recorded
// and gets its sector at the next Layout.
func (v *View) AddItem(item Item) {
	v.items = append(v.items, item)
	if !v.laidOut {
		return
	}
	v.sectors = append(v.sectors, v.buildSector(len(v.items)-1, item))
	// every sector span and anchor moved
	v.refreshSectors()
	v.invalidate()
}

// SetRadius changes the radius in pixels. Negative values become zero.
func (v *View) SetRadius(r float64) {
	if r < 0 {
		r = 0
	}
	v.radius = r
	if len(v.sectors) > 0 {
		v.refreshSectors()
	}
	v.invalidate()
}

// SetColor changes the base fill color. Scale and icons are untouched.
func (v *View) SetColor(c color.NRGBA) {
	v.cfg.Color = c
	v.recolorSectors()
	v.invalidate()
}

// SetShadowRadius changes the shadow blur radius in pixels.
func (v *View) SetShadowRadius(r float64) {
	if r < 0 {
		r = 0
	}
	v.cfg.ShadowRadius = r
	v.reshadowSectors()
	v.invalidate()
}

// SetScaleOnClick changes the enlargement factor, clamped to
// [MinScaleOnClick, MaxScaleOnClick]. Checked sectors at rest follow it.
func (v *View) SetScaleOnClick(s float64) {
	old := v.cfg.ScaleOnClick
	v.cfg.ScaleOnClick = ClampScale(s)
	for i := range v.sectors {
		sec := &v.sectors[i]
		if sec.Checked && sec.Scale == old && !v.animator.Running(i) {
			v.applyScale(i, v.cfg.ScaleOnClick)
		}
	}
	v.invalidate()
}

// PointerDown reports whether the View wants the rest of the gesture.
// It always does.
func (v *View) PointerDown(x, y float64) bool {
	return true
}

// PointerUp hit-tests (x, y) and toggles the sector under it. It returns
// the toggled index, or false when nothing was hit.
func (v *View) PointerUp(x, y float64) (int, bool) {
	i, ok := v.SectorAt(x, y)
	if ok {
		v.toggle(i)
	}
	if v.OnClick != nil {
		v.OnClick(v.Items())
	}
	return i, ok
}

// SectorAt returns the sector under (x, y) without changing anything.
func (v *View) SectorAt(x, y float64) (int, bool) {
	return HitTest(
		Point{X: x, Y: y},
		Circle{Center: v.pivot, Radius: v.radius},
		v.cfg.ScaleOnClick,
		len(v.sectors),
		func(i int) bool { return v.sectors[i].Checked },
	)
}

// Toggle flips sector i as a tap would.
func (v *View) Toggle(i int) bool {
	if i < 0 || i >= len(v.sectors) {
		return false
	}
	v.toggle(i)
	return true
}

// toggle flips the checked flag on both sector and item, then animates
// from wherever the sector currently is.
func (v *View) toggle(i int) {
	s := &v.sectors[i]
	dest := v.cfg.ScaleOnClick
	if s.Checked {
		dest = 1
	}
	s.Checked = !s.Checked
	v.items[i].Checked = s.Checked

	if v.animator.Running(i) {
		v.log.Debug("restarting sector animation", "index", i, "from", s.Scale, "to", dest)
	}
	v.animator.Start(i, s.Scale, dest)

	if v.OnToggle != nil {
		v.OnToggle(i, s.Checked)
	}
	v.invalidate()
}
