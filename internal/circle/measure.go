package circle

import "math"

// SpecMode says how a MeasureSpec constrains a dimension.
type SpecMode int

const (
	// Unspecified lets the View take its desired size.
	Unspecified SpecMode = iota
	// AtMost caps the desired size at Size.
	AtMost
	// Exactly forces Size.
	Exactly
)

// MeasureSpec is the constraint a host places on one dimension.
type MeasureSpec struct {
	Mode SpecMode
	Size float64
}

// resolve picks the measured size for a desired size under the constraint.
func (s MeasureSpec) resolve(desired float64) float64 {
	switch s.Mode {
	case Exactly:
		return s.Size
	case AtMost:
		return math.Min(desired, s.Size)
	default:
		return desired
	}
}

// defaultRadius returns the radius used when none was set explicitly.
func (v *View) defaultRadius() float64 {
	if v.cfg.DefaultRadius > 0 {
		return v.cfg.DefaultRadius
	}
	return v.density.Px(DefaultRadiusDp)
}

// DesiredSize is the edge length that fits the fully enlarged circle,
// its shadow and the padding.
func (v *View) DesiredSize() float64 {
	return 2*v.cfg.Padding + (v.radius+v.cfg.ShadowRadius)*2*v.cfg.ScaleOnClick
}

// Measure returns the width and height the View wants under the given
// constraints. An unset radius takes its default first.
func (v *View) Measure(width, height MeasureSpec) (float64, float64) {
	if v.radius == 0 {
		v.radius = v.defaultRadius()
	}
	desired := v.DesiredSize()
	return width.resolve(desired), height.resolve(desired)
}

// Layout places the circle in a width x height box and rebuilds the
// sectors. When the box is too small the radius shrinks so the enlarged,
// shadowed circle fits exactly.
func (v *View) Layout(width, height float64) {
	if v.radius == 0 {
		v.radius = v.defaultRadius()
	}

	avail := math.Min(width, height)
	if v.DesiredSize() > avail {
		r := (avail-2*v.cfg.Padding)/2/v.cfg.ScaleOnClick - v.cfg.ShadowRadius
		v.radius = math.Max(0, r)
	}

	v.pivot = Point{X: width / 2, Y: height / 2}
	v.rebuildSectors()
	v.laidOut = true

	v.log.Debug("layout",
		"width", width,
		"height", height,
		"radius", v.radius,
		"sectors", len(v.sectors),
	)
	v.invalidate()
}
