package circle

import "math"

const (
	fullCircleDegrees = 360.0
	halfCircleDegrees = 180.0

	// iconRelativeStartPos is the fraction of the radius at which icons are anchored.
	iconRelativeStartPos = 0.7

	// iconChordThreshold is the sector count above which icon size follows the chord length.
	iconChordThreshold = 8
)

// Point is a location in widget-local pixels.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned box in widget-local pixels.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Outset grows the rectangle by d on every side. Negative d shrinks it.
func (r Rect) Outset(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// Offset moves the rectangle by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Circle is the disc the sectors are cut from.
type Circle struct {
	Center Point
	Radius float64
}

// Bounds returns the oval bounding box of the circle.
func (c Circle) Bounds() Rect {
	return Rect{
		Left:   c.Center.X - c.Radius,
		Top:    c.Center.Y - c.Radius,
		Right:  c.Center.X + c.Radius,
		Bottom: c.Center.Y + c.Radius,
	}
}

// SectorSpan returns the angular width in degrees of each of n sectors.
// A non-positive count has no sectors and a span of zero.
func SectorSpan(n int) float64 {
	if n <= 0 {
		return 0
	}
	return fullCircleDegrees / float64(n)
}

// SectorStart returns the start angle of sector i, clockwise from 3 o'clock.
func SectorStart(n, i int) float64 {
	return SectorSpan(n) * float64(i)
}

// SectorCenter returns the icon anchor of sector i: the bisector of the
// sector at 0.7 of the radius from the circle center.
func SectorCenter(n int, radius float64, center Point, i int) Point {
	span := SectorSpan(n)
	degrees := span*float64(i) + span/2
	rad := degrees * math.Pi / halfCircleDegrees
	dist := radius * iconRelativeStartPos
	return Point{
		X: center.X + dist*math.Cos(rad),
		Y: center.Y + dist*math.Sin(rad),
	}
}

// PointAngle returns the screen angle of p around center in [0, 360).
// Screen y grows downward, so angles run clockwise from 3 o'clock.
func PointAngle(p, center Point) float64 {
	dx := p.X - center.X
	dy := p.Y - center.Y

	if dx == 0 {
		switch {
		case dy > 0:
			return 90
		case dy < 0:
			return 270
		default:
			return 0
		}
	}

	degrees := math.Atan(dy/dx) * halfCircleDegrees / math.Pi

	switch {
	case dx < 0:
		// second and third quadrants, and the negative x axis
		degrees += halfCircleDegrees
	case dy < 0:
		degrees += fullCircleDegrees
	}
	return degrees
}

// HitTest maps p to a sector index. A point inside the base radius hits
// the sector under it; a point between the base and the scaled radius
// hits only when that sector is checked, since a checked sector is drawn
// enlarged. checked reports the checked state of sector i.
func HitTest(p Point, c Circle, scaleOnClick float64, n int, checked func(i int) bool) (int, bool) {
	if n <= 0 {
		return -1, false
	}

	d := p.Sub(c.Center)
	dist2 := d.X*d.X + d.Y*d.Y
	inBase := dist2 <= c.Radius*c.Radius
	scaled := c.Radius * scaleOnClick
	inScaled := dist2 <= scaled*scaled
	if !inScaled {
		return -1, false
	}

	angle := PointAngle(p, c.Center)
	span := SectorSpan(n)

	index := n - 1
	cumulative := 0.0
	for i := 0; i < n; i++ {
		cumulative += span
		if angle <= cumulative {
			index = i
			break
		}
	}

	if inBase || (checked != nil && checked(index)) {
		return index, true
	}
	return -1, false
}

// IconSize returns the icon edge length in pixels for n sectors on a
// circle of the given radius. Above eight sectors the size is the chord
// between adjacent sector bisectors at half radius, so neighbours never
// overlap. fallback is used before a radius is known.
func IconSize(n int, radius float64, fallback int) int {
	if n > iconChordThreshold {
		return int((radius / 2) * math.Sqrt(2*(1-math.Cos(2*math.Pi/float64(n)))))
	}
	if radius != 0 {
		return int(radius / 3)
	}
	return fallback
}
