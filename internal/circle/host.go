package circle

import (
	"image"
	"image/color"
	"time"
)

// IconRef is an opaque icon handle understood by the IconProvider.
type IconRef string

// IconProvider resolves an icon to a square raster of sizePx pixels.
// A nil image means the icon could not be resolved; the View then draws
// its default icon instead.
type IconProvider interface {
	Resolve(ref IconRef, sizePx int) image.Image
}

// IconProviderFunc adapts a function to IconProvider.
type IconProviderFunc func(ref IconRef, sizePx int) image.Image

// Resolve calls f(ref, sizePx).
func (f IconProviderFunc) Resolve(ref IconRef, sizePx int) image.Image {
	return f(ref, sizePx)
}

// TimerID identifies a scheduled animation run.
type TimerID uint64

// Scheduler delivers animation ticks on the UI thread.
//
// Schedule registers a run lasting d. onTick receives linear progress in
// [0, 1] and onDone fires once after the final tick. Cancel must be
// synchronous: once it returns, no callback of that run fires again.
type Scheduler interface {
	Schedule(d time.Duration, onTick func(progress float64), onDone func()) TimerID
	Cancel(id TimerID)
}

// Shadow describes a drop shadow cast by a filled arc.
type Shadow struct {
	Radius float64 // blur radius
	DX, DY float64 // offset
	Color  color.NRGBA
}

// Paint carries the fill of one sector.
type Paint struct {
	Color  color.NRGBA
	Shadow *Shadow
}

// Surface is the drawing target handed to View.Draw. Angles are in
// degrees, clockwise from 3 o'clock; arcs are pie slices of the oval.
type Surface interface {
	FillArc(oval Rect, startDeg, sweepDeg float64, paint Paint)
	StrokeArc(oval Rect, startDeg, sweepDeg, width float64, stroke color.NRGBA)
	DrawImage(img image.Image, x, y float64)
}

// Density converts device-independent lengths to pixels.
type Density float64

// Px converts dp to pixels. A non-positive density is treated as 1.
func (d Density) Px(dp float64) float64 {
	if d <= 0 {
		return dp
	}
	return dp * float64(d)
}

// Dp converts pixels back to dp.
func (d Density) Dp(px float64) float64 {
	if d <= 0 {
		return px
	}
	return px / float64(d)
}
