package circle

import (
	"image"

	"golang.org/x/image/draw"
)

// Item is one entry of the selector. Its position in the item list is
// its sector index; duplicate icons are allowed.
type Item struct {
	Icon    IconRef
	Checked bool
}

// Icon is an icon bitmap placed at its top-left corner.
type Icon struct {
	X, Y  float64
	Image image.Image
}

// Sector is the derived drawing state of the item with the same index.
// Animation ticks mutate it in place.
type Sector struct {
	Bounds  Rect
	Paint   Paint
	Checked bool
	Scale   float64

	// Icon is the unscaled placement; ScaledIcon is what gets drawn.
	Icon       Icon
	ScaledIcon Icon
}

// ScaledBounds returns the sector oval grown by its current scale.
func (s Sector) ScaledBounds(radius float64) Rect {
	return s.Bounds.Outset(radius * (s.Scale - 1))
}

// sectorCenter returns the icon anchor of sector i for the current layout.
func (v *View) sectorCenter(i int) Point {
	return SectorCenter(len(v.items), v.radius, v.pivot, i)
}

// shadowAt returns the shadow of a sector anchored at center. The offset
// points away from the pivot; the blur follows the sector's scale.
func (v *View) shadowAt(center Point, scale float64) *Shadow {
	return &Shadow{
		Radius: v.cfg.ShadowRadius * scale,
		DX:     (center.X - v.pivot.X) / shadowDirectionDiv,
		DY:     (center.Y - v.pivot.Y) / shadowDirectionDiv,
		Color:  v.cfg.ShadowColor,
	}
}

func (v *View) buildSector(i int, item Item) Sector {
	center := v.sectorCenter(i)

	scale := 1.0
	color := v.cfg.Color
	if item.Checked {
		scale = v.cfg.ScaleOnClick
		color = Darken(v.cfg.Color, scale)
	}

	icon := v.makeIcon(center, item.Icon)
	return Sector{
		Bounds: Circle{Center: v.pivot, Radius: v.radius}.Bounds(),
		Paint: Paint{
			Color:  color,
			Shadow: v.shadowAt(center, scale),
		},
		Checked:    item.Checked,
		Scale:      scale,
		Icon:       icon,
		ScaledIcon: scaleIcon(icon, scale),
	}
}

// rebuildSectors recreates every sector from the item list. Running
// animations are dropped; each sector takes the resting state of its item.
func (v *View) rebuildSectors() {
	v.animator.CancelAll()
	v.sectors = make([]Sector, len(v.items))
	for i, item := range v.items {
		v.sectors[i] = v.buildSector(i, item)
	}
}

// refreshSectors recomputes bounds, shadows and icons after a size change.
// Color, scale and checked state belong to the color setter and the
// animator and are kept as they are.
func (v *View) refreshSectors() {
	bounds := Circle{Center: v.pivot, Radius: v.radius}.Bounds()
	for i := range v.sectors {
		s := &v.sectors[i]
		center := v.sectorCenter(i)
		s.Bounds = bounds
		s.Paint.Shadow = v.shadowAt(center, s.Scale)
		s.Icon = v.makeIcon(center, v.items[i].Icon)
		s.ScaledIcon = scaleIcon(s.Icon, s.Scale)
	}
}

// recolorSectors applies a new base color. Checked sectors are darkened
// by their current scale.
func (v *View) recolorSectors() {
	for i := range v.sectors {
		s := &v.sectors[i]
		if s.Checked {
			s.Paint.Color = Darken(v.cfg.Color, s.Scale)
		} else {
			s.Paint.Color = v.cfg.Color
		}
	}
}

func (v *View) reshadowSectors() {
	for i := range v.sectors {
		s := &v.sectors[i]
		s.Paint.Shadow = v.shadowAt(v.sectorCenter(i), s.Scale)
	}
}

// applyScale sets the animated scale of sector i together with every
// value derived from it.
func (v *View) applyScale(i int, scale float64) bool {
	if i < 0 || i >= len(v.sectors) {
		return false
	}
	s := &v.sectors[i]
	s.Scale = scale
	s.Paint.Color = Darken(v.cfg.Color, scale)
	if s.Paint.Shadow != nil {
		sh := *s.Paint.Shadow
		sh.Radius = v.cfg.ShadowRadius * scale
		s.Paint.Shadow = &sh
	}
	s.ScaledIcon = scaleIcon(s.Icon, scale)
	return true
}

func (v *View) iconSize() int {
	return IconSize(len(v.items), v.radius, v.cfg.DefaultIconSize)
}

// makeIcon resolves ref at the current icon size and centers it on center.
func (v *View) makeIcon(center Point, ref IconRef) Icon {
	size := v.iconSize()
	var img image.Image
	if v.icons != nil && size > 0 {
		img = v.icons.Resolve(ref, size)
	}
	if img == nil {
		v.log.Warn("icon not resolved, using default", "icon", string(ref), "size", size)
		img = ScaleImage(v.defaultIcon, size, size)
	}
	if img == nil {
		return Icon{X: center.X, Y: center.Y}
	}
	b := img.Bounds()
	return Icon{
		X:     center.X - float64(b.Dx())/2,
		Y:     center.Y - float64(b.Dy())/2,
		Image: img,
	}
}

// scaleIcon grows icon by scale while keeping it centered on its anchor.
func scaleIcon(icon Icon, scale float64) Icon {
	if icon.Image == nil || scale == 1 {
		return icon
	}
	b := icon.Image.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	return Icon{
		X:     icon.X - w/2*(scale-1),
		Y:     icon.Y - h/2*(scale-1),
		Image: ScaleImage(icon.Image, int(w*scale), int(h*scale)),
	}
}

// ScaleImage resamples src to w x h. It returns src itself when the size
// already matches and nil when there is nothing to draw.
func ScaleImage(src image.Image, w, h int) image.Image {
	if src == nil || w <= 0 || h <= 0 {
		return nil
	}
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
