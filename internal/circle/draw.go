package circle

// Draw paints the View onto s. Shadows go first for all sectors; the
// second pass repaints every fill without shadow, so no shadow falls on
// a neighbour, then strokes the border and blits the icon.
func (v *View) Draw(s Surface) {
	n := len(v.sectors)
	if n == 0 || v.radius <= 0 {
		return
	}
	span := SectorSpan(n)

	for i, sec := range v.sectors {
		s.FillArc(sec.ScaledBounds(v.radius), SectorStart(n, i), span, sec.Paint)
	}

	for i, sec := range v.sectors {
		oval := sec.ScaledBounds(v.radius)
		start := SectorStart(n, i)

		s.FillArc(oval, start, span, Paint{Color: sec.Paint.Color})
		if v.cfg.BorderWidth > 0 {
			s.StrokeArc(oval, start, span, v.cfg.BorderWidth, v.cfg.BorderColor)
		}
		if sec.ScaledIcon.Image != nil {
			s.DrawImage(sec.ScaledIcon.Image, sec.ScaledIcon.X, sec.ScaledIcon.Y)
		}
	}
}
