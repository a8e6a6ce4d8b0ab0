package circle

import "image/color"

// Darken divides the red, green and blue channels of c by scale and keeps
// alpha. A scale of 1 returns c unchanged; larger scales darken. The same
// function colors a statically checked sector and every animation tick.
func Darken(c color.NRGBA, scale float64) color.NRGBA {
	if scale <= 0 {
		return c
	}
	return color.NRGBA{
		R: divideChannel(c.R, scale),
		G: divideChannel(c.G, scale),
		B: divideChannel(c.B, scale),
		A: c.A,
	}
}

func divideChannel(v uint8, scale float64) uint8 {
	d := int(float64(v) / scale)
	if d > 255 {
		return 255
	}
	if d < 0 {
		return 0
	}
	return uint8(d)
}
