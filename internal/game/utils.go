package game

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// toNRGBA converts any color to a non-premultiplied color.
func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// randomColor returns a random saturated, bright color.
func randomColor() color.NRGBA {
	r, g, b := colorful.HappyColor().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// hexColor formats c the way the config file writes colors.
func hexColor(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 0xff,
		G: float64(c.G) / 0xff,
		B: float64(c.B) / 0xff,
	}.Hex()
}
