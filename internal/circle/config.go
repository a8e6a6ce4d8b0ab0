package circle

import (
	"image/color"
	"time"
)

const (
	// MinScaleOnClick and MaxScaleOnClick bound how far a checked sector grows.
	MinScaleOnClick = 1.1
	MaxScaleOnClick = 1.5

	DefaultRadiusDp       = 100
	DefaultIconSizeDp     = 34
	DefaultShadowRadiusDp = 40
	DefaultBorderWidthPx  = 8

	DefaultAnimationDuration = 150 * time.Millisecond

	// shadowDirectionDiv shrinks the center-to-sector vector into a shadow offset.
	shadowDirectionDiv = 30
)

var (
	DefaultColor       = color.NRGBA{R: 0x03, G: 0xDA, B: 0xC6, A: 0xFF}
	DefaultShadowColor = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
	DefaultBorderColor = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Config is the circle-level configuration of one View. Lengths are pixels.
type Config struct {
	Color        color.NRGBA
	ShadowRadius float64
	ShadowColor  color.NRGBA
	ScaleOnClick float64

	BorderWidth float64
	BorderColor color.NRGBA

	// Radius is the explicit radius; zero means DefaultRadius applies at
	// the first measure or layout.
	Radius        float64
	DefaultRadius float64

	// DefaultIconSize is used while the radius is still zero.
	DefaultIconSize int

	// Padding is applied on each side of the widget.
	Padding float64

	AnimationDuration time.Duration
}

// DefaultConfig returns the stock configuration converted with density.
func DefaultConfig(density Density) Config {
	return Config{
		Color:             DefaultColor,
		ShadowRadius:      density.Px(DefaultShadowRadiusDp),
		ShadowColor:       DefaultShadowColor,
		ScaleOnClick:      MinScaleOnClick,
		BorderWidth:       DefaultBorderWidthPx,
		BorderColor:       DefaultBorderColor,
		DefaultRadius:     density.Px(DefaultRadiusDp),
		DefaultIconSize:   int(density.Px(DefaultIconSizeDp)),
		AnimationDuration: DefaultAnimationDuration,
	}
}

// ClampScale bounds s to [MinScaleOnClick, MaxScaleOnClick].
func ClampScale(s float64) float64 {
	if s < MinScaleOnClick {
		return MinScaleOnClick
	}
	if s > MaxScaleOnClick {
		return MaxScaleOnClick
	}
	return s
}

func (c Config) normalized() Config {
	c.ScaleOnClick = ClampScale(c.ScaleOnClick)
	if c.Radius < 0 {
		c.Radius = 0
	}
	if c.ShadowRadius < 0 {
		c.ShadowRadius = 0
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if c.AnimationDuration <= 0 {
		c.AnimationDuration = DefaultAnimationDuration
	}
	return c
}
