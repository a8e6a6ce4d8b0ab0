package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debug font metrics of ebitenutil.DebugPrintAt
const (
	charWidth  = 6
	charHeight = 16
)

type button struct {
	rect    image.Rectangle
	label   string
	hovered bool
	pressed bool
}

// update tracks hover and press state and reports a completed click.
func (b *button) update(mx, my int, justPressed, justReleased bool) bool {
	b.hovered = image.Pt(mx, my).In(b.rect)
	if b.hovered && justPressed {
		b.pressed = true
	}
	if !justReleased {
		return false
	}
	clicked := b.pressed && b.hovered
	b.pressed = false
	return clicked
}

func (b *button) draw(screen *ebiten.Image) {
	// Button background
	var bgColor color.Color
	if b.pressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if b.hovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	x, y := float32(b.rect.Min.X), float32(b.rect.Min.Y)
	w, h := float32(b.rect.Dx()), float32(b.rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, x, y, w, h, 2, borderColor, false)

	textX := b.rect.Min.X + (b.rect.Dx()-len(b.label)*charWidth)/2
	textY := b.rect.Min.Y + (b.rect.Dy()-charHeight)/2
	ebitenutil.DebugPrintAt(screen, b.label, textX, textY)
}

// slider picks a value in [min, max] by dragging along its track.
type slider struct {
	rect     image.Rectangle
	min, max float64
	value    float64
	hovered  bool
	dragging bool
}

// update moves the knob while dragging and reports the value when the
// drag ends.
func (s *slider) update(mx, my int, justPressed, justReleased bool) (float64, bool) {
	s.hovered = image.Pt(mx, my).In(s.rect)
	if s.hovered && justPressed {
		s.dragging = true
	}
	if !s.dragging {
		return s.value, false
	}
	s.value = s.valueAt(mx)
	if justReleased {
		s.dragging = false
		return s.value, true
	}
	return s.value, false
}

func (s *slider) valueAt(x int) float64 {
	if s.rect.Dx() == 0 {
		return s.min
	}
	t := clamp01(float64(x-s.rect.Min.X) / float64(s.rect.Dx()))
	return s.min + t*(s.max-s.min)
}

func (s *slider) fraction() float64 {
	if s.max == s.min {
		return 0
	}
	return clamp01((s.value - s.min) / (s.max - s.min))
}

func (s *slider) draw(screen *ebiten.Image, label string) {
	x, y := float32(s.rect.Min.X), float32(s.rect.Min.Y)
	w, h := float32(s.rect.Dx()), float32(s.rect.Dy())

	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.StrokeRect(screen, x, y, w, h, 2, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	fill := float32(s.fraction()) * w
	vector.DrawFilledRect(screen, x, y, fill, h, color.RGBA{R: 3, G: 218, B: 198, A: 180}, false)

	knob := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if s.dragging || s.hovered {
		knob = color.RGBA{R: 200, G: 230, B: 255, A: 255}
	}
	vector.DrawFilledCircle(screen, x+fill, y+h/2, h/2+2, knob, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %.0f", label, s.value), s.rect.Min.X, s.rect.Max.Y+2)
}

// drawLevel draws a small horizontal meter for the click sound.
func drawLevel(screen *ebiten.Image, r image.Rectangle, level float64) {
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	if level > 0 {
		vector.DrawFilledRect(screen, x, y, float32(clamp01(level))*w, h, color.RGBA{R: 255, G: 200, B: 80, A: 220}, false)
	}
}
