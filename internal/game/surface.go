package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/iburimskiy/circle-selector/internal/circle"
)

const (
	// shadowLayers is how many translucent pies approximate a blurred shadow
	shadowLayers = 6
	// textureCacheSize bounds the icon textures kept on the GPU
	textureCacheSize = 256
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// surface draws circle sectors onto an ebiten image.
type surface struct {
	dst      *ebiten.Image
	textures *lru.Cache[image.Image, *ebiten.Image]

	vertices []ebiten.Vertex
	indices  []uint16
}

var _ circle.Surface = (*surface)(nil)

func newSurface() (*surface, error) {
	textures, err := lru.NewWithEvict[image.Image, *ebiten.Image](textureCacheSize,
		func(_ image.Image, tex *ebiten.Image) { tex.Deallocate() })
	if err != nil {
		return nil, err
	}
	return &surface{textures: textures}, nil
}

// piePath builds a closed pie slice of oval. Angles are degrees clockwise
// from 3 o'clock.
func piePath(oval circle.Rect, startDeg, sweepDeg float64) *vector.Path {
	c := oval.Center()
	r := oval.Width() / 2
	start := startDeg * math.Pi / 180
	end := (startDeg + sweepDeg) * math.Pi / 180

	var p vector.Path
	p.MoveTo(float32(c.X), float32(c.Y))
	p.Arc(float32(c.X), float32(c.Y), float32(r), float32(start), float32(end), vector.Clockwise)
	p.Close()
	return &p
}

func (s *surface) paint(vs []ebiten.Vertex, is []uint16, c color.NRGBA) {
	r := float32(c.R) / 0xff
	g := float32(c.G) / 0xff
	b := float32(c.B) / 0xff
	a := float32(c.A) / 0xff
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	s.dst.DrawTriangles(vs, is, whiteSubImage, op)
	s.vertices, s.indices = vs, is
}

func (s *surface) fill(p *vector.Path, c color.NRGBA) {
	vs, is := p.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.paint(vs, is, c)
}

// FillArc implements circle.Surface. A shadow is drawn as stacked
// translucent pies growing toward the blur radius.
func (s *surface) FillArc(oval circle.Rect, startDeg, sweepDeg float64, p circle.Paint) {
	if sh := p.Shadow; sh != nil && sh.Radius > 0 && sh.Color.A > 0 {
		base := oval.Offset(sh.DX, sh.DY)
		layer := sh.Color
		layer.A = uint8(float64(sh.Color.A) / (shadowLayers + 1))
		for k := shadowLayers; k >= 1; k-- {
			grow := sh.Radius / 2 * float64(k) / shadowLayers
			s.fill(piePath(base.Outset(grow), startDeg, sweepDeg), layer)
		}
	}
	s.fill(piePath(oval, startDeg, sweepDeg), p.Color)
}

// StrokeArc implements circle.Surface.
func (s *surface) StrokeArc(oval circle.Rect, startDeg, sweepDeg, width float64, stroke color.NRGBA) {
	path := piePath(oval, startDeg, sweepDeg)
	vs, is := path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
	})
	s.paint(vs, is, stroke)
}

// DrawImage implements circle.Surface. Textures are cached by source image.
func (s *surface) DrawImage(img image.Image, x, y float64) {
	tex, ok := s.textures.Get(img)
	if !ok {
		tex = ebiten.NewImageFromImage(img)
		s.textures.Add(img, tex)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(tex, op)
}

// render draws v onto dst from scratch.
func (s *surface) render(dst *ebiten.Image, v *circle.View) {
	s.dst = dst
	dst.Clear()
	v.Draw(s)
	s.dst = nil
}
