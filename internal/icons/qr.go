package icons

import (
	"fmt"
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// QR renders the reference name as a QR code.
type QR struct {
	Fg, Bg color.Color
	Level  qrcode.RecoveryLevel
}

// NewQR creates a QR provider with black modules on white.
func NewQR() *QR {
	return &QR{
		Fg:    color.Black,
		Bg:    color.White,
		Level: qrcode.Medium,
	}
}

// Icon implements Provider.
func (q *QR) Icon(name string, sizePx int) (image.Image, error) {
	if name == "" {
		return nil, fmt.Errorf("empty qr content")
	}
	if sizePx <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", sizePx)
	}

	code, err := qrcode.New(name, q.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr: %w", err)
	}
	code.ForegroundColor = q.Fg
	code.BackgroundColor = q.Bg
	code.DisableBorder = true

	// Image grows past sizePx when the code has more modules than pixels
	src := code.Image(sizePx)
	if b := src.Bounds(); b.Dx() == sizePx && b.Dy() == sizePx {
		return src, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, sizePx, sizePx))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
