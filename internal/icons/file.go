package icons

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/spf13/afero"
	"golang.org/x/image/draw"
)

// File loads icons from image files on fs and scales them to size.
type File struct {
	fs afero.Fs
}

// NewFile creates a File provider. A nil fs reads the OS filesystem.
func NewFile(fs afero.Fs) *File {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &File{fs: fs}
}

// Icon implements Provider. name is a path on the provider's filesystem.
func (f *File) Icon(name string, sizePx int) (image.Image, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", sizePx)
	}
	data, err := afero.ReadFile(f.fs, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon file: %w", err)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon file %s: %w", name, err)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, sizePx, sizePx))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
