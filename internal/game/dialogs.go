package game

import (
	"errors"
	"image/color"

	"github.com/ncruces/zenity"
)

// pickColor asks for a new circle color. ok is false when the user cancels.
func pickColor(current color.NRGBA) (c color.NRGBA, ok bool, err error) {
	picked, err := zenity.SelectColor(
		zenity.Title("Circle Color"),
		zenity.Color(current),
		zenity.ShowPalette(),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return current, false, nil
		}
		return current, false, err
	}
	c = toNRGBA(picked)
	// the palette dialog may drop alpha
	c.A = current.A
	return c, true, nil
}

func pickFile(title, filterName string, patterns ...string) (string, bool, error) {
	filename, err := zenity.SelectFile(
		zenity.Title(title),
		zenity.FileFilters{{
			Name:     filterName,
			Patterns: patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", false, nil
		}
		return "", false, err
	}
	return filename, true, nil
}

// pickIconFile asks for an image to use as a new item's icon.
func pickIconFile() (string, bool, error) {
	return pickFile("Add Icon From File", "Images", "*.png", "*.jpg", "*.jpeg", "*.gif")
}

// pickClickSound asks for a sound file to play on toggles.
func pickClickSound() (string, bool, error) {
	return pickFile("Open Click Sound", "Audio", "*.wav", "*.mp3", "*.flac")
}
