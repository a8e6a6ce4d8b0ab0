package sound

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"github.com/spf13/afero"
)

// SampleRate is the output rate of the speaker. Clips are resampled to it.
const SampleRate beep.SampleRate = 44100

// resampleQuality is passed to beep.Resample
const resampleQuality = 4

// ErrUnsupportedFormat is returned for files that are not wav, mp3 or flac.
var ErrUnsupportedFormat = errors.New("unsupported sound file")

// Clip is a decoded sound kept in memory at SampleRate.
type Clip struct {
	buf *beep.Buffer
}

// LoadClip decodes a wav, mp3 or flac file from fs.
func LoadClip(fs afero.Fs, path string) (*Clip, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != SampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, SampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  SampleRate,
		NumChannels: 2,
		Precision:   2,
	})
	buf.Append(src)
	if buf.Len() == 0 {
		return nil, fmt.Errorf("sound file %s is empty", path)
	}
	return &Clip{buf: buf}, nil
}

// Streamer returns a fresh streamer over the whole clip.
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}

// Len returns the number of samples.
func (c *Clip) Len() int {
	return c.buf.Len()
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	return SampleRate.D(c.buf.Len())
}
