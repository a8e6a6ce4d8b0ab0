// Package sound plays click feedback for the circle selector.
package sound

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/circle-selector/internal/logging"
)

// levelRingSize is how many recent samples the level meter looks at.
const levelRingSize = 2048

// Player mixes click sounds into a single speaker stream. A Player that
// was never started is silent.
type Player struct {
	mixer   *beep.Mixer
	tap     *Tap
	clip    *Clip
	volume  float64
	started bool
	log     *logging.Logger
}

// NewPlayer creates a Player at volume in [0, 1].
func NewPlayer(volume float64, log *logging.Logger) *Player {
	if log == nil {
		log = logging.NopLogger()
	}
	mixer := &beep.Mixer{}
	return &Player{
		mixer:  mixer,
		tap:    NewTap(mixer, levelRingSize),
		volume: volume,
		log:    log.WithComponent("sound"),
	}
}

// Start opens the speaker and begins streaming the mixer.
func (p *Player) Start() error {
	if p.started {
		return nil
	}
	bufferSize := SampleRate.N(time.Second / 30)
	if err := speaker.Init(SampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	// the mixer never ends, silence keeps the stream open
	speaker.Play(p.tap)
	p.started = true
	p.log.Info("speaker started", "sample_rate", int(SampleRate), "buffer", bufferSize)
	return nil
}

// SetClip replaces the synthesized blip with c. A nil clip restores it.
func (p *Player) SetClip(c *Clip) {
	p.clip = c
}

// SetVolume changes the click volume.
func (p *Player) SetVolume(v float64) {
	p.volume = v
}

// Click plays the feedback for a toggle to checked.
func (p *Player) Click(checked bool) {
	if !p.started {
		return
	}
	s := p.clickStreamer(checked)

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *Player) clickStreamer(checked bool) beep.Streamer {
	var s beep.Streamer
	if p.clip != nil {
		s = p.clip.Streamer()
	} else {
		freq := UncheckFreq
		if checked {
			freq = CheckFreq
		}
		s = NewBlip(freq, BlipDuration, SampleRate)
	}
	return withVolume(s, p.volume)
}

// Level returns the peak of the most recently played audio in [0, 1].
func (p *Player) Level() float64 {
	if !p.started {
		return 0
	}
	return p.tap.Peak(SampleRate.N(time.Second / 20))
}

// Stop silences everything still playing.
func (p *Player) Stop() {
	if !p.started {
		return
	}
	speaker.Clear()
	p.started = false
}
