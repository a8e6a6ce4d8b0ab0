package sound

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// Click tones. Checking a sector plays the higher one.
const (
	CheckFreq   = 880.0
	UncheckFreq = 660.0

	BlipDuration = 60 * time.Millisecond
	blipAttack   = 3 * time.Millisecond
	// blipDecay is the exponential decay over the whole blip
	blipDecay = 5.0
)

// blip is a short sine tone with a linear attack and exponential decay.
type blip struct {
	freq     float64
	phase    float64
	position int
	total    int
	attack   int
	rate     beep.SampleRate
}

// NewBlip creates a blip of freq Hz lasting d.
func NewBlip(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &blip{
		freq:   freq,
		total:  rate.N(d),
		attack: rate.N(blipAttack),
		rate:   rate,
	}
}

func (b *blip) Stream(samples [][2]float64) (n int, ok bool) {
	if b.position >= b.total {
		return 0, false
	}
	for i := range samples {
		if b.position >= b.total {
			return i, true
		}

		env := math.Exp(-blipDecay * float64(b.position) / float64(b.total))
		if b.position < b.attack {
			env *= float64(b.position) / float64(b.attack)
		}
		val := math.Sin(2*math.Pi*b.phase) * env

		samples[i][0] = val
		samples[i][1] = val

		b.phase += b.freq / float64(b.rate)
		b.phase -= math.Floor(b.phase)
		b.position++
	}
	return len(samples), true
}

func (b *blip) Err() error { return nil }

// withVolume scales s by vol in [0, 1]. Zero is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
