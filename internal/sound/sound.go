// Package sound plays a short decaying tone for every new ripple.
package sound

import (
	"log/slog"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"

	"github.com/iburimskiy/dotfield/internal/ripple"
)

const (
	sampleRate   = beep.SampleRate(44100)
	dropDuration = 180 * time.Millisecond
	dropDecay    = 18.0
	dropVolume   = 0.25
)

// Base pitch per ripple shape, in Hz.
var pitch = map[ripple.Shape]float64{
	ripple.Circle:   523.25,
	ripple.Square:   392.00,
	ripple.Triangle: 659.25,
}

// drop is a sine burst with an exponential envelope. It implements
// beep.Streamer.
type drop struct {
	freq   float64
	volume float64
	pos    int
	total  int
}

func newDrop(freq, volume float64, d time.Duration) *drop {
	return &drop{freq: freq, volume: volume, total: sampleRate.N(d)}
}

func (d *drop) Stream(samples [][2]float64) (int, bool) {
	if d.pos >= d.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if d.pos >= d.total {
			break
		}
		t := float64(d.pos) / float64(sampleRate)
		v := d.volume * math.Exp(-dropDecay*t) * math.Sin(2*math.Pi*d.freq*t)
		samples[i][0], samples[i][1] = v, v
		d.pos++
		n++
	}
	return n, true
}

func (d *drop) Err() error { return nil }

// Drops owns the speaker. The zero value is silent.
type Drops struct {
	log     *slog.Logger
	enabled bool
}

// NewDrops initialises the speaker. On failure it logs and returns a silent
// Drops together with the error, so callers may carry on without sound.
func NewDrops(log *slog.Logger) (*Drops, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		log.Warn("audio disabled", "err", err)
		return &Drops{log: log}, errors.Wrap(err, "init speaker")
	}
	log.Debug("audio ready", "sample_rate", int(sampleRate))
	return &Drops{log: log, enabled: true}, nil
}

// Play schedules a tone for r. Fainter, larger ripples sound lower.
func (p *Drops) Play(r ripple.Ripple) {
	if p == nil || !p.enabled {
		return
	}
	speaker.Play(Tone(r))
}

// Tone is the streamer Play would schedule for r.
func Tone(r ripple.Ripple) beep.Streamer {
	f, ok := pitch[r.Shape]
	if !ok {
		f = pitch[ripple.Circle]
	}
	f /= 1 + r.Radius/400
	return newDrop(f, dropVolume*r.Alpha, dropDuration)
}
