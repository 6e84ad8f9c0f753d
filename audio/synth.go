// Package audio sonifies the flock: a continuous drone follows the state
// of the population and every death plays a short panned tone.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSaw
)

func waveSample(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	case WaveSaw:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// oscillator is a fixed-frequency tone of bounded length.
type oscillator struct {
	freq   float64
	phase  float64
	remain int
	wave   WaveType
	rate   beep.SampleRate
}

// NewOscillator returns a streamer producing duration of a tone in [-1, 1].
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		remain: rate.N(duration),
		wave:   wave,
		rate:   rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.remain <= 0 {
		return 0, false
	}
	for i := range samples {
		if o.remain == 0 {
			return i, true
		}
		v := waveSample(o.wave, o.phase)
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.remain--
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

// NewEnvelope shapes s with a linear attack and release. The result ends
// after duration even if s would run longer.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &envelope{
		streamer: s,
		total:    total,
		attack:   min(rate.N(attack), total),
		release:  min(rate.N(release), total),
	}
}

// gain returns the envelope level at sample pos.
func (e *envelope) gain(pos int) float64 {
	g := 1.0
	if e.attack > 0 && pos < e.attack {
		g = float64(pos) / float64(e.attack)
	}
	if left := e.total - pos; e.release > 0 && left < e.release {
		g = min(g, float64(left)/float64(e.release))
	}
	return max(0, g)
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if left := e.total - e.pos; len(samples) > left {
		samples = samples[:left]
	}
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly. Zero or negative volume is silent since the
// beep volume effect works in log space.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
