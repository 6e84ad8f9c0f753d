package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
)

// DroneParams is the target state of the background drone.
type DroneParams struct {
	Freq       float64 // Hz
	Brightness float64 // 0 is a pure sine, 1 a pure saw
	Gain       float64 // linear, 0..1
}

// drone is an endless tone whose parameters can be retargeted from any
// goroutine. It glides toward the target so updates every few ticks do not
// click.
type drone struct {
	rate beep.SampleRate

	target [3]atomic.Uint64 // float64 bits of Freq, Brightness, Gain

	// Owned by the speaker goroutine
	phase      float64
	freq       float64
	brightness float64
	gain       float64
	glide      float64
}

func newDrone(rate beep.SampleRate, initial DroneParams) *drone {
	d := &drone{
		rate:       rate,
		freq:       initial.Freq,
		brightness: initial.Brightness,
		gain:       initial.Gain,
		// ~50ms time constant
		glide: 1 - math.Exp(-1/(0.05*float64(rate))),
	}
	d.set(initial)
	return d
}

func (d *drone) set(p DroneParams) {
	d.target[0].Store(math.Float64bits(p.Freq))
	d.target[1].Store(math.Float64bits(p.Brightness))
	d.target[2].Store(math.Float64bits(p.Gain))
}

func (d *drone) get() DroneParams {
	return DroneParams{
		Freq:       math.Float64frombits(d.target[0].Load()),
		Brightness: math.Float64frombits(d.target[1].Load()),
		Gain:       math.Float64frombits(d.target[2].Load()),
	}
}

func (d *drone) Stream(samples [][2]float64) (n int, ok bool) {
	t := d.get()
	for i := range samples {
		d.freq += (t.Freq - d.freq) * d.glide
		d.brightness += (t.Brightness - d.brightness) * d.glide
		d.gain += (t.Gain - d.gain) * d.glide

		sine := waveSample(WaveSine, d.phase)
		saw := waveSample(WaveSaw, d.phase)
		v := d.gain * ((1-d.brightness)*sine + d.brightness*saw)
		samples[i][0] = v
		samples[i][1] = v

		d.phase += d.freq / float64(d.rate)
		d.phase -= math.Floor(d.phase)
	}
	return len(samples), true
}

func (d *drone) Err() error { return nil }
