package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/world"
)

// drain streams s to completion and returns the number of samples produced.
func drain(s beep.Streamer) int {
	buf := make([][2]float64, 256)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestOscillator_Range(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveTriangle, WaveSaw} {
		osc := NewOscillator(440, 10*time.Millisecond, wave, rate)
		buf := make([][2]float64, 441)
		n, ok := osc.Stream(buf)
		if !ok || n != 441 {
			t.Fatalf("wave %d: streamed %d ok=%v, want 441", wave, n, ok)
		}
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 || buf[i][0] != buf[i][1] {
				t.Fatalf("wave %d: sample %d out of range: %v", wave, i, buf[i])
			}
		}
		if n, ok := osc.Stream(buf); n != 0 || ok {
			t.Errorf("wave %d: exhausted oscillator returned %d ok=%v", wave, n, ok)
		}
	}
}

func TestEnvelope_Shape(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSaw, rate) // constant -1
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)

	buf := make([][2]float64, 200)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("envelope should stop the stream at its duration, got %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("attack should start silent, got %f", buf[0][0])
	}
	if math.Abs(buf[50][0]+1) > 1e-9 {
		t.Errorf("sustain should pass the signal through, got %f", buf[50][0])
	}
	if math.Abs(buf[99][0]) > 0.06 {
		t.Errorf("release should end near silence, got %f", buf[99][0])
	}
	if n, ok := env.Stream(buf); n != 0 || ok {
		t.Errorf("finished envelope returned %d ok=%v", n, ok)
	}
}

func TestFrameParams(t *testing.T) {
	if p := FrameParams(nil); p.Gain != 0 || p.Freq != droneMinFreq {
		t.Errorf("empty flock should be silent at base pitch, got %+v", p)
	}

	slow := []world.AgentState{
		{Species: components.SpeciesPrey, VX: 1},
		{Species: components.SpeciesPrey, VY: 1},
	}
	fast := []world.AgentState{
		{Species: components.SpeciesPrey, VX: 4},
		{Species: components.SpeciesPredator, VY: -4},
	}

	ps, pf := FrameParams(slow), FrameParams(fast)
	if ps.Freq >= pf.Freq {
		t.Errorf("faster flock should sound higher: %f vs %f", ps.Freq, pf.Freq)
	}
	if pf.Freq != droneMaxFreq {
		t.Errorf("speed at the cap should hit the top pitch, got %f", pf.Freq)
	}
	if ps.Brightness != 0 || math.Abs(pf.Brightness-0.5) > 1e-9 {
		t.Errorf("brightness should follow predator share: %f, %f", ps.Brightness, pf.Brightness)
	}
	if ps.Gain <= 0 || ps.Gain > droneMaxGain {
		t.Errorf("gain out of range: %f", ps.Gain)
	}
}

func TestDeathTone(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float32
		wantPan  float64
		wantFreq float64
	}{
		{"top left", 0, 0, -1, deathBaseFreq * 2},
		{"bottom right", 800, 600, 1, deathBaseFreq},
		{"centre", 400, 300, 0, deathBaseFreq * math.Sqrt2},
		{"outside clamps", -50, 900, -1, deathBaseFreq},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeathTone(tt.x, tt.y, 800, 600)
			if math.Abs(got.Pan-tt.wantPan) > 1e-9 {
				t.Errorf("pan = %f, want %f", got.Pan, tt.wantPan)
			}
			if math.Abs(got.Freq-tt.wantFreq) > 1e-6 {
				t.Errorf("freq = %f, want %f", got.Freq, tt.wantFreq)
			}
		})
	}

	if got := DeathTone(10, 10, 0, 0); got.Pan != 0 {
		t.Errorf("zero-size arena should centre the tone, got %+v", got)
	}
}

// newTestSonifier returns a started sonifier that records instead of playing.
func newTestSonifier(maxVoices int) (*Sonifier, *[]beep.Streamer) {
	s := NewSonifier(config.AudioConfig{SampleRate: 8000, Volume: 0.5, MaxVoices: maxVoices})
	var played []beep.Streamer
	s.play = func(st beep.Streamer) { played = append(played, st) }
	s.started = true
	return s, &played
}

func TestSonifier_VoiceLimit(t *testing.T) {
	s, played := newTestSonifier(2)

	for i := 0; i < 5; i++ {
		s.NotifyDeath(10, 10, 100, 100)
	}
	if len(*played) != 2 {
		t.Fatalf("expected 2 voices, got %d", len(*played))
	}

	drain((*played)[0])
	s.NotifyDeath(10, 10, 100, 100)
	if len(*played) != 3 {
		t.Errorf("finished voice should free a slot, got %d voices", len(*played))
	}
	if got := s.voices.Load(); got != 2 {
		t.Errorf("active voices = %d, want 2", got)
	}
}

func TestSonifier_SilentUntilStarted(t *testing.T) {
	s, played := newTestSonifier(4)
	s.started = false

	s.NotifyDeath(1, 1, 10, 10)
	s.NotifyFrame([]world.AgentState{{VX: 2}}, 10, 10, 8)

	if len(*played) != 0 {
		t.Error("unstarted sonifier should not play")
	}
	if s.drone.get().Gain == 0 {
		t.Error("drone target should still track frames")
	}
}

func TestDrone_Glides(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := newDrone(rate, DroneParams{Freq: 100})
	d.set(DroneParams{Freq: 200, Gain: 1})

	buf := make([][2]float64, 10)
	d.Stream(buf)
	if d.freq <= 100 || d.freq >= 200 {
		t.Errorf("drone should glide toward the target, freq %f", d.freq)
	}

	buf = make([][2]float64, 2000)
	d.Stream(buf)
	if math.Abs(d.freq-200) > 0.1 || math.Abs(d.gain-1) > 1e-3 {
		t.Errorf("drone should settle on the target, got freq %f gain %f", d.freq, d.gain)
	}
}
