package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/world"
)

const (
	droneMinFreq  = 70.0
	droneMaxFreq  = 220.0
	droneMaxSpeed = 4.0 // mean speed mapped to the top of the range
	droneMaxGain  = 0.35
	dronePopScale = 120.0 // population at which the drone reaches ~63% gain

	deathBaseFreq = 330.0
	deathDuration = 140 * time.Millisecond
	deathAttack   = 5 * time.Millisecond
	deathRelease  = 110 * time.Millisecond
	deathGain     = 0.4
)

// Sonifier turns simulation cues into sound. It satisfies world.Audio.
// Until Start succeeds every call is a silent no-op.
type Sonifier struct {
	rate      beep.SampleRate
	volume    float64
	maxVoices int32

	drone  *drone
	voices atomic.Int32

	mu      sync.Mutex
	started bool
	play    func(beep.Streamer)
}

var _ world.Audio = (*Sonifier)(nil)

// NewSonifier creates a sonifier from the audio config.
func NewSonifier(cfg config.AudioConfig) *Sonifier {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	return &Sonifier{
		rate:      rate,
		volume:    cfg.Volume,
		maxVoices: int32(max(1, cfg.MaxVoices)),
		drone:     newDrone(rate, DroneParams{Freq: droneMinFreq}),
		play:      speaker.Play,
	}
}

// Start opens the audio device and begins the drone.
func (s *Sonifier) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	s.started = true
	s.play(withVolume(s.drone, s.volume))
	return nil
}

// Close stops all sound and releases the device.
func (s *Sonifier) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.started = false
}

func (s *Sonifier) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// NotifyFrame retargets the drone. It only stores numbers, so it never waits
// on the speaker.
func (s *Sonifier) NotifyFrame(agents []world.AgentState, width, height float32, tick int32) {
	s.drone.set(FrameParams(agents))
}

// NotifyDeath plays a short tone for a removed agent unless the voice
// budget is spent.
func (s *Sonifier) NotifyDeath(x, y, width, height float32) {
	if !s.running() {
		return
	}
	if s.voices.Add(1) > s.maxVoices {
		s.voices.Add(-1)
		return
	}

	tone := DeathTone(x, y, width, height)
	osc := NewOscillator(tone.Freq, deathDuration, WaveTriangle, s.rate)
	shaped := NewEnvelope(osc, deathDuration, deathAttack, deathRelease, s.rate)
	panned := &effects.Pan{Streamer: withVolume(shaped, deathGain*s.volume), Pan: tone.Pan}

	s.play(beep.Seq(panned, beep.Callback(func() { s.voices.Add(-1) })))
}

// FrameParams maps the population onto the drone: mean speed sets pitch,
// predator share sets brightness and headcount sets loudness.
func FrameParams(agents []world.AgentState) DroneParams {
	if len(agents) == 0 {
		return DroneParams{Freq: droneMinFreq}
	}

	var speedSum float64
	predators := 0
	for _, a := range agents {
		speedSum += math.Hypot(float64(a.VX), float64(a.VY))
		if a.Species == components.SpeciesPredator {
			predators++
		}
	}
	n := float64(len(agents))
	speed := min(speedSum/n/droneMaxSpeed, 1)

	return DroneParams{
		Freq:       droneMinFreq + (droneMaxFreq-droneMinFreq)*speed,
		Brightness: float64(predators) / n,
		Gain:       droneMaxGain * (1 - math.Exp(-n/dronePopScale)),
	}
}

// Tone is a one-shot cue.
type Tone struct {
	Freq float64
	Pan  float64 // -1 left, +1 right
}

// DeathTone places a death in the stereo field by x and in pitch by y;
// deaths near the top of the arena sound an octave above those at the bottom.
func DeathTone(x, y, width, height float32) Tone {
	var fx, fy float64 = 0.5, 0.5
	if width > 0 {
		fx = math.Max(0, math.Min(1, float64(x/width)))
	}
	if height > 0 {
		fy = math.Max(0, math.Min(1, float64(y/height)))
	}
	return Tone{
		Freq: deathBaseFreq * math.Pow(2, 1-fy),
		Pan:  2*fx - 1,
	}
}
