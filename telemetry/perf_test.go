package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSnapshot)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseForces)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseSnapshot] <= 0 {
		t.Error("expected snapshot phase to be tracked")
	}
	if stats.PhaseAvg[PhaseForces] <= 0 {
		t.Error("expected forces phase to be tracked")
	}
	if stats.PhaseAvg[PhaseAudio] != 0 {
		t.Error("audio phase never ran but has time recorded")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseMotion)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v exceeds max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCleanup)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseLifecycle)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	fast := stats.PhasePct[PhaseCleanup]
	slow := stats.PhasePct[PhaseLifecycle]
	if slow <= fast {
		t.Errorf("expected lifecycle (%v%%) > cleanup (%v%%)", slow, fast)
	}
}

func TestPerfCollector_EmptyAndNil(t *testing.T) {
	pc := NewPerfCollector(10)
	if stats := pc.Stats(); stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	var nilPC *PerfCollector
	nilPC.StartTick()
	nilPC.StartPhase(PhaseForces)
	nilPC.EndTick()
	nilPC.RecordFrame()
	if stats := nilPC.Stats(); stats.TicksPerSecond != 0 {
		t.Error("nil collector should report zero stats")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}

func TestPhaseNames(t *testing.T) {
	want := []string{"snapshot", "forces", "motion", "lifecycle", "cleanup", "regulate", "audio"}
	phases := Phases()
	if len(phases) != len(want) {
		t.Fatalf("expected %d phases, got %d", len(want), len(phases))
	}
	for i, ph := range phases {
		if ph.String() != want[i] {
			t.Errorf("phase %d: got %q, want %q", i, ph.String(), want[i])
		}
	}
	if Phase(200).String() != "unknown" {
		t.Error("out-of-range phase should be unknown")
	}
}
