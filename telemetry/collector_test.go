package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/components"
)

func TestCollector_WindowTicks(t *testing.T) {
	c := NewCollector(10, 1.0/60)
	if c.WindowDurationTicks() != 600 {
		t.Errorf("expected 600 ticks per window, got %d", c.WindowDurationTicks())
	}
	if c.ShouldFlush(599) {
		t.Error("flushed too early")
	}
	if !c.ShouldFlush(600) {
		t.Error("expected flush at window end")
	}

	if NewCollector(0, 1.0/60).WindowDurationTicks() != 1 {
		t.Error("window should be at least one tick")
	}
}

func TestCollector_CountsAndFlush(t *testing.T) {
	c := NewCollector(1, 0.5)

	c.Record(NewBirthEvent(1, 10, 1, components.SpeciesPrey))
	c.Record(NewBirthEvent(1, 11, 2, components.SpeciesPredator))
	c.Record(NewKillEvent(2, 3, 2))
	c.Record(NewKillEvent(6, 4, 2))
	c.Record(NewStarvationEvent(3, 5, components.SpeciesPredator))
	c.Record(NewCullEvent(4, 6, components.SpeciesPrey))
	c.RecordGeneration(3)
	c.RecordGeneration(1)

	stats := c.Flush(8, Sample{
		PreyHealth: []float64{10, 20, 30},
		PredHealth: []float64{50},
		MeanSpeed:  2,
	})

	if stats.PreyBirths != 1 || stats.PredBirths != 1 {
		t.Errorf("births prey=%d pred=%d, want 1/1", stats.PreyBirths, stats.PredBirths)
	}
	if stats.Kills != 2 || stats.Starvations != 1 || stats.Culls != 1 {
		t.Errorf("kills=%d starvations=%d culls=%d", stats.Kills, stats.Starvations, stats.Culls)
	}
	if stats.PreyDeaths != 3 || stats.PredDeaths != 1 {
		t.Errorf("deaths prey=%d pred=%d, want 3/1", stats.PreyDeaths, stats.PredDeaths)
	}
	if stats.PreyCount != 3 || stats.PredCount != 1 {
		t.Errorf("counts prey=%d pred=%d", stats.PreyCount, stats.PredCount)
	}
	// Kills at ticks 2 and 6 with dt 0.5: one interval of 2 seconds.
	if math.Abs(stats.MeanKillIntervalSec-2) > 1e-9 {
		t.Errorf("kill interval = %v, want 2", stats.MeanKillIntervalSec)
	}
	if stats.MaxGeneration != 3 {
		t.Errorf("max generation = %d, want 3", stats.MaxGeneration)
	}
	if math.Abs(stats.SimTimeSec-4) > 1e-9 {
		t.Errorf("sim time = %v, want 4", stats.SimTimeSec)
	}
	if c.TotalEvents() != 6 {
		t.Errorf("total events = %d, want 6", c.TotalEvents())
	}

	next := c.Flush(10, Sample{})
	if next.Kills != 0 || next.PreyBirths != 0 || next.MaxGeneration != 0 {
		t.Error("counters not reset after flush")
	}
	if next.WindowStartTick != 8 {
		t.Errorf("next window should start at 8, got %d", next.WindowStartTick)
	}
}

func TestEvent_IsDeath(t *testing.T) {
	tests := []struct {
		e    Event
		want bool
	}{
		{NewBirthEvent(0, 1, 2, components.SpeciesPrey), false},
		{NewKillEvent(0, 1, 2), true},
		{NewStarvationEvent(0, 1, components.SpeciesPrey), true},
		{NewCullEvent(0, 1, components.SpeciesPredator), true},
	}
	for _, tt := range tests {
		if got := tt.e.IsDeath(); got != tt.want {
			t.Errorf("%v.IsDeath() = %v, want %v", tt.e.Type, got, tt.want)
		}
	}
}
