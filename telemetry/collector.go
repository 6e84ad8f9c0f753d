package telemetry

import "github.com/pthm-cable/flock/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	preyBirths      int
	predBirths      int
	preyDeaths      int
	predDeaths      int
	kills           int
	starvations     int
	culls           int
	maxGeneration   uint32
	totalEvents     int
	recentKillTicks []int32
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts a single event.
func (c *Collector) Record(e Event) {
	c.totalEvents++
	switch e.Type {
	case EventBirth:
		if e.Species == components.SpeciesPrey {
			c.preyBirths++
		} else {
			c.predBirths++
		}
		return
	case EventKill:
		c.kills++
		c.recentKillTicks = append(c.recentKillTicks, e.Tick)
	case EventStarvation:
		c.starvations++
	case EventCull:
		c.culls++
	}

	if e.Species == components.SpeciesPrey {
		c.preyDeaths++
	} else {
		c.predDeaths++
	}
}

// RecordGeneration tracks the deepest generation born this window.
func (c *Collector) RecordGeneration(gen uint32) {
	if gen > c.maxGeneration {
		c.maxGeneration = gen
	}
}

// TotalEvents returns the number of events recorded since creation.
func (c *Collector) TotalEvents() int {
	return c.totalEvents
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the population state at the end of a window.
type Sample struct {
	PreyHealth     []float64
	PredHealth     []float64
	MeanSpeed      float64
	ObstaclePoints int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	preyMean, preyStd, preyP10, preyP50, preyP90 := ComputeHealthStats(s.PreyHealth)
	predMean, predStd, predP10, predP50, predP90 := ComputeHealthStats(s.PredHealth)

	var killInterval float64
	if n := len(c.recentKillTicks); n > 1 {
		span := c.recentKillTicks[n-1] - c.recentKillTicks[0]
		killInterval = float64(span) * float64(c.dt) / float64(n-1)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		PreyCount: len(s.PreyHealth),
		PredCount: len(s.PredHealth),

		PreyBirths:  c.preyBirths,
		PredBirths:  c.predBirths,
		PreyDeaths:  c.preyDeaths,
		PredDeaths:  c.predDeaths,
		Kills:       c.kills,
		Starvations: c.starvations,
		Culls:       c.culls,

		MeanKillIntervalSec: killInterval,
		MaxGeneration:       c.maxGeneration,

		PreyHealthMean: preyMean,
		PreyHealthStd:  preyStd,
		PreyHealthP10:  preyP10,
		PreyHealthP50:  preyP50,
		PreyHealthP90:  preyP90,

		PredHealthMean: predMean,
		PredHealthStd:  predStd,
		PredHealthP10:  predP10,
		PredHealthP50:  predP50,
		PredHealthP90:  predP90,

		MeanSpeed:      s.MeanSpeed,
		ObstaclePoints: s.ObstaclePoints,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.preyBirths = 0
	c.predBirths = 0
	c.preyDeaths = 0
	c.predDeaths = 0
	c.kills = 0
	c.starvations = 0
	c.culls = 0
	c.maxGeneration = 0
	c.recentKillTicks = c.recentKillTicks[:0]

	return stats
}

// Reset discards the current window, starting a new one at tick.
func (c *Collector) Reset(tick int32) {
	c.Flush(tick, Sample{})
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
