package game

import (
	"github.com/pthm-cable/flock/telemetry"
)

// onWindow handles a closed stats window: console logging and CSV output.
func (g *Game) onWindow(stats telemetry.WindowStats) {
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			g.logger.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
}
