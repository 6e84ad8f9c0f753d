package world

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/telemetry"
)

// Advance feeds real elapsed time into the accumulator and runs as many
// fixed ticks as it covers. Frame time is capped so a stalled frame cannot
// trigger an unbounded catch-up. Returns the number of ticks run; a paused
// world runs none and keeps no time.
func (w *World) Advance(frameSeconds float64) int {
	if !w.running || frameSeconds <= 0 {
		return 0
	}

	w.accumulator += min(frameSeconds, w.cfg.Simulation.MaxFrameTime)

	n := 0
	for w.accumulator >= w.dt {
		w.Step()
		w.accumulator -= w.dt
		n++
	}
	return n
}

// Alpha returns the fraction of a tick left in the accumulator, for
// interpolating rendered positions between ticks.
func (w *World) Alpha() float64 {
	return w.accumulator / w.dt
}

// Step runs exactly one fixed tick, paused or not.
//
// Every agent computes its forces against the same snapshot. Kills and
// births are collected during the pass and applied only after it, so no
// agent sees its own offspring or a half-removed neighbour.
func (w *World) Step() {
	w.perf.StartTick()
	w.tick++

	w.perf.StartPhase(telemetry.PhaseSnapshot)
	w.snapshot()

	w.perf.StartPhase(telemetry.PhaseForces)
	w.computeForces()

	w.perf.StartPhase(telemetry.PhaseMotion)
	w.integrate()

	w.perf.StartPhase(telemetry.PhaseLifecycle)
	w.updateLifecycle()

	w.perf.StartPhase(telemetry.PhaseCleanup)
	w.applyDeathsAndBirths()

	w.perf.StartPhase(telemetry.PhaseRegulate)
	w.regulate()

	if interval := w.cfg.Simulation.AudioInterval; interval > 0 && w.tick%int32(interval) == 0 {
		w.perf.StartPhase(telemetry.PhaseAudio)
		w.notifyFrame()
	}

	w.perf.EndTick()
	w.flushTelemetry()
}

// snapshot captures the read-only agent view used by every behavior this tick.
func (w *World) snapshot() {
	w.agents = w.agents[:0]
	query := w.filter.Query()
	for query.Next() {
		pos, vel, _, body, _, _, _, org := query.Get()
		w.agents = append(w.agents, systems.Agent{
			Entity:  query.Entity(),
			ID:      org.ID,
			Species: org.Species,
			Pos:     systems.Vec2{X: pos.X, Y: pos.Y},
			Vel:     systems.Vec2{X: vel.X, Y: vel.Y},
			Radius:  body.Radius,
		})
	}
}

// computeForces accumulates steering for every agent and resolves kills.
func (w *World) computeForces() {
	for i := range w.agents {
		a := &w.agents[i]
		if a.Killed {
			continue
		}
		_, _, acc, body, motion, health, _, org := w.mapper.Get(a.Entity)
		prof := w.profiles.Get(org.Species)
		*acc = components.Acceleration{}

		systems.ApplyForce(acc, systems.Flock(w.agents, i, *motion, w.flock), motion.SteeringFactor)

		switch org.Species {
		case components.SpeciesPrey:
			systems.ApplyForce(acc, systems.FleePredators(w.agents, i, *motion, prof), motion.SteeringFactor)
		case components.SpeciesPredator:
			systems.TickHuntCooldown(org)
			chase, caught := systems.ChasePrey(w.agents, i, *motion, prof, org.HuntCooldown)
			systems.ApplyForce(acc, chase, motion.SteeringFactor)
			if caught >= 0 {
				w.agents[caught].Killed = true
				systems.ConsumeKill(health, org, prof)
				w.record(telemetry.NewKillEvent(w.tick, w.agents[caught].ID, org.ID))
			}
		}

		avoid := w.resolver.AvoidanceForce(a.Pos, a.Vel, body.Radius)
		systems.ApplyForce(acc, avoid, motion.SteeringFactor)

		cursor := systems.CursorAvoidance(a.Pos, w.cursor, w.cursorCfg)
		systems.ApplyForce(acc, cursor, motion.SteeringFactor)
	}
}

// integrate moves every surviving agent, bouncing off walls and wrapping at edges.
func (w *World) integrate() {
	for i := range w.agents {
		a := &w.agents[i]
		if a.Killed {
			continue
		}
		pos, vel, acc, body, motion, _, _, _ := w.mapper.Get(a.Entity)

		systems.IntegrateVelocity(vel, *acc, *motion, w.timeScale)
		p, v, _ := w.resolver.ResolveMove(
			systems.Vec2{X: pos.X, Y: pos.Y},
			systems.Vec2{X: vel.X, Y: vel.Y},
			body.Radius, body.Restitution, motion.MinSpeed, w.timeScale,
		)
		pos.X, pos.Y = p.X, p.Y
		vel.X, vel.Y = v.X, v.Y
		systems.WrapPosition(pos, w.bounds)
	}
}

// updateLifecycle applies health decay, starvation and reproduction.
// Newborns are buffered; reproduction stops once the buffered population
// would reach the hard cap.
func (w *World) updateLifecycle() {
	dt := float32(w.dt)
	w.births = w.births[:0]

	live := 0
	for i := range w.agents {
		if !w.agents[i].Killed {
			live++
		}
	}

	for i := range w.agents {
		a := &w.agents[i]
		if a.Killed {
			continue
		}
		pos, _, _, body, motion, health, repro, org := w.mapper.Get(a.Entity)
		org.Age += dt

		if systems.UpdateHealth(health, dt) {
			a.Killed = true
			live--
			w.record(telemetry.NewStarvationEvent(w.tick, org.ID, org.Species))
			continue
		}

		systems.UpdateReproductionState(*health, repro, dt)
		if !repro.Ready || live+len(w.births) >= w.regulator.MaxBoids {
			continue
		}

		prof := w.profiles.Get(org.Species)
		off := systems.Reproduce(systems.Vec2{X: pos.X, Y: pos.Y}, health, repro, org, *motion, *body, prof, w.rng)
		w.births = append(w.births, birth{parentID: org.ID, off: off})

		// A parent that paid its last health dies this tick; its child lives.
		if health.Value <= 0 {
			a.Killed = true
			live--
			w.record(telemetry.NewStarvationEvent(w.tick, org.ID, org.Species))
		}
	}
}

// applyDeathsAndBirths removes every agent flagged this tick, then adds
// the buffered newborns.
func (w *World) applyDeathsAndBirths() {
	for i := range w.agents {
		a := &w.agents[i]
		if !a.Killed {
			continue
		}
		pos, _, _, _, _, _, _, _ := w.mapper.Get(a.Entity)
		w.removeAgent(a.Entity, pos.X, pos.Y)
	}

	for _, b := range w.births {
		off := b.off
		pos := components.Position{X: off.Pos.X, Y: off.Pos.Y}
		systems.WrapPosition(&pos, w.bounds)
		w.spawn(off.Species, systems.Vec2{X: pos.X, Y: pos.Y}, off.Vel, off.Health, off.Generation, off.Motion, off.Body)
		w.record(telemetry.NewBirthEvent(w.tick, w.nextID-1, b.parentID, off.Species))
		if w.collector != nil {
			w.collector.RecordGeneration(off.Generation)
		}
	}
	w.births = w.births[:0]
}

// removeAgent deletes an entity and announces the death.
func (w *World) removeAgent(e ecs.Entity, x, y float32) {
	w.ecs.RemoveEntity(e)
	w.notifyDeath(x, y)
}

// regulate culls the weakest agents until the population bounds hold.
func (w *World) regulate() {
	prey, pred := w.Counts()
	plan := w.regulator.Plan(prey, pred)
	if plan.Total() == 0 {
		return
	}

	culled := w.cullWeakest(components.SpeciesPredator, plan.Predators)
	culled += w.cullWeakest(components.SpeciesPrey, plan.Prey)

	w.logger.Debug("population_culled",
		"tick", w.tick,
		"prey", plan.Prey,
		"predators", plan.Predators,
		"removed", culled,
	)
}

// cullWeakest removes the n lowest-health agents of a species.
func (w *World) cullWeakest(species components.Species, n int) int {
	if n <= 0 {
		return 0
	}

	w.candidates = w.candidates[:0]
	w.candEnts = w.candEnts[:0]
	query := w.filter.Query()
	for query.Next() {
		_, _, _, _, _, health, _, org := query.Get()
		if org.Species != species {
			continue
		}
		w.candidates = append(w.candidates, systems.Candidate{
			Index:  len(w.candEnts),
			ID:     org.ID,
			Health: health.Value,
		})
		w.candEnts = append(w.candEnts, query.Entity())
	}

	victims := systems.SelectWeakest(w.candidates, n)
	for _, v := range victims {
		e := w.candEnts[v.Index]
		pos, _, _, _, _, _, _, org := w.mapper.Get(e)
		w.record(telemetry.NewCullEvent(w.tick, org.ID, org.Species))
		w.removeAgent(e, pos.X, pos.Y)
	}
	return len(victims)
}

func (w *World) record(e telemetry.Event) {
	if w.collector != nil {
		w.collector.Record(e)
	}
}

// flushTelemetry closes a stats window when one is due.
func (w *World) flushTelemetry() {
	if w.collector == nil || !w.collector.ShouldFlush(w.tick) {
		return
	}

	sample := telemetry.Sample{ObstaclePoints: w.obstacles.Len()}
	var speedSum float64
	n := 0
	query := w.filter.Query()
	for query.Next() {
		_, vel, _, _, _, health, _, org := query.Get()
		if org.Species == components.SpeciesPrey {
			sample.PreyHealth = append(sample.PreyHealth, float64(health.Value))
		} else {
			sample.PredHealth = append(sample.PredHealth, float64(health.Value))
		}
		speedSum += float64(systems.Vec2{X: vel.X, Y: vel.Y}.Len())
		n++
	}
	if n > 0 {
		sample.MeanSpeed = speedSum / float64(n)
	}

	stats := w.collector.Flush(w.tick, sample)
	if w.onWindow != nil {
		w.onWindow(stats)
	}
}
