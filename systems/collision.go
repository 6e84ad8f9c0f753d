package systems

import "math"

// CollisionResolver keeps agents out of drawn walls. It steers ahead of
// contact and, when contact happens anyway, bounces the agent off.
type CollisionResolver struct {
	Grid            *ObstacleGrid
	LookAheadSteps  float32 // ticks of velocity projected forward
	DetectionMargin float32
	AvoidForce      float32
	PushEpsilon     float32

	scratch []ObstaclePoint
}

// AvoidanceForce returns a repulsion from obstacle points near the agent's
// projected path. Each point pushes along its outward normal, harder the
// closer it is.
func (c *CollisionResolver) AvoidanceForce(pos, vel Vec2, radius float32) Vec2 {
	if c.Grid == nil || c.Grid.Len() == 0 {
		return Vec2{}
	}

	reach := vel.Scale(c.LookAheadSteps)
	center := pos.Add(reach.Scale(0.5))
	queryRadius := reach.Len()/2 + radius + c.DetectionMargin

	c.scratch = c.Grid.QueryRadiusInto(c.scratch[:0], center.X, center.Y, queryRadius)
	if len(c.scratch) == 0 {
		return Vec2{}
	}

	var force Vec2
	for _, p := range c.scratch {
		n := pos.Sub(p.Pos())
		d := n.Len() - p.Size/2
		n = n.Normalize()
		if n.IsZero() {
			n = vel.Normalize().Scale(-1)
		}
		strength := clampFloat(queryRadius/max(d, 1), 0, 3)
		force = force.Add(n.Scale(c.AvoidForce * strength))
	}
	return force.Limit(3 * c.AvoidForce)
}

// ResolveMove advances pos by vel*timeScale and bounces off the first
// obstacle point the path touches. The path is sampled in steps no longer
// than the agent's radius so fast agents cannot tunnel through thin walls.
// Returns the new position and velocity, and whether a bounce happened.
func (c *CollisionResolver) ResolveMove(pos, vel Vec2, radius, restitution, minSpeed, timeScale float32) (Vec2, Vec2, bool) {
	delta := vel.Scale(timeScale)
	next := pos.Add(delta)
	if c.Grid == nil || c.Grid.Len() == 0 {
		return next, vel, false
	}

	step := max(radius, 0.5)
	samples := max(1, int(math.Ceil(float64(delta.Len()/step))))

	prev := pos
	for i := 1; i <= samples; i++ {
		s := pos.Add(delta.Scale(float32(i) / float32(samples)))
		p, _, hit := c.Grid.Nearest(s.X, s.Y, radius)
		if !hit {
			prev = s
			continue
		}

		normal := s.Sub(p.Pos()).Normalize()
		if normal.IsZero() {
			normal = vel.Normalize().Scale(-1)
			if normal.IsZero() {
				normal = Vec2{0, -1}
			}
		}

		out := vel
		if vel.Dot(normal) < 0 {
			out = Reflect(vel, normal).Scale(restitution)
		}
		if l := out.Len(); l < minSpeed {
			if l < epsilon {
				out = normal.Scale(minSpeed)
			} else {
				out = out.SetMag(minSpeed)
			}
		}

		// Nudge off the contact point along the new heading.
		np := prev.Add(out.Normalize().Scale(c.PushEpsilon))
		clearance := radius + p.Size/2
		if Dist(np, p.Pos()) < clearance {
			np = p.Pos().Add(normal.Scale(clearance + c.PushEpsilon))
		}
		return np, out, true
	}

	return next, vel, false
}

// Reflect mirrors v about the surface with unit normal n: v - 2(v.n)n.
func Reflect(v, n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}
