package systems

import (
	"cmp"
	"math"
	"slices"
)

// Regulator bounds the population and its species mix.
type Regulator struct {
	MaxBoids         int
	MaxPredatorRatio float64
	MinPredators     int
	MinPreyRatio     float64
}

// CullPlan is how many agents of each species to remove.
type CullPlan struct {
	Prey      int
	Predators int
}

// Total returns the number of agents to remove.
func (p CullPlan) Total() int { return p.Prey + p.Predators }

// Plan decides how many of each species to cull.
//
// Over capacity, excess predators go first when predators are over their
// ratio cap, predators absorb the whole excess when prey are under their
// floor, and otherwise the excess is shared proportionally. Predators are
// never culled below MinPredators except when only predators are left to
// meet the hard cap. Afterwards predators are trimmed until the ratio cap
// and the prey floor both hold, again stopping at MinPredators.
func (r Regulator) Plan(prey, predators int) CullPlan {
	var plan CullPlan
	total := prey + predators
	if total == 0 {
		return plan
	}

	if excess := total - r.MaxBoids; excess > 0 {
		spare := max(0, predators-r.MinPredators)
		predRatio := float64(predators) / float64(total)
		preyRatio := float64(prey) / float64(total)

		switch {
		case predRatio > r.MaxPredatorRatio:
			allowed := max(int(math.Floor(r.MaxPredatorRatio*float64(r.MaxBoids))), r.MinPredators)
			plan.Predators = min(excess, max(0, predators-allowed), spare)
		case preyRatio < r.MinPreyRatio:
			plan.Predators = min(excess, spare)
		default:
			share := int(math.Round(float64(excess) * predRatio))
			plan.Predators = min(share, spare)
		}

		plan.Prey = min(excess-plan.Predators, prey)

		// Not enough prey to cover the rest: the hard cap wins over the predator floor.
		if rest := excess - plan.Total(); rest > 0 {
			plan.Predators += min(rest, predators-plan.Predators)
		}
	}

	remPrey := prey - plan.Prey
	remPred := predators - plan.Predators
	for remPred > r.MinPredators && remPred > 0 {
		remTotal := float64(remPrey + remPred)
		overRatio := float64(remPred) > r.MaxPredatorRatio*remTotal
		underPrey := float64(remPrey) < r.MinPreyRatio*remTotal
		if !overRatio && !underPrey {
			break
		}
		remPred--
		plan.Predators++
	}

	return plan
}

// Candidate is an agent eligible for culling.
type Candidate struct {
	Index  int
	ID     uint32
	Health float32
}

// SelectWeakest orders candidates by ascending health, breaking ties by
// ascending ID, and returns the first n. The slice is sorted in place.
func SelectWeakest(candidates []Candidate, n int) []Candidate {
	slices.SortFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(a.Health, b.Health); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	n = max(0, min(n, len(candidates)))
	return candidates[:n]
}
