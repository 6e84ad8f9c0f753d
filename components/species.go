package components

import "github.com/pthm-cable/flock/config"

// Species identifies the ecological role of an agent.
type Species uint8

const (
	SpeciesPrey Species = iota
	SpeciesPredator
)

// String returns the lowercase species name.
func (s Species) String() string {
	switch s {
	case SpeciesPrey:
		return "prey"
	case SpeciesPredator:
		return "predator"
	default:
		return "unknown"
	}
}

// Profile is the constant table selected once per species.
// Behaviors read their tuning from here instead of branching on species.
type Profile struct {
	MaxSpeed              float32
	MinSpeed              float32
	MaxForce              float32
	SteeringFactor        float32
	MaxHealth             float32
	InitialHealth         float32
	HealthDecayRate       float32
	FoodGenerationRate    float32
	ReproductionThreshold float32
	ReproductionCost      float32
	ReproductionCooldown  float32
	DetectionRadius       float32
	FleeStrength          float32
	KillBonus             float32
	HuntingCooldown       int32
	Size                  float32
	Restitution           float32
	SpawnOffset           float32
}

// Profiles is indexed by Species.
type Profiles [2]Profile

// Get returns the profile for s.
func (p *Profiles) Get(s Species) *Profile {
	return &p[s]
}

// ProfilesFromConfig builds the species lookup table.
func ProfilesFromConfig(cfg *config.Config) Profiles {
	var p Profiles
	p[SpeciesPrey] = profileFrom(&cfg.Species.Prey)
	p[SpeciesPredator] = profileFrom(&cfg.Species.Predator)
	return p
}

func profileFrom(c *config.SpeciesProfileConfig) Profile {
	return Profile{
		MaxSpeed:              float32(c.MaxSpeed),
		MinSpeed:              float32(c.MinSpeed),
		MaxForce:              float32(c.MaxForce),
		SteeringFactor:        float32(c.SteeringFactor),
		MaxHealth:             float32(c.MaxHealth),
		InitialHealth:         float32(c.InitialHealth),
		HealthDecayRate:       float32(c.HealthDecayRate),
		FoodGenerationRate:    float32(c.FoodGenerationRate),
		ReproductionThreshold: float32(c.ReproductionThreshold),
		ReproductionCost:      float32(c.ReproductionCost),
		ReproductionCooldown:  float32(c.ReproductionCooldown),
		DetectionRadius:       float32(c.DetectionRadius),
		FleeStrength:          float32(c.FleeStrength),
		KillBonus:             float32(c.KillBonus),
		HuntingCooldown:       int32(c.HuntingCooldown),
		Size:                  float32(c.Size),
		Restitution:           float32(c.Restitution),
		SpawnOffset:           float32(c.SpawnOffset),
	}
}
