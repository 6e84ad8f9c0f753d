package components

// Health tracks an agent's vitality. Value stays in [0, Max].
type Health struct {
	Value     float32
	Max       float32
	DecayRate float32 // lost per second
	RegenRate float32 // passively regained per second
}

// Ratio returns Value/Max, or 0 for a zero-capacity health pool.
func (h Health) Ratio() float32 {
	if h.Max <= 0 {
		return 0
	}
	return h.Value / h.Max
}

// Reproduction holds the reproduction state machine.
type Reproduction struct {
	Threshold        float32 // minimum health to become ready
	Cost             float32 // health paid by the parent
	Cooldown         float32 // seconds until the next birth is allowed
	CooldownDuration float32 // cooldown restarted after each birth
	Ready            bool
}

// Organism bundles identity and tick-scoped ecosystem state.
type Organism struct {
	ID           uint32
	Species      Species
	Generation   uint32
	Age          float32 // seconds alive
	HuntCooldown int32   // ticks until a predator may engage again
}
