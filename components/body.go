package components

// Body holds physical properties used by collision response.
type Body struct {
	Radius      float32
	Restitution float32 // fraction of speed kept after a bounce
}

// Motion holds the movement limits of an agent.
// Copied from the species profile at spawn and inherited at birth.
type Motion struct {
	MaxSpeed       float32
	MinSpeed       float32
	MaxForce       float32
	SteeringFactor float32 // scales every applied force
}

// MotionFromProfile returns movement limits for the given profile.
func MotionFromProfile(p *Profile) Motion {
	return Motion{
		MaxSpeed:       p.MaxSpeed,
		MinSpeed:       p.MinSpeed,
		MaxForce:       p.MaxForce,
		SteeringFactor: p.SteeringFactor,
	}
}

// BodyFromProfile returns the collision body for the given profile.
func BodyFromProfile(p *Profile) Body {
	return Body{
		Radius:      p.Size / 2,
		Restitution: p.Restitution,
	}
}
