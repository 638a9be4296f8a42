package types

// ProjectWeights is one derived set of scoring-dimension weights. A valid
// instance sums to 1.0 within floating-point epsilon.
type ProjectWeights struct {
	Skills       float64 `json:"skills"`
	Experience   float64 `json:"experience"`
	Availability float64 `json:"availability"`
	Budget       float64 `json:"budget"`
	Location     float64 `json:"location"`
	Culture      float64 `json:"culture"`
	Velocity     float64 `json:"velocity"`
	Reliability  float64 `json:"reliability"`
}

// Sum returns the total of all eight weights.
func (w ProjectWeights) Sum() float64 {
	return w.Skills + w.Experience + w.Availability + w.Budget +
		w.Location + w.Culture + w.Velocity + w.Reliability
}

// Normalize returns a copy scaled so the eight weights sum to 1.0.
// A zero-sum input is returned unchanged.
func (w ProjectWeights) Normalize() ProjectWeights {
	sum := w.Sum()
	if sum == 0 {
		return w
	}
	return ProjectWeights{
		Skills:       w.Skills / sum,
		Experience:   w.Experience / sum,
		Availability: w.Availability / sum,
		Budget:       w.Budget / sum,
		Location:     w.Location / sum,
		Culture:      w.Culture / sum,
		Velocity:     w.Velocity / sum,
		Reliability:  w.Reliability / sum,
	}
}

// WeightOverrides is a partial override of the eight weight dimensions.
// Nil fields keep the derived value; set fields replace it before the final
// renormalization.
type WeightOverrides struct {
	Skills       *float64 `json:"skills,omitempty" validate:"omitempty,gte=0,lte=1"`
	Experience   *float64 `json:"experience,omitempty" validate:"omitempty,gte=0,lte=1"`
	Availability *float64 `json:"availability,omitempty" validate:"omitempty,gte=0,lte=1"`
	Budget       *float64 `json:"budget,omitempty" validate:"omitempty,gte=0,lte=1"`
	Location     *float64 `json:"location,omitempty" validate:"omitempty,gte=0,lte=1"`
	Culture      *float64 `json:"culture,omitempty" validate:"omitempty,gte=0,lte=1"`
	Velocity     *float64 `json:"velocity,omitempty" validate:"omitempty,gte=0,lte=1"`
	Reliability  *float64 `json:"reliability,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Apply overlays the set override fields onto w and renormalizes.
func (o *WeightOverrides) Apply(w ProjectWeights) ProjectWeights {
	if o == nil {
		return w
	}
	if o.Skills != nil {
		w.Skills = *o.Skills
	}
	if o.Experience != nil {
		w.Experience = *o.Experience
	}
	if o.Availability != nil {
		w.Availability = *o.Availability
	}
	if o.Budget != nil {
		w.Budget = *o.Budget
	}
	if o.Location != nil {
		w.Location = *o.Location
	}
	if o.Culture != nil {
		w.Culture = *o.Culture
	}
	if o.Velocity != nil {
		w.Velocity = *o.Velocity
	}
	if o.Reliability != nil {
		w.Reliability = *o.Reliability
	}
	return w.Normalize()
}
