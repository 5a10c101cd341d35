package setback

import (
	"fmt"
	"math/rand"
	"strings"
)

// Policy decides how far a triggered setback drags a player's season
// contribution. Implementations must return a non-negative value.
type Policy interface {
	Name() string
	// Reduce maps a projection to its setback-season value. tail holds
	// the calibrated setback deltas for the player's tier, ascending;
	// it is non-empty whenever a setback can trigger.
	Reduce(rng *rand.Rand, projected float64, tail []float64) float64
}

// NewPolicy resolves a policy by its configured name.
func NewPolicy(name string, floorFraction float64) (Policy, error) {
	switch strings.ToLower(name) {
	case "proportional":
		return &ProportionalPolicy{}, nil
	case "floor":
		return &FloorPolicy{Fraction: floorFraction}, nil
	}
	return nil, fmt.Errorf("unknown setback policy %q", name)
}

// ProportionalPolicy replays history: it draws one of the calibrated
// setback deltas uniformly and applies it to the projection, so a
// simulated bust season loses as much as a comparable real one did.
type ProportionalPolicy struct{}

func (p *ProportionalPolicy) Name() string { return "proportional" }

func (p *ProportionalPolicy) Reduce(rng *rand.Rand, projected float64, tail []float64) float64 {
	if len(tail) == 0 {
		return projected
	}
	points := projected * (1 + tail[rng.Intn(len(tail))])
	if points < 0 {
		// Deltas below -1 model a season lost before it started.
		points = 0
	}
	return points
}

// FloorPolicy drops a setback season to a flat fraction of the
// projection regardless of how bad history was.
type FloorPolicy struct {
	Fraction float64
}

func (p *FloorPolicy) Name() string { return "floor" }

func (p *FloorPolicy) Reduce(_ *rand.Rand, projected float64, _ []float64) float64 {
	return projected * p.Fraction
}
