package pickmodel

import (
	"errors"
	"math/rand"

	"github.com/jstittsworth/draft-assistant/internal/models"
)

// ErrPoolExhausted is returned when sampling is attempted against a
// pool with no undrafted players at all.
var ErrPoolExhausted = errors.New("no undrafted players remain")

// Outcome tags which sampling path produced a simulated pick, so tests
// can assert the branch that executed.
type Outcome int

const (
	// OutcomeSampled is the normal path: the first categorical draw
	// landed on a position with undrafted players.
	OutcomeSampled Outcome = iota
	// OutcomeResampled means one or more drawn positions were empty and
	// the weights were renormalized before a draw succeeded.
	OutcomeResampled
	// OutcomeBestAvailable means the weight mass was exhausted and the
	// pick fell back to the best undrafted player league-wide.
	OutcomeBestAvailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSampled:
		return "sampled"
	case OutcomeResampled:
		return "resampled"
	case OutcomeBestAvailable:
		return "best_available"
	}
	return "unknown"
}

// SampleResult is one simulated pick: the chosen position, the player
// taken there, and the sampling path that chose them.
type SampleResult struct {
	Position models.Position
	Player   models.Player
	Outcome  Outcome
}

// Sample draws a position categorically from the weight vector, then
// takes the highest-projected undrafted player at that position (ties
// alphabetical). An empty drawn position is removed and the remainder
// renormalized before redrawing; once no weight mass is left the pick
// falls back to the best undrafted player league-wide.
func Sample(rng *rand.Rand, weights map[models.Position]float64, pool *models.Pool) (SampleResult, error) {
	// Fixed iteration order keeps the draw reproducible per seed.
	order := make([]models.Position, 0, len(weights))
	remaining := make(map[models.Position]float64, len(weights))
	for _, pos := range models.Positions() {
		if w, ok := weights[pos]; ok && w > 0 {
			order = append(order, pos)
			remaining[pos] = w
		}
	}

	outcome := OutcomeSampled
	for len(order) > 0 {
		total := 0.0
		for _, pos := range order {
			total += remaining[pos]
		}
		if total <= 0 {
			break
		}

		r := rng.Float64() * total
		selected := order[len(order)-1]
		for _, pos := range order {
			if r < remaining[pos] {
				selected = pos
				break
			}
			r -= remaining[pos]
		}

		if player, ok := pool.BestAvailable(selected); ok {
			return SampleResult{Position: selected, Player: player, Outcome: outcome}, nil
		}

		// Drop the exhausted position and redraw over the rest.
		outcome = OutcomeResampled
		delete(remaining, selected)
		next := order[:0]
		for _, pos := range order {
			if pos != selected {
				next = append(next, pos)
			}
		}
		order = next
	}

	player, ok := pool.BestAvailableOverall()
	if !ok {
		return SampleResult{}, ErrPoolExhausted
	}
	return SampleResult{Position: player.Position, Player: player, Outcome: OutcomeBestAvailable}, nil
}
