package setback

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/jstittsworth/draft-assistant/internal/models"
	"github.com/jstittsworth/draft-assistant/pkg/config"
	"github.com/jstittsworth/draft-assistant/pkg/logger"
)

// Options configures calibration and the reduction policy.
type Options struct {
	Policy        string  // "proportional" or "floor"
	Threshold     float64 // a season is a setback when delta <= -Threshold
	FloorFraction float64 // retention fraction for the floor policy
	MaxAdjustment float64 // cap headroom over the position's top projection
}

// tierStats holds the calibrated setback behavior of one position tier.
type tierStats struct {
	samples int
	prob    float64   // share of historical seasons that were setbacks
	tail    []float64 // the setback-tail deltas, ascending
}

// Model samples season setbacks for rostered players. Each player draws
// an independent Bernoulli indicator with a probability calibrated from
// historical projected-versus-actual deltas for their position tier; a
// triggered setback reduces the player's contribution per the
// configured policy. Calibrated once per session and read-only
// afterwards.
type Model struct {
	policy Policy
	byTier map[string]tierStats
	byPos  map[models.Position]tierStats
}

// Calibrate builds the model from historical player seasons. Seasons
// without actuals are skipped. Tiers with no usable history fall back
// to their position aggregate; positions with no history never trigger
// setbacks, which keeps DST and K at their projections the way thin
// streaming positions behave in practice.
func Calibrate(seasons []models.HistoricalSeason, teams int, slots models.StarterSlots, opts Options) (*Model, error) {
	policy, err := NewPolicy(opts.Policy, opts.FloorFraction)
	if err != nil {
		return nil, &config.ConfigurationError{Field: "setback_policy", Reason: err.Error()}
	}
	if opts.Threshold <= 0 {
		return nil, &config.ConfigurationError{Field: "setback_threshold", Reason: fmt.Sprintf("must be positive, got %g", opts.Threshold)}
	}

	tierDeltas := make(map[string][]float64)
	posDeltas := make(map[models.Position][]float64)
	for _, group := range groupBySeasonPosition(seasons) {
		sort.Slice(group, func(i, j int) bool {
			if group[i].Projected != group[j].Projected {
				return group[i].Projected > group[j].Projected
			}
			return group[i].Name < group[j].Name
		})
		for rank, s := range group {
			delta, ok := s.Delta()
			if !ok {
				continue
			}
			tier := models.TierFor(s.Position, rank, teams, slots)
			tierDeltas[tier] = append(tierDeltas[tier], delta)
			posDeltas[s.Position] = append(posDeltas[s.Position], delta)
		}
	}

	m := &Model{
		policy: policy,
		byTier: make(map[string]tierStats, len(tierDeltas)),
		byPos:  make(map[models.Position]tierStats, len(posDeltas)),
	}
	for tier, deltas := range tierDeltas {
		m.byTier[tier] = summarize(deltas, opts.Threshold)
	}
	for pos, deltas := range posDeltas {
		m.byPos[pos] = summarize(deltas, opts.Threshold)
	}

	log := logger.WithModelContext("setback", len(seasons))
	if len(m.byTier) == 0 {
		log.Warn("No usable historical seasons; setback model will never trigger")
	} else {
		for tier, deltas := range tierDeltas {
			log.WithFields(logrus.Fields{
				"tier":         tier,
				"samples":      len(deltas),
				"setback_prob": m.byTier[tier].prob,
				"mean_delta":   stat.Mean(deltas, nil),
			}).Debug("Calibrated tier setback rate")
		}
	}

	return m, nil
}

// groupBySeasonPosition partitions seasons so tier ranks are computed
// within a single season and position.
func groupBySeasonPosition(seasons []models.HistoricalSeason) map[string][]models.HistoricalSeason {
	groups := make(map[string][]models.HistoricalSeason)
	for _, s := range seasons {
		key := fmt.Sprintf("%d/%s", s.Season, s.Position)
		groups[key] = append(groups[key], s)
	}
	return groups
}

// summarize reduces a delta sample to a setback probability and the
// tail of setback-sized deltas.
func summarize(deltas []float64, threshold float64) tierStats {
	st := tierStats{samples: len(deltas)}
	for _, d := range deltas {
		if d <= -threshold {
			st.tail = append(st.tail, d)
		}
	}
	sort.Float64s(st.tail)
	if len(deltas) > 0 {
		st.prob = float64(len(st.tail)) / float64(len(deltas))
	}
	return st
}

// statsFor resolves the calibrated stats for a player, preferring the
// tier bucket and falling back to the position aggregate.
func (m *Model) statsFor(p models.Player) (tierStats, bool) {
	if st, ok := m.byTier[p.Tier]; ok && st.samples > 0 {
		return st, true
	}
	st, ok := m.byPos[p.Position]
	return st, ok && st.samples > 0
}

// SetbackProbability returns the calibrated Bernoulli probability for a
// player, zero when no history covers their position.
func (m *Model) SetbackProbability(p models.Player) float64 {
	st, ok := m.statsFor(p)
	if !ok {
		return 0
	}
	return st.prob
}

// AdjustedPoints samples one season outcome for a player: the
// projection as-is, or the policy's reduced value when the setback
// indicator fires. The result is clamped to [0, cap]; cap <= 0 means
// uncapped. Every call draws independently from rng.
func (m *Model) AdjustedPoints(rng *rand.Rand, p models.Player, cap float64) float64 {
	points := p.ProjectedPoints
	if st, ok := m.statsFor(p); ok && st.prob > 0 && rng.Float64() < st.prob {
		points = m.policy.Reduce(rng, p.ProjectedPoints, st.tail)
	}
	if points < 0 {
		points = 0
	}
	if cap > 0 && points > cap {
		points = cap
	}
	return points
}

// ScoreRoster samples a season outcome for every rostered player and
// returns the starter points of the best legal lineup on the adjusted
// values. Sampling is independent across players.
func (m *Model) ScoreRoster(rng *rand.Rand, roster []models.Player, slots models.StarterSlots, caps Caps) float64 {
	adjusted := make([]models.Player, len(roster))
	for i, p := range roster {
		adjusted[i] = p
		adjusted[i].ProjectedPoints = m.AdjustedPoints(rng, p, caps[p.Position])
	}
	return models.StarterPoints(adjusted, slots)
}

// Caps bounds adjusted scores per position.
type Caps map[models.Position]float64

// CapsFromPool derives per-position caps from the pool's top
// projections plus the configured headroom.
func CapsFromPool(pool *models.Pool, maxAdjustment float64) Caps {
	caps := make(Caps)
	for _, pos := range models.Positions() {
		if max := pool.MaxProjected(pos); max > 0 {
			caps[pos] = max * (1 + maxAdjustment)
		}
	}
	return caps
}
