package recommend

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/draft-assistant/internal/draft"
	"github.com/jstittsworth/draft-assistant/internal/models"
	"github.com/jstittsworth/draft-assistant/internal/rollout"
	"github.com/jstittsworth/draft-assistant/internal/setback"
	"github.com/jstittsworth/draft-assistant/pkg/logger"
)

// ErrNoPlayers is returned when a recommendation is requested but the
// pool has no undrafted players left.
var ErrNoPlayers = errors.New("no undrafted players to recommend")

// scoreEpsilon is the tolerance below which two position averages are
// treated as tied.
const scoreEpsilon = 1e-9

// Recommendation is the engine's answer for one turn: the position
// whose rollouts averaged the most season points, and the best player
// there. UsedFallback marks the no-iterations path, where the player is
// simply the best available by projection rather than a simulated result.
type Recommendation struct {
	PerPositionAverage map[models.Position]float64 `json:"per_position_average"`
	Position           models.Position             `json:"position"`
	Player             models.Player               `json:"player"`
	Iterations         int                         `json:"iterations"`
	UsedFallback       bool                        `json:"used_fallback"`
}

// Aggregate reduces a simulation result against the authoritative
// league into a single recommendation. Position ties break toward the
// deeper remaining pool, then canonical position order. With zero
// completed iterations it returns the flagged best-available fallback
// instead of dressing a guess up as a simulated answer.
func Aggregate(res *rollout.Result, league *draft.League) (*Recommendation, error) {
	rec := &Recommendation{
		PerPositionAverage: make(map[models.Position]float64, len(res.Scores)),
		Iterations:         res.Iterations,
	}

	if res.Iterations == 0 {
		player, ok := league.Pool.BestAvailableOverall()
		if !ok {
			return nil, ErrNoPlayers
		}
		rec.Position = player.Position
		rec.Player = player
		rec.UsedFallback = true
		logger.WithSimulationRun(res.RunID).WithFields(logrus.Fields{
			"player":   player.Name,
			"position": player.Position,
		}).Warn("Zero iterations completed, recommending best available")
		return rec, nil
	}

	for pos, scores := range res.Scores {
		rec.PerPositionAverage[pos] = average(scores)
	}

	chosen := models.Position("")
	for _, pos := range res.Candidates {
		avg, ok := rec.PerPositionAverage[pos]
		if !ok {
			continue
		}
		if chosen == "" || better(avg, rec.PerPositionAverage[chosen], pos, chosen, league.Pool) {
			chosen = pos
		}
	}
	if chosen == "" {
		return nil, ErrNoPlayers
	}

	player, ok := league.Pool.BestAvailable(chosen)
	if !ok {
		return nil, ErrNoPlayers
	}
	rec.Position = chosen
	rec.Player = player

	logger.WithSimulationRun(res.RunID).WithFields(logrus.Fields{
		"position":   chosen,
		"player":     player.Name,
		"average":    rec.PerPositionAverage[chosen],
		"iterations": res.Iterations,
	}).Info("Recommendation ready")

	return rec, nil
}

// better reports whether candidate pos beats the incumbent: higher
// average, then deeper undrafted pool, then earlier canonical order.
// Candidates are visited in canonical order, so the incumbent already
// wins the final tie-break.
func better(avg, bestAvg float64, pos, best models.Position, pool *models.Pool) bool {
	if avg > bestAvg+scoreEpsilon {
		return true
	}
	if avg < bestAvg-scoreEpsilon {
		return false
	}
	return pool.UndraftedCount(pos) > pool.UndraftedCount(best)
}

func average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}

// Standing is one team's projected finish after a completed draft.
// RosterPoints is the raw projection over the whole roster, bench
// included; AveragePoints is starters-only through the setback model.
type Standing struct {
	Team          string  `json:"team"`
	RosterPoints  float64 `json:"roster_points"`
	AveragePoints float64 `json:"average_points"`
	FirstShare    float64 `json:"first_share"`
}

// RankTeams evaluates every roster through the setback model n times
// and ranks teams by mean starter points, reporting how often each
// finished first across the evaluations. Deterministic per seed.
func RankTeams(league *draft.League, sb *setback.Model, n int, seed int64, maxAdjustment float64) []Standing {
	if n < 1 {
		n = 1
	}
	rng := rand.New(rand.NewSource(seed))
	caps := setback.CapsFromPool(league.Pool, maxAdjustment)

	sums := make([]float64, len(league.Teams))
	firsts := make([]int, len(league.Teams))
	for i := 0; i < n; i++ {
		bestScore := math.Inf(-1)
		best := -1
		for t := range league.Teams {
			score := sb.ScoreRoster(rng, league.Teams[t].Roster, league.Slots, caps)
			sums[t] += score
			if score > bestScore {
				bestScore = score
				best = t
			}
		}
		if best >= 0 {
			firsts[best]++
		}
	}

	standings := make([]Standing, len(league.Teams))
	for t := range league.Teams {
		standings[t] = Standing{
			Team:          league.Teams[t].Name,
			RosterPoints:  league.Teams[t].ProjectedRosterPoints(),
			AveragePoints: sums[t] / float64(n),
			FirstShare:    float64(firsts[t]) / float64(n),
		}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].AveragePoints > standings[j].AveragePoints
	})
	return standings
}
