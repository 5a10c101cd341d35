package rollout

import (
	"context"
	"hash/crc32"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/draft-assistant/internal/draft"
	"github.com/jstittsworth/draft-assistant/internal/models"
	"github.com/jstittsworth/draft-assistant/internal/pickmodel"
	"github.com/jstittsworth/draft-assistant/internal/setback"
	"github.com/jstittsworth/draft-assistant/pkg/config"
	"github.com/jstittsworth/draft-assistant/pkg/logger"
)

// seedStride spaces per-rollout seeds far apart so neighboring
// iterations never share a stream prefix. Two's-complement int64 form
// of the 64-bit golden-ratio constant 0x9E3779B97F4A7C15.
const seedStride int64 = -7046029254386353131

// Config controls a simulation run.
type Config struct {
	Budget        time.Duration // wall-clock budget for the whole run
	Workers       int           // concurrent rollout workers
	KDSTMinRound  int           // 0-based round from which DST/K become candidates
	MaxAdjustment float64       // cap headroom for adjusted scores
	ProgressEvery int           // log progress every N completed rollouts
}

// Result holds the raw outcome of a simulation run: every rollout score
// bucketed by the candidate first-pick position.
type Result struct {
	RunID      string
	Candidates []models.Position
	Scores     map[models.Position][]float64
	Iterations int
	Elapsed    time.Duration
}

// Engine plays forked drafts forward under a wall-clock budget. The
// pick and setback models are fit once elsewhere and read-only here, so
// any number of rollouts can consult them concurrently.
type Engine struct {
	pick    *pickmodel.Model
	setback *setback.Model
	cfg     Config
}

// New assembles an engine from the session's fitted models.
func New(pick *pickmodel.Model, sb *setback.Model, cfg Config) (*Engine, error) {
	if pick == nil {
		return nil, &config.ConfigurationError{Field: "pick_model", Reason: "pick-probability model has not been trained"}
	}
	if sb == nil {
		return nil, &config.ConfigurationError{Field: "setback_model", Reason: "setback model has not been calibrated"}
	}
	if cfg.Budget < 0 {
		return nil, &config.ConfigurationError{Field: "time_budget", Reason: "time budget must not be negative"}
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 100
	}
	return &Engine{pick: pick, setback: sb, cfg: cfg}, nil
}

// Run simulates remaining drafts for each candidate first-pick position
// until the budget elapses. The authoritative league is read once into
// a snapshot; every rollout forks that snapshot, so committed picks and
// the caller's state are never touched. Rollouts already in flight when
// the budget expires run to completion; a partial rollout score is
// never counted. Cancelling ctx stops new rollouts the same way.
func (e *Engine) Run(ctx context.Context, league *draft.League) (*Result, error) {
	snapshot := league.Clone()
	candidates := e.candidatePositions(snapshot)

	result := &Result{
		RunID:      uuid.NewString(),
		Candidates: candidates,
		Scores:     make(map[models.Position][]float64, len(candidates)),
	}
	log := logger.WithSimulationRun(result.RunID)

	if len(candidates) == 0 || snapshot.Complete() {
		log.Warn("Nothing to simulate: draft complete or no candidate positions")
		return result, nil
	}
	if e.cfg.Budget == 0 {
		return result, nil
	}

	log.WithFields(logrus.Fields{
		"candidates": candidates,
		"budget":     e.cfg.Budget,
		"workers":    e.cfg.Workers,
		"turn":       snapshot.CurrentTurn,
	}).Info("Starting Monte Carlo simulation")

	start := time.Now()
	baseSeed := int64(crc32.ChecksumIEEE([]byte(result.RunID))) + start.UnixNano()
	caps := setback.CapsFromPool(snapshot.Pool, e.cfg.MaxAdjustment)

	cycles := make(chan []float64, e.cfg.Workers)
	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < e.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				// Deadline and cancellation are only checked between
				// rollout cycles; a started cycle always finishes.
				if ctx.Err() != nil || time.Since(start) >= e.cfg.Budget {
					return
				}
				iter := next.Add(1)
				scores := make([]float64, len(candidates))
				for c, pos := range candidates {
					seed := baseSeed + (iter*int64(len(candidates))+int64(c))*seedStride
					scores[c] = e.rolloutOnce(snapshot, pos, rand.New(rand.NewSource(seed)), caps)
				}
				cycles <- scores
			}
		}()
	}
	go func() {
		wg.Wait()
		close(cycles)
	}()

	for scores := range cycles {
		for c, pos := range candidates {
			result.Scores[pos] = append(result.Scores[pos], scores[c])
			result.Iterations++
		}
		if result.Iterations/e.cfg.ProgressEvery > (result.Iterations-len(scores))/e.cfg.ProgressEvery {
			log.WithFields(logrus.Fields{
				"iterations": result.Iterations,
				"elapsed":    time.Since(start).Round(time.Millisecond),
			}).Debug("Simulation progress")
		}
	}

	result.Elapsed = time.Since(start)
	log.WithFields(logrus.Fields{
		"iterations": result.Iterations,
		"elapsed":    result.Elapsed.Round(time.Millisecond),
	}).Info("Monte Carlo simulation completed")

	return result, nil
}

// candidatePositions returns the positions worth considering for the
// next pick: those with undrafted players, holding DST and K back until
// the draft has reached the configured round.
func (e *Engine) candidatePositions(l *draft.League) []models.Position {
	var out []models.Position
	for _, pos := range models.Positions() {
		if (pos == models.PositionDST || pos == models.PositionK) && l.Round() < e.cfg.KDSTMinRound {
			continue
		}
		if l.Pool.UndraftedCount(pos) > 0 {
			out = append(out, pos)
		}
	}
	return out
}

// RolloutScore plays a single rollout for a candidate position from the
// given league state with a fixed seed. The same seed always reproduces
// the same score, which is what makes individual rollouts testable.
func (e *Engine) RolloutScore(league *draft.League, pos models.Position, seed int64) float64 {
	caps := setback.CapsFromPool(league.Pool, e.cfg.MaxAdjustment)
	return e.rolloutOnce(league, pos, rand.New(rand.NewSource(seed)), caps)
}

// rolloutOnce forks the snapshot, commits the hypothetical first pick
// at pos, plays the draft forward until the simulating team's roster is
// full or the pool runs dry, and scores the resulting roster through
// the setback model.
func (e *Engine) rolloutOnce(snapshot *draft.League, pos models.Position, rng *rand.Rand, caps setback.Caps) float64 {
	fork := snapshot.Clone()

	first, ok := fork.Pool.BestAvailable(pos)
	if !ok {
		return 0
	}
	if err := fork.CommitPick(first.Name); err != nil {
		return 0
	}

	sim := fork.SimulatorTeam()
	for !fork.Complete() && sim.RosterCount() < fork.RosterSlots {
		var name string
		if fork.IsSimulatorTurn() {
			// Later own picks are greedy: best projected value left.
			player, ok := fork.Pool.BestAvailableOverall()
			if !ok {
				break
			}
			name = player.Name
		} else {
			weights := e.opponentWeights(fork)
			sample, err := pickmodel.Sample(rng, weights, fork.Pool)
			if err != nil {
				break
			}
			name = sample.Player.Name
		}
		if err := fork.CommitPick(name); err != nil {
			break
		}
	}

	return e.setback.ScoreRoster(rng, sim.Roster, fork.Slots, caps)
}

// SampleOpponentPick draws one pick for the team on the clock the same
// way rollouts model opposing teams: a model-weighted position draw,
// shaded by the team's remaining starting-lineup needs, then the best
// available player there.
func (e *Engine) SampleOpponentPick(l *draft.League, rng *rand.Rand) (models.Player, error) {
	sample, err := pickmodel.Sample(rng, e.opponentWeights(l), l.Pool)
	if err != nil {
		return models.Player{}, err
	}
	return sample.Player, nil
}

// opponentWeights builds the sampling weights for the team on the
// clock: the model's probability vector over positions that still have
// players, with positions whose starting slots the team has already
// filled zeroed out. Once every starting position is covered the raw
// vector is used, since late picks are bench depth anyway.
func (e *Engine) opponentWeights(l *draft.League) map[models.Position]float64 {
	probs := e.pick.Probabilities(l.CurrentTurn+1, l.Pool.NonEmptyPositions())
	team := l.NextTeam()

	filled := 0
	for _, pos := range models.Positions() {
		if team.CountAtPosition(pos) >= l.Slots.At(pos) {
			filled++
		}
	}
	if filled == len(models.Positions()) {
		return probs
	}
	for pos := range probs {
		if team.CountAtPosition(pos) >= l.Slots.At(pos) {
			probs[pos] = 0
		}
	}
	return probs
}
