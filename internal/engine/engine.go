package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/draft-assistant/internal/draft"
	"github.com/jstittsworth/draft-assistant/internal/models"
	"github.com/jstittsworth/draft-assistant/internal/pickmodel"
	"github.com/jstittsworth/draft-assistant/internal/recommend"
	"github.com/jstittsworth/draft-assistant/internal/rollout"
	"github.com/jstittsworth/draft-assistant/internal/setback"
	"github.com/jstittsworth/draft-assistant/pkg/config"
	"github.com/jstittsworth/draft-assistant/pkg/logger"
)

// Engine is the session facade: it owns the fitted models and the
// configuration, and turns a league state into pick recommendations.
// Train and calibrate once, then Simulate as many turns as the draft
// has; the models are read-only after fitting so simulations may
// overlap with reads.
type Engine struct {
	cfg     *config.Config
	pick    *pickmodel.Model
	setback *setback.Model
}

// New returns an engine with no fitted models. TrainPickModel and
// CalibrateSetbacks must both succeed before Simulate will run.
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		return nil, &config.ConfigurationError{Field: "config", Reason: "configuration is required"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// TrainPickModel fits the per-position pick-probability model from
// historical draft picks. Replaces any previously fitted model.
func (e *Engine) TrainPickModel(picks []models.HistoricalPick) error {
	model, err := pickmodel.Train(picks)
	if err != nil {
		return err
	}
	e.pick = model
	logger.GetLogger().WithField("observations", len(picks)).Info("Pick-probability model trained")
	return nil
}

// CalibrateSetbacks fits the setback model from historical
// projected-versus-actual seasons for a league of the given size.
func (e *Engine) CalibrateSetbacks(seasons []models.HistoricalSeason, teams int) error {
	model, err := setback.Calibrate(seasons, teams, e.cfg.StarterSlots(), setback.Options{
		Policy:        e.cfg.SetbackPolicy,
		Threshold:     e.cfg.SetbackDeltaThreshold,
		FloorFraction: e.cfg.SetbackFloorFraction,
		MaxAdjustment: e.cfg.MaxRandomAdjustment,
	})
	if err != nil {
		return err
	}
	e.setback = model
	logger.GetLogger().WithField("observations", len(seasons)).Info("Setback model calibrated")
	return nil
}

// Budget returns the configured wall-clock budget per simulation run.
func (e *Engine) Budget() time.Duration {
	return time.Duration(e.cfg.SimulationSeconds * float64(time.Second))
}

// Simulate runs budgeted Monte Carlo rollouts for the simulator's next
// pick and aggregates them into a recommendation. The simulator's team
// must be on the clock. The league passed in is treated as the
// authoritative state and is never modified. A zero budget yields the
// flagged best-available fallback.
func (e *Engine) Simulate(ctx context.Context, league *draft.League, budget time.Duration) (*recommend.Recommendation, *rollout.Result, error) {
	if !league.IsSimulatorTurn() {
		return nil, nil, &draft.StateError{
			Reason: fmt.Sprintf("%s is on the clock, not %s", league.NextTeam().Name, league.SimulatorTeam().Name),
		}
	}

	eng, err := rollout.New(e.pick, e.setback, rollout.Config{
		Budget:        budget,
		Workers:       e.cfg.SimulationWorkers,
		KDSTMinRound:  e.cfg.KDSTMinRound,
		MaxAdjustment: e.cfg.MaxRandomAdjustment,
	})
	if err != nil {
		return nil, nil, err
	}

	result, err := eng.Run(ctx, league)
	if err != nil {
		return nil, nil, err
	}

	rec, err := recommend.Aggregate(result, league)
	if err != nil {
		return nil, result, err
	}

	logger.WithDraftTurn(league.CurrentTurn, league.NextTeam().Name).WithFields(logrus.Fields{
		"position":   rec.Position,
		"player":     rec.Player.Name,
		"iterations": rec.Iterations,
		"elapsed":    result.Elapsed,
	}).Info("Turn simulated")

	return rec, result, nil
}

// SampleOpponentPick draws a model-weighted pick for the opposing team
// on the clock, for driving a whole draft without outside input.
func (e *Engine) SampleOpponentPick(league *draft.League, rng *rand.Rand) (models.Player, error) {
	eng, err := rollout.New(e.pick, e.setback, rollout.Config{
		Workers:       e.cfg.SimulationWorkers,
		KDSTMinRound:  e.cfg.KDSTMinRound,
		MaxAdjustment: e.cfg.MaxRandomAdjustment,
	})
	if err != nil {
		return models.Player{}, err
	}
	return eng.SampleOpponentPick(league, rng)
}

// CommitPick records a real-world selection on the authoritative
// league and advances the turn.
func (e *Engine) CommitPick(league *draft.League, playerName string) error {
	return league.CommitPick(playerName)
}

// Standings ranks completed rosters by repeated randomized starter
// evaluations through the setback model.
func (e *Engine) Standings(league *draft.League, evaluations int, seed int64) []recommend.Standing {
	return recommend.RankTeams(league, e.setback, evaluations, seed, e.cfg.MaxRandomAdjustment)
}
