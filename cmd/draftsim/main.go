package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jstittsworth/draft-assistant/internal/draft"
	"github.com/jstittsworth/draft-assistant/internal/engine"
	"github.com/jstittsworth/draft-assistant/pkg/config"
	"github.com/jstittsworth/draft-assistant/pkg/logger"
)

var (
	flagBudget  float64
	flagWorkers int
	flagSeed    int64
	flagTeams   int
	flagSlot    int
)

var rootCmd = &cobra.Command{
	Use:   "draftsim",
	Short: "Fantasy draft assistant",
	Long: `Simulate fantasy football drafts with Monte Carlo rollouts.
Historical pick tendencies drive opponent behavior and historical
projection misses drive the scoring model; the bundled sample data
makes every command runnable out of the box.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&flagBudget, "budget", 0, "simulation seconds per advised pick (0 uses SIMULATION_SECONDS)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "concurrent rollout workers (0 uses SIMULATION_WORKERS)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 1, "seed for opponent sampling and standings")
	rootCmd.PersistentFlags().IntVar(&flagTeams, "teams", 10, "number of teams in the league")
	rootCmd.PersistentFlags().IntVar(&flagSlot, "slot", 4, "simulator's draft slot, 1-based")

	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(autodraftCmd)
}

// setup loads configuration, applies flag overrides, trains both models
// on the bundled sample data and builds a fresh league.
func setup() (*engine.Engine, *draft.League, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if flagBudget > 0 {
		cfg.SimulationSeconds = flagBudget
	}
	if flagWorkers > 0 {
		cfg.SimulationWorkers = flagWorkers
	}
	logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	eng, err := engine.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := eng.TrainPickModel(samplePicks(flagTeams, cfg.RosterSlots)); err != nil {
		return nil, nil, fmt.Errorf("train pick model: %w", err)
	}
	if err := eng.CalibrateSetbacks(sampleSeasons(), flagTeams); err != nil {
		return nil, nil, fmt.Errorf("calibrate setbacks: %w", err)
	}

	league, err := draft.NewLeague(sampleTeams(flagTeams, flagSlot), samplePlayers(), draft.Options{
		RosterSlots: cfg.RosterSlots,
		Slots:       cfg.StarterSlots(),
		Snake:       cfg.SnakeDraft,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build league: %w", err)
	}
	return eng, league, nil
}
