package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/jstittsworth/draft-assistant/internal/models"
	"github.com/jstittsworth/draft-assistant/internal/recommend"
)

var flagPicksMade int

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Recommend the next pick for the simulator's team",
	Long: `Fast-forward a sample draft to the simulator's turn, run the
time-boxed rollout simulation and print the per-position results with
the recommended player.`,
	Args: cobra.NoArgs,
	RunE: runAdvise,
}

func init() {
	adviseCmd.Flags().IntVar(&flagPicksMade, "picks", 0, "fast-forward this many picks before advising (0 advances to the simulator's first turn)")
}

func runAdvise(cmd *cobra.Command, args []string) error {
	eng, league, err := setup()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(flagSeed))
	target := flagPicksMade
	for league.CurrentTurn < target || (target == 0 && !league.IsSimulatorTurn()) {
		player, err := eng.SampleOpponentPick(league, rng)
		if err != nil {
			return fmt.Errorf("fast-forward: %w", err)
		}
		if err := eng.CommitPick(league, player.Name); err != nil {
			return fmt.Errorf("fast-forward: %w", err)
		}
	}
	if !league.IsSimulatorTurn() {
		return fmt.Errorf("pick %d is not the simulator's turn; adjust --picks", league.CurrentTurn+1)
	}

	rec, res, err := eng.Simulate(cmd.Context(), league, eng.Budget())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\nPick %d, round %d  |  %s on the clock  |  %d rollouts in %s\n\n",
		league.CurrentTurn+1, league.Round()+1, league.NextTeam().Name,
		res.Iterations, res.Elapsed.Round(time.Millisecond))

	printAdviceTable(rec, league.Pool)

	if rec.UsedFallback {
		fmt.Fprintln(os.Stdout, "\nNo rollouts completed inside the budget; falling back to best available.")
	}
	fmt.Fprintf(os.Stdout, "\nRecommended: %s (%s, %s) projected %.1f\n\n",
		rec.Player.Name, rec.Position, rec.Player.Team, rec.Player.ProjectedPoints)
	return nil
}

func printAdviceTable(rec *recommend.Recommendation, pool *models.Pool) {
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header(" ", "POS", "AVG_SEASON_PTS", "BEST_AVAILABLE", "PROJ", "REMAINING")

	positions := make([]models.Position, 0, len(rec.PerPositionAverage))
	for pos := range rec.PerPositionAverage {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		return rec.PerPositionAverage[positions[i]] > rec.PerPositionAverage[positions[j]]
	})

	for _, pos := range positions {
		marker := " "
		if pos == rec.Position {
			marker = ">"
		}
		bestName, bestProj := "—", "—"
		if best, ok := pool.BestAvailable(pos); ok {
			bestName = best.Name
			bestProj = fmt.Sprintf("%.1f", best.ProjectedPoints)
		}
		table.Append(
			marker,
			string(pos),
			fmt.Sprintf("%.1f", rec.PerPositionAverage[pos]),
			bestName,
			bestProj,
			fmt.Sprintf("%d", pool.UndraftedCount(pos)),
		)
	}
	table.Render()
}
