package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var flagEvaluations int

var autodraftCmd = &cobra.Command{
	Use:   "autodraft",
	Short: "Play a full sample draft and rank the resulting rosters",
	Long: `Run an entire draft: the simulator's team picks whatever the
rollout engine recommends, every other team samples from the
pick-probability model. Prints the pick log and the projected final
standings.`,
	Args: cobra.NoArgs,
	RunE: runAutodraft,
}

func init() {
	autodraftCmd.Flags().IntVar(&flagEvaluations, "evaluations", 1000, "randomized roster evaluations for the standings")
}

func runAutodraft(cmd *cobra.Command, args []string) error {
	eng, league, err := setup()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(flagSeed))
	simName := league.SimulatorTeam().Name
	fmt.Fprintf(os.Stdout, "\nDrafting %d rounds, advising %s\n\n", league.TotalPicks()/len(league.Teams), simName)

	for !league.Complete() {
		pick := league.CurrentTurn + 1
		round := league.Round() + 1
		team := league.NextTeam()

		var name string
		if league.IsSimulatorTurn() {
			rec, _, err := eng.Simulate(cmd.Context(), league, eng.Budget())
			if err != nil {
				return fmt.Errorf("pick %d: %w", pick, err)
			}
			name = rec.Player.Name
			fmt.Fprintf(os.Stdout, "%3d (R%02d) %-14s -> %s [%s]  *advised*\n",
				pick, round, team.Name, name, rec.Position)
		} else {
			player, err := eng.SampleOpponentPick(league, rng)
			if err != nil {
				return fmt.Errorf("pick %d: %w", pick, err)
			}
			name = player.Name
			fmt.Fprintf(os.Stdout, "%3d (R%02d) %-14s -> %s [%s]\n",
				pick, round, team.Name, name, player.Position)
		}
		if err := eng.CommitPick(league, name); err != nil {
			return fmt.Errorf("pick %d: %w", pick, err)
		}
	}

	standings := eng.Standings(league, flagEvaluations, flagSeed)

	fmt.Fprintf(os.Stdout, "\nProjected standings over %d randomized evaluations:\n\n", flagEvaluations)
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header(" ", "TEAM", "ROSTER_PROJ", "AVG_STARTER_PTS", "FIRST%")
	for _, s := range standings {
		marker := " "
		if s.Team == simName {
			marker = ">"
		}
		table.Append(
			marker,
			s.Team,
			fmt.Sprintf("%.1f", s.RosterPoints),
			fmt.Sprintf("%.1f", s.AveragePoints),
			fmt.Sprintf("%.1f%%", s.FirstShare*100),
		)
	}
	table.Render()
	fmt.Fprintln(os.Stdout)
	return nil
}
