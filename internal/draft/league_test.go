package draft

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-assistant/internal/models"
	"github.com/jstittsworth/draft-assistant/pkg/config"
)

func fourSeeds() []TeamSeed {
	return []TeamSeed{
		{Name: "Team A", Order: 1, Simulator: true},
		{Name: "Team B", Order: 2},
		{Name: "Team C", Order: 3},
		{Name: "Team D", Order: 4},
	}
}

func bigPool(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{
			Name:            fmt.Sprintf("Runner %03d", i),
			Position:        models.PositionRB,
			ProjectedPoints: float64(300 - i),
		}
	}
	return players
}

func newTestLeague(t *testing.T, seeds []TeamSeed, players []models.Player, opts Options) *League {
	t.Helper()
	l, err := NewLeague(seeds, players, opts)
	require.NoError(t, err)
	return l
}

func TestNewLeagueValidation(t *testing.T) {
	opts := Options{RosterSlots: 2, Slots: models.DefaultStarterSlots(), Snake: true}
	tests := []struct {
		name    string
		seeds   []TeamSeed
		players []models.Player
		opts    Options
	}{
		{
			name:    "one team",
			seeds:   []TeamSeed{{Name: "Solo", Order: 1, Simulator: true}},
			players: bigPool(4),
			opts:    opts,
		},
		{
			name:    "zero roster slots",
			seeds:   fourSeeds(),
			players: bigPool(4),
			opts:    Options{RosterSlots: 0, Slots: models.DefaultStarterSlots()},
		},
		{
			name:  "empty pool",
			seeds: fourSeeds(),
			opts:  opts,
		},
		{
			name: "no simulator",
			seeds: []TeamSeed{
				{Name: "Team A", Order: 1},
				{Name: "Team B", Order: 2},
			},
			players: bigPool(4),
			opts:    opts,
		},
		{
			name: "two simulators",
			seeds: []TeamSeed{
				{Name: "Team A", Order: 1, Simulator: true},
				{Name: "Team B", Order: 2, Simulator: true},
			},
			players: bigPool(4),
			opts:    opts,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLeague(tt.seeds, tt.players, tt.opts)
			require.Error(t, err)
			var cfgErr *config.ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestSnakeOrderReversesOddRounds(t *testing.T) {
	l := newTestLeague(t, fourSeeds(), bigPool(20), Options{
		RosterSlots: 3,
		Slots:       models.DefaultStarterSlots(),
		Snake:       true,
	})

	var order []string
	for i := 0; i < 8; i++ {
		order = append(order, l.NextTeam().Name)
		best, ok := l.Pool.BestAvailableOverall()
		require.True(t, ok)
		require.NoError(t, l.CommitPick(best.Name))
	}

	assert.Equal(t, []string{
		"Team A", "Team B", "Team C", "Team D",
		"Team D", "Team C", "Team B", "Team A",
	}, order)
}

func TestLinearOrderWithoutSnake(t *testing.T) {
	l := newTestLeague(t, fourSeeds(), bigPool(20), Options{
		RosterSlots: 2,
		Slots:       models.DefaultStarterSlots(),
		Snake:       false,
	})

	var order []string
	for i := 0; i < 8; i++ {
		order = append(order, l.NextTeam().Name)
		best, _ := l.Pool.BestAvailableOverall()
		require.NoError(t, l.CommitPick(best.Name))
	}

	assert.Equal(t, []string{
		"Team A", "Team B", "Team C", "Team D",
		"Team A", "Team B", "Team C", "Team D",
	}, order)
}

func TestSeedsSortedByOrder(t *testing.T) {
	seeds := []TeamSeed{
		{Name: "Team D", Order: 4},
		{Name: "Team A", Order: 1, Simulator: true},
		{Name: "Team C", Order: 3},
		{Name: "Team B", Order: 2},
	}
	l := newTestLeague(t, seeds, bigPool(8), Options{RosterSlots: 2, Slots: models.DefaultStarterSlots()})

	assert.Equal(t, "Team A", l.Teams[0].Name)
	assert.Equal(t, "Team D", l.Teams[3].Name)
	assert.Equal(t, 0, l.SimulatorIndex())
}

func TestCommitPickUnknownPlayer(t *testing.T) {
	l := newTestLeague(t, fourSeeds(), bigPool(8), Options{RosterSlots: 2, Slots: models.DefaultStarterSlots()})

	err := l.CommitPick("Nobody Smith")
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Nobody Smith", nfErr.Name)

	// Failed pick leaves the turn and pool untouched.
	assert.Equal(t, 0, l.CurrentTurn)
	assert.Equal(t, 8, l.Pool.Remaining())
}

func TestCommitPickAlreadyDrafted(t *testing.T) {
	l := newTestLeague(t, fourSeeds(), bigPool(8), Options{RosterSlots: 2, Slots: models.DefaultStarterSlots()})
	require.NoError(t, l.CommitPick("Runner 000"))

	err := l.CommitPick("Runner 000")
	var stErr *StateError
	require.ErrorAs(t, err, &stErr)
	assert.Equal(t, 1, l.CurrentTurn)
}

func TestCommitPickAfterComplete(t *testing.T) {
	l := newTestLeague(t, fourSeeds(), bigPool(8), Options{RosterSlots: 1, Slots: models.DefaultStarterSlots()})
	for !l.Complete() {
		best, _ := l.Pool.BestAvailableOverall()
		require.NoError(t, l.CommitPick(best.Name))
	}

	err := l.CommitPick("Runner 007")
	var stErr *StateError
	assert.ErrorAs(t, err, &stErr)
}

func TestDraftCompletesAfterTotalPicks(t *testing.T) {
	l := newTestLeague(t, fourSeeds(), bigPool(20), Options{RosterSlots: 3, Slots: models.DefaultStarterSlots(), Snake: true})
	require.Equal(t, 12, l.TotalPicks())

	for i := 0; i < l.TotalPicks(); i++ {
		assert.False(t, l.Complete())
		best, _ := l.Pool.BestAvailableOverall()
		require.NoError(t, l.CommitPick(best.Name))
	}
	assert.True(t, l.Complete())
	for i := range l.Teams {
		assert.Equal(t, 3, l.Teams[i].RosterCount())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := newTestLeague(t, fourSeeds(), bigPool(8), Options{RosterSlots: 2, Slots: models.DefaultStarterSlots(), Snake: true})
	require.NoError(t, l.CommitPick("Runner 000"))

	clone := l.Clone()
	require.NoError(t, clone.CommitPick("Runner 001"))
	require.NoError(t, clone.CommitPick("Runner 002"))

	assert.Equal(t, 1, l.CurrentTurn)
	assert.Equal(t, 3, clone.CurrentTurn)
	assert.Equal(t, 7, l.Pool.Remaining())
	assert.Equal(t, 5, clone.Pool.Remaining())
	assert.Equal(t, 1, l.Teams[0].RosterCount())
}

func TestRoundAndSimulatorTurn(t *testing.T) {
	l := newTestLeague(t, fourSeeds(), bigPool(20), Options{RosterSlots: 2, Slots: models.DefaultStarterSlots(), Snake: true})

	assert.Equal(t, 0, l.Round())
	assert.True(t, l.IsSimulatorTurn())

	best, _ := l.Pool.BestAvailableOverall()
	require.NoError(t, l.CommitPick(best.Name))
	assert.False(t, l.IsSimulatorTurn())
}
