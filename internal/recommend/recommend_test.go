package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-assistant/internal/draft"
	"github.com/jstittsworth/draft-assistant/internal/models"
	"github.com/jstittsworth/draft-assistant/internal/rollout"
	"github.com/jstittsworth/draft-assistant/internal/setback"
)

func recommendLeague(t *testing.T, players []models.Player) *draft.League {
	t.Helper()
	l, err := draft.NewLeague([]draft.TeamSeed{
		{Name: "Mine", Order: 1, Simulator: true},
		{Name: "Theirs", Order: 2},
	}, players, draft.Options{RosterSlots: 3, Slots: models.DefaultStarterSlots(), Snake: true})
	require.NoError(t, err)
	return l
}

func defaultRecommendPlayers() []models.Player {
	return []models.Player{
		{Name: "QB Ace", Position: models.PositionQB, ProjectedPoints: 360},
		{Name: "QB Backup", Position: models.PositionQB, ProjectedPoints: 320},
		{Name: "RB Ace", Position: models.PositionRB, ProjectedPoints: 310},
		{Name: "RB Second", Position: models.PositionRB, ProjectedPoints: 280},
		{Name: "RB Third", Position: models.PositionRB, ProjectedPoints: 250},
		{Name: "WR Ace", Position: models.PositionWR, ProjectedPoints: 290},
	}
}

func TestAggregatePicksHighestAverage(t *testing.T) {
	league := recommendLeague(t, defaultRecommendPlayers())
	res := &rollout.Result{
		RunID:      "run-1",
		Candidates: []models.Position{models.PositionQB, models.PositionRB, models.PositionWR},
		Scores: map[models.Position][]float64{
			models.PositionQB: {1000, 1100},
			models.PositionRB: {1300, 1200},
			models.PositionWR: {900, 950},
		},
		Iterations: 6,
	}

	rec, err := Aggregate(res, league)
	require.NoError(t, err)

	assert.Equal(t, models.PositionRB, rec.Position)
	assert.Equal(t, "RB Ace", rec.Player.Name)
	assert.False(t, rec.UsedFallback)
	assert.Equal(t, 6, rec.Iterations)
	assert.InDelta(t, 1250, rec.PerPositionAverage[models.PositionRB], 1e-9)
	assert.InDelta(t, 1050, rec.PerPositionAverage[models.PositionQB], 1e-9)
}

func TestAggregateTieBreaksTowardDeeperPool(t *testing.T) {
	// Three RBs remain against two QBs; a dead-even average should
	// prefer the position that keeps more options open.
	league := recommendLeague(t, defaultRecommendPlayers())
	res := &rollout.Result{
		RunID:      "run-2",
		Candidates: []models.Position{models.PositionQB, models.PositionRB},
		Scores: map[models.Position][]float64{
			models.PositionQB: {1000},
			models.PositionRB: {1000},
		},
		Iterations: 2,
	}

	rec, err := Aggregate(res, league)
	require.NoError(t, err)
	assert.Equal(t, models.PositionRB, rec.Position)
}

func TestAggregateTieBreaksCanonicalOrder(t *testing.T) {
	players := []models.Player{
		{Name: "QB Ace", Position: models.PositionQB, ProjectedPoints: 360},
		{Name: "WR Ace", Position: models.PositionWR, ProjectedPoints: 290},
	}
	league := recommendLeague(t, players)
	res := &rollout.Result{
		RunID:      "run-3",
		Candidates: []models.Position{models.PositionQB, models.PositionWR},
		Scores: map[models.Position][]float64{
			models.PositionQB: {1000},
			models.PositionWR: {1000},
		},
		Iterations: 2,
	}

	rec, err := Aggregate(res, league)
	require.NoError(t, err)
	// Both pools hold one player; QB wins on canonical order.
	assert.Equal(t, models.PositionQB, rec.Position)
}

func TestAggregateZeroIterationsFallsBack(t *testing.T) {
	league := recommendLeague(t, defaultRecommendPlayers())
	res := &rollout.Result{
		RunID:      "run-4",
		Candidates: []models.Position{models.PositionQB, models.PositionRB},
		Scores:     map[models.Position][]float64{},
	}

	rec, err := Aggregate(res, league)
	require.NoError(t, err)
	assert.True(t, rec.UsedFallback)
	assert.Equal(t, 0, rec.Iterations)
	// Best projection league-wide.
	assert.Equal(t, "QB Ace", rec.Player.Name)
	assert.Equal(t, models.PositionQB, rec.Position)
}

func TestAggregateEmptyPool(t *testing.T) {
	league := recommendLeague(t, []models.Player{
		{Name: "Only One", Position: models.PositionRB, ProjectedPoints: 100},
	})
	require.NoError(t, league.CommitPick("Only One"))

	res := &rollout.Result{RunID: "run-5"}
	_, err := Aggregate(res, league)
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestRankTeams(t *testing.T) {
	league := recommendLeague(t, defaultRecommendPlayers())
	// Give Mine a clearly stronger roster.
	require.NoError(t, league.CommitPick("QB Ace"))    // Mine
	require.NoError(t, league.CommitPick("QB Backup")) // Theirs
	require.NoError(t, league.CommitPick("RB Second")) // Theirs (snake)
	require.NoError(t, league.CommitPick("RB Ace"))    // Mine

	sb, err := setback.Calibrate(nil, 2, models.DefaultStarterSlots(), setback.Options{
		Policy: "proportional", Threshold: 0.25, FloorFraction: 0.25, MaxAdjustment: 0.1,
	})
	require.NoError(t, err)

	standings := RankTeams(league, sb, 100, 42, 0.1)
	require.Len(t, standings, 2)

	assert.Equal(t, "Mine", standings[0].Team)
	assert.InDelta(t, 670, standings[0].AveragePoints, 1e-9)
	assert.InDelta(t, 600, standings[1].AveragePoints, 1e-9)

	// Whole-roster projections ride along for display.
	assert.InDelta(t, 670, standings[0].RosterPoints, 1e-9)
	assert.InDelta(t, 600, standings[1].RosterPoints, 1e-9)

	// First-place shares partition the evaluations.
	assert.InDelta(t, 1.0, standings[0].FirstShare+standings[1].FirstShare, 1e-9)
	assert.Equal(t, 1.0, standings[0].FirstShare)
}

func TestRankTeamsDeterministicPerSeed(t *testing.T) {
	league := recommendLeague(t, defaultRecommendPlayers())
	require.NoError(t, league.CommitPick("RB Ace"))
	require.NoError(t, league.CommitPick("QB Ace"))

	sb, err := setback.Calibrate([]models.HistoricalSeason{
		{Season: 2024, Name: "RB Old", Position: models.PositionRB, Projected: 300, Actual: ptr(90.0)},
		{Season: 2024, Name: "RB Older", Position: models.PositionRB, Projected: 280, Actual: ptr(285.0)},
	}, 2, models.DefaultStarterSlots(), setback.Options{
		Policy: "proportional", Threshold: 0.25, FloorFraction: 0.25, MaxAdjustment: 0.1,
	})
	require.NoError(t, err)

	first := RankTeams(league, sb, 50, 7, 0.1)
	again := RankTeams(league, sb, 50, 7, 0.1)
	assert.Equal(t, first, again)
}

func ptr(f float64) *float64 { return &f }
