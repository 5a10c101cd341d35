package pickmodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-assistant/internal/models"
)

// earlyLatePicks is a clean training set: RBs dominate the first half
// of the draft, QBs the second.
func earlyLatePicks() []models.HistoricalPick {
	var picks []models.HistoricalPick
	for season := 0; season < 3; season++ {
		for overall := 1; overall <= 60; overall++ {
			pos := models.PositionRB
			if overall > 30 {
				pos = models.PositionQB
			}
			picks = append(picks, models.HistoricalPick{Overall: overall, Position: pos})
		}
	}
	return picks
}

func TestTrainRejectsBadData(t *testing.T) {
	tests := []struct {
		name  string
		picks []models.HistoricalPick
	}{
		{name: "empty", picks: nil},
		{
			name: "single position",
			picks: []models.HistoricalPick{
				{Overall: 1, Position: models.PositionRB},
				{Overall: 2, Position: models.PositionRB},
			},
		},
		{
			name: "unknown position",
			picks: []models.HistoricalPick{
				{Overall: 1, Position: models.PositionRB},
				{Overall: 2, Position: models.Position("lb")},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Train(tt.picks)
			require.Error(t, err)
			var fitErr *ModelFitError
			assert.ErrorAs(t, err, &fitErr)
		})
	}
}

func TestTrainLearnsPickTendency(t *testing.T) {
	m, err := Train(earlyLatePicks())
	require.NoError(t, err)

	// RB should dominate early, QB late.
	assert.Greater(t, m.Score(models.PositionRB, 5), m.Score(models.PositionQB, 5))
	assert.Greater(t, m.Score(models.PositionQB, 55), m.Score(models.PositionRB, 55))
}

// Interleaved positions give the optimizer a shallow loss surface where
// its line search can stall at the minimum; the fit must still succeed.
func TestTrainFitsInterleavedPositions(t *testing.T) {
	var picks []models.HistoricalPick
	for overall := 1; overall <= 40; overall++ {
		pos := models.PositionRB
		switch overall % 4 {
		case 0:
			pos = models.PositionQB
		case 1:
			pos = models.PositionWR
		case 2:
			pos = models.PositionTE
		}
		picks = append(picks, models.HistoricalPick{Overall: overall, Position: pos})
	}

	m, err := Train(picks)
	require.NoError(t, err)

	probs := m.Probabilities(10, models.Positions()[:4])
	total := 0.0
	for _, p := range probs {
		require.False(t, math.IsNaN(p))
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-6)
}

func TestScoreUntrainedPositionIsZero(t *testing.T) {
	m, err := Train(earlyLatePicks())
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.Score(models.PositionK, 10))
}

func TestProbabilitiesSumToOne(t *testing.T) {
	m, err := Train(earlyLatePicks())
	require.NoError(t, err)

	for _, pick := range []int{1, 15, 30, 45, 60, 200} {
		probs := m.Probabilities(pick, []models.Position{models.PositionQB, models.PositionRB})
		total := 0.0
		for _, p := range probs {
			assert.GreaterOrEqual(t, p, 0.0)
			total += p
		}
		assert.InDelta(t, 1.0, total, 1e-6, "pick %d", pick)
	}
}

func TestProbabilitiesUniformWhenAllUntrained(t *testing.T) {
	m, err := Train(earlyLatePicks())
	require.NoError(t, err)

	probs := m.Probabilities(10, []models.Position{models.PositionDST, models.PositionK})
	assert.InDelta(t, 0.5, probs[models.PositionDST], 1e-9)
	assert.InDelta(t, 0.5, probs[models.PositionK], 1e-9)
}
