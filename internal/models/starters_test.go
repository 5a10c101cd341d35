package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillStartersTakesFlexFromBestLeftover(t *testing.T) {
	roster := []Player{
		{Name: "QB One", Position: PositionQB, ProjectedPoints: 350},
		{Name: "RB One", Position: PositionRB, ProjectedPoints: 300},
		{Name: "RB Two", Position: PositionRB, ProjectedPoints: 250},
		{Name: "RB Three", Position: PositionRB, ProjectedPoints: 200},
		{Name: "WR One", Position: PositionWR, ProjectedPoints: 280},
		{Name: "WR Two", Position: PositionWR, ProjectedPoints: 240},
		{Name: "WR Three", Position: PositionWR, ProjectedPoints: 190},
		{Name: "TE One", Position: PositionTE, ProjectedPoints: 180},
		{Name: "DST One", Position: PositionDST, ProjectedPoints: 110},
		{Name: "K One", Position: PositionK, ProjectedPoints: 130},
	}
	slots := DefaultStarterSlots()

	starters := FillStarters(roster, slots)
	require.Len(t, starters, slots.Total())

	names := make(map[string]bool, len(starters))
	for _, p := range starters {
		names[p.Name] = true
	}
	// RB Three (200) beats WR Three (190) for the flex slot.
	assert.True(t, names["RB Three"])
	assert.False(t, names["WR Three"])
}

func TestFillStartersShortRoster(t *testing.T) {
	roster := []Player{
		{Name: "QB One", Position: PositionQB, ProjectedPoints: 350},
		{Name: "RB One", Position: PositionRB, ProjectedPoints: 300},
	}

	starters := FillStarters(roster, DefaultStarterSlots())
	// RB One starts at RB; nothing is left for the flex or other slots.
	assert.Len(t, starters, 2)
}

func TestFillStartersDoesNotModifyRoster(t *testing.T) {
	roster := []Player{
		{Name: "WR One", Position: PositionWR, ProjectedPoints: 100},
		{Name: "WR Two", Position: PositionWR, ProjectedPoints: 200},
	}

	FillStarters(roster, DefaultStarterSlots())
	assert.Equal(t, "WR One", roster[0].Name)
	assert.Equal(t, "WR Two", roster[1].Name)
}

func TestStarterPoints(t *testing.T) {
	roster := []Player{
		{Name: "QB One", Position: PositionQB, ProjectedPoints: 300},
		{Name: "QB Two", Position: PositionQB, ProjectedPoints: 250},
		{Name: "RB One", Position: PositionRB, ProjectedPoints: 200},
	}
	// Second QB never starts and is not flex eligible.
	assert.Equal(t, 500.0, StarterPoints(roster, DefaultStarterSlots()))
}

func TestStarterSlotsTotal(t *testing.T) {
	assert.Equal(t, 9, DefaultStarterSlots().Total())
}
