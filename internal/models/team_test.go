package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectedRosterPointsIncludesBench(t *testing.T) {
	team := Team{Name: "Mine"}
	team.AddToRoster(Player{Name: "QB One", Position: PositionQB, ProjectedPoints: 300})
	team.AddToRoster(Player{Name: "QB Two", Position: PositionQB, ProjectedPoints: 250})
	team.AddToRoster(Player{Name: "RB One", Position: PositionRB, ProjectedPoints: 200})

	// The bench QB counts here, unlike starter scoring.
	assert.InDelta(t, 750, team.ProjectedRosterPoints(), 1e-9)
	assert.Equal(t, 3, team.RosterCount())
	assert.Equal(t, 2, team.CountAtPosition(PositionQB))
}

func TestTeamCloneIsolatesRoster(t *testing.T) {
	team := Team{Name: "Mine"}
	team.AddToRoster(Player{Name: "QB One", Position: PositionQB, ProjectedPoints: 300})

	clone := team.Clone()
	clone.AddToRoster(Player{Name: "RB One", Position: PositionRB, ProjectedPoints: 200})

	assert.Equal(t, 1, team.RosterCount())
	assert.Equal(t, 2, clone.RosterCount())
}
