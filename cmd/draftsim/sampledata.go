package main

import (
	"fmt"
	"math/rand"

	"github.com/jstittsworth/draft-assistant/internal/draft"
	"github.com/jstittsworth/draft-assistant/internal/models"
)

// The bundled dataset is synthetic but deterministic: the same seed
// always produces the same players, pick history and season history, so
// command output is reproducible across runs given the same flags.
const sampleDataSeed = 20240901

var nflTeams = []string{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE",
	"DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
	"LAC", "LAR", "LV", "MIA", "MIN", "NE", "NO", "NYG",
	"NYJ", "PHI", "PIT", "SEA", "SF", "TB", "TEN", "WAS",
}

var firstNames = []string{
	"Marcus", "Devonte", "Tyler", "Jalen", "Chris", "Aaron", "Zach",
	"Darius", "Kendall", "Malik", "Jordan", "Trey", "Cameron", "Isaiah",
	"Brandon", "Elijah", "Nico", "Rashad", "Quentin", "Damien",
}

var lastNames = []string{
	"Harrison", "Caldwell", "Bennett", "Whitfield", "Okafor", "Maddox",
	"Rivers", "Sloan", "Pruitt", "Vance", "Delgado", "Hawthorne",
	"Kirkland", "Mercer", "Navarro", "Osei", "Pennington", "Quarles",
	"Redmond", "Sutherland", "Tatum", "Underwood", "Villanueva",
	"Wexler", "Youngblood", "Zimmerman", "Abernathy", "Boseman",
	"Crenshaw", "Donahue",
}

// positionDepth controls pool size and the projection curve per
// position: top is the best projection and floor the worst, with the
// rest spread on a decaying curve between them.
var positionDepth = []struct {
	pos   models.Position
	count int
	top   float64
	floor float64
}{
	{models.PositionQB, 24, 380, 180},
	{models.PositionRB, 50, 320, 60},
	{models.PositionWR, 60, 310, 55},
	{models.PositionTE, 24, 220, 50},
	{models.PositionDST, 16, 130, 70},
	{models.PositionK, 16, 150, 95},
}

func samplePlayers() []models.Player {
	rng := rand.New(rand.NewSource(sampleDataSeed))
	var players []models.Player
	used := make(map[string]bool)
	for _, d := range positionDepth {
		for i := 0; i < d.count; i++ {
			name := pickName(rng, used)
			// Decay toward the floor with a little per-player jitter.
			frac := float64(i) / float64(d.count-1)
			proj := d.top - (d.top-d.floor)*frac*frac
			proj += rng.Float64()*4 - 2
			players = append(players, models.Player{
				Name:            name,
				Position:        d.pos,
				Team:            nflTeams[rng.Intn(len(nflTeams))],
				ProjectedPoints: proj,
			})
		}
	}
	return players
}

func pickName(rng *rand.Rand, used map[string]bool) string {
	for {
		name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		if !used[name] {
			used[name] = true
			return name
		}
		name = fmt.Sprintf("%s %s Jr.", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))])
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

// samplePicks fabricates five seasons of draft history with the usual
// shape: running backs and receivers dominate the early rounds,
// quarterbacks and tight ends fill the middle, kickers and defenses go
// late.
func samplePicks(teams, rounds int) []models.HistoricalPick {
	rng := rand.New(rand.NewSource(sampleDataSeed + 1))
	total := teams * rounds
	var picks []models.HistoricalPick
	for season := 0; season < 5; season++ {
		for overall := 1; overall <= total; overall++ {
			picks = append(picks, models.HistoricalPick{
				Overall:  overall,
				Position: draftedPosition(rng, overall, total),
			})
		}
	}
	return picks
}

func draftedPosition(rng *rand.Rand, overall, total int) models.Position {
	stage := float64(overall) / float64(total)
	r := rng.Float64()
	switch {
	case stage < 0.2:
		if r < 0.45 {
			return models.PositionRB
		}
		if r < 0.85 {
			return models.PositionWR
		}
		if r < 0.95 {
			return models.PositionTE
		}
		return models.PositionQB
	case stage < 0.55:
		if r < 0.3 {
			return models.PositionRB
		}
		if r < 0.6 {
			return models.PositionWR
		}
		if r < 0.8 {
			return models.PositionQB
		}
		return models.PositionTE
	case stage < 0.8:
		if r < 0.25 {
			return models.PositionQB
		}
		if r < 0.45 {
			return models.PositionTE
		}
		if r < 0.65 {
			return models.PositionRB
		}
		if r < 0.85 {
			return models.PositionWR
		}
		if r < 0.93 {
			return models.PositionDST
		}
		return models.PositionK
	default:
		if r < 0.3 {
			return models.PositionDST
		}
		if r < 0.6 {
			return models.PositionK
		}
		if r < 0.75 {
			return models.PositionRB
		}
		if r < 0.9 {
			return models.PositionWR
		}
		return models.PositionQB
	}
}

// sampleSeasons fabricates three seasons of projected-versus-actual
// history for every sample player. Most seasons land near projection;
// roughly one in five misses badly, which is what gives the setback
// model a tail to calibrate against.
func sampleSeasons() []models.HistoricalSeason {
	rng := rand.New(rand.NewSource(sampleDataSeed + 2))
	players := samplePlayers()
	var seasons []models.HistoricalSeason
	for year := 2023; year <= 2025; year++ {
		for _, p := range players {
			ratio := 1 + rng.NormFloat64()*0.12
			if rng.Float64() < 0.2 {
				ratio = 0.45 + rng.Float64()*0.25
			}
			if ratio < 0 {
				ratio = 0
			}
			actual := p.ProjectedPoints * ratio
			seasons = append(seasons, models.HistoricalSeason{
				Season:    year,
				Name:      p.Name,
				Position:  p.Position,
				Team:      p.Team,
				Projected: p.ProjectedPoints,
				Actual:    &actual,
			})
		}
	}
	return seasons
}

var ownerNames = []string{
	"Sam", "Alex", "Riley", "Morgan", "Casey", "Taylor",
	"Jamie", "Drew", "Quinn", "Avery", "Reese", "Parker",
	"Skyler", "Dana", "Jesse", "Robin",
}

func sampleTeams(count, simulatorSlot int) []draft.TeamSeed {
	seeds := make([]draft.TeamSeed, count)
	for i := 0; i < count; i++ {
		owner := ownerNames[i%len(ownerNames)]
		seeds[i] = draft.TeamSeed{
			Name:      fmt.Sprintf("Team %s", owner),
			Owner:     owner,
			Order:     i + 1,
			Simulator: i+1 == simulatorSlot,
		}
	}
	return seeds
}
