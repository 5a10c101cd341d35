package models

import "sort"

// StarterSlots describes the starting lineup shape: how many starters
// each position fields, plus FLEX slots filled by the best remaining
// RB/WR/TE.
type StarterSlots struct {
	QB   int `json:"qb"`
	RB   int `json:"rb"`
	WR   int `json:"wr"`
	TE   int `json:"te"`
	Flex int `json:"flex"`
	DST  int `json:"dst"`
	K    int `json:"k"`
}

// DefaultStarterSlots matches a standard 1QB/2RB/2WR/1TE/1FLEX/1DST/1K league.
func DefaultStarterSlots() StarterSlots {
	return StarterSlots{QB: 1, RB: 2, WR: 2, TE: 1, Flex: 1, DST: 1, K: 1}
}

// At returns the starter count for a position.
func (s StarterSlots) At(pos Position) int {
	switch pos {
	case PositionQB:
		return s.QB
	case PositionRB:
		return s.RB
	case PositionWR:
		return s.WR
	case PositionTE:
		return s.TE
	case PositionDST:
		return s.DST
	case PositionK:
		return s.K
	}
	return 0
}

// Total returns the size of a full starting lineup.
func (s StarterSlots) Total() int {
	return s.QB + s.RB + s.WR + s.TE + s.Flex + s.DST + s.K
}

// FillStarters selects the best legal starting lineup from a roster:
// the top players by projected points at each position up to its slot
// count, then the best remaining flex-eligible players for the FLEX
// slots. The input roster is not modified.
func FillStarters(roster []Player, slots StarterSlots) []Player {
	byPos := make(map[Position][]Player)
	for _, p := range roster {
		byPos[p.Position] = append(byPos[p.Position], p)
	}
	for pos := range byPos {
		sortByProjection(byPos[pos])
	}

	starters := make([]Player, 0, slots.Total())
	used := make(map[string]bool)
	for _, pos := range Positions() {
		n := slots.At(pos)
		players := byPos[pos]
		if n > len(players) {
			n = len(players)
		}
		for _, p := range players[:n] {
			starters = append(starters, p)
			used[p.Name] = true
		}
	}

	// Flex takes the best leftover RB/WR/TE.
	var flexPool []Player
	for _, p := range roster {
		if p.Position.FlexEligible() && !used[p.Name] {
			flexPool = append(flexPool, p)
		}
	}
	sortByProjection(flexPool)
	n := slots.Flex
	if n > len(flexPool) {
		n = len(flexPool)
	}
	starters = append(starters, flexPool[:n]...)

	return starters
}

// StarterPoints sums projected points across the best legal starting
// lineup for the roster.
func StarterPoints(roster []Player, slots StarterSlots) float64 {
	total := 0.0
	for _, p := range FillStarters(roster, slots) {
		total += p.ProjectedPoints
	}
	return total
}

// sortByProjection orders players by projected points descending,
// breaking ties alphabetically by name.
func sortByProjection(players []Player) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].ProjectedPoints != players[j].ProjectedPoints {
			return players[i].ProjectedPoints > players[j].ProjectedPoints
		}
		return players[i].Name < players[j].Name
	})
}
