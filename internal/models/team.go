package models

// Team is one franchise in the league. Simulator marks the managed
// team that receives recommendations. Roster holds drafted players in
// pick order.
type Team struct {
	Name      string   `json:"name"`
	Owner     string   `json:"owner"`
	Simulator bool     `json:"simulator"`
	Roster    []Player `json:"roster"`
}

// AddToRoster appends a drafted player to the roster.
func (t *Team) AddToRoster(p Player) {
	t.Roster = append(t.Roster, p)
}

// RosterCount returns the number of players drafted so far.
func (t *Team) RosterCount() int {
	return len(t.Roster)
}

// CountAtPosition returns how many rostered players play the position.
func (t *Team) CountAtPosition(pos Position) int {
	n := 0
	for _, p := range t.Roster {
		if p.Position == pos {
			n++
		}
	}
	return n
}

// ProjectedRosterPoints sums projected points across the whole roster,
// bench included.
func (t *Team) ProjectedRosterPoints() float64 {
	total := 0.0
	for _, p := range t.Roster {
		total += p.ProjectedPoints
	}
	return total
}

// Clone returns a deep copy of the team.
func (t *Team) Clone() Team {
	clone := *t
	clone.Roster = make([]Player, len(t.Roster))
	copy(clone.Roster, t.Roster)
	return clone
}
