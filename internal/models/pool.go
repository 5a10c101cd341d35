package models

import (
	"sort"
	"strings"
)

// Pool is the draftable player pool, partitioned by position. Position
// orderings and the name index are built once and shared between
// clones; only the drafted flags are copied per fork, which keeps
// rollout snapshots cheap.
type Pool struct {
	players []Player
	byPos   map[Position][]int // indices ordered by projection desc, name asc
	byName  map[string]int
}

// NewPool builds a pool from already-validated player records, ordering
// each position bucket by projected points (ties alphabetical) and
// assigning position tiers for setback calibration.
func NewPool(players []Player, teams int, slots StarterSlots) *Pool {
	p := &Pool{
		players: make([]Player, len(players)),
		byPos:   make(map[Position][]int),
		byName:  make(map[string]int, len(players)),
	}
	copy(p.players, players)

	for i := range p.players {
		pos := p.players[i].Position
		p.byPos[pos] = append(p.byPos[pos], i)
		p.byName[NormalizeName(p.players[i].Name)] = i
	}
	for pos, idx := range p.byPos {
		sort.Slice(idx, func(a, b int) bool {
			pa, pb := p.players[idx[a]], p.players[idx[b]]
			if pa.ProjectedPoints != pb.ProjectedPoints {
				return pa.ProjectedPoints > pb.ProjectedPoints
			}
			return pa.Name < pb.Name
		})
		for rank, i := range idx {
			p.players[i].Tier = TierFor(pos, rank, teams, slots)
		}
	}
	return p
}

// Clone returns an independent copy. The shared orderings are
// read-only, so only the player slice (holding drafted flags) is duplicated.
func (p *Pool) Clone() *Pool {
	clone := &Pool{
		players: make([]Player, len(p.players)),
		byPos:   p.byPos,
		byName:  p.byName,
	}
	copy(clone.players, p.players)
	return clone
}

// Len returns the total pool size, drafted players included.
func (p *Pool) Len() int { return len(p.players) }

// Find locates a player by name, tolerating case, surrounding
// whitespace, and punctuation differences.
func (p *Pool) Find(name string) (int, bool) {
	i, ok := p.byName[NormalizeName(name)]
	return i, ok
}

// Get returns the player at a pool index.
func (p *Pool) Get(i int) Player { return p.players[i] }

// MarkDrafted flips the drafted flag at a pool index. It reports false
// if the player was already drafted; the flag never flips back.
func (p *Pool) MarkDrafted(i int) bool {
	if p.players[i].Drafted {
		return false
	}
	p.players[i].Drafted = true
	return true
}

// Undrafted returns the undrafted players at a position, best
// projection first.
func (p *Pool) Undrafted(pos Position) []Player {
	var out []Player
	for _, i := range p.byPos[pos] {
		if !p.players[i].Drafted {
			out = append(out, p.players[i])
		}
	}
	return out
}

// UndraftedCount returns how many undrafted players remain at a position.
func (p *Pool) UndraftedCount(pos Position) int {
	n := 0
	for _, i := range p.byPos[pos] {
		if !p.players[i].Drafted {
			n++
		}
	}
	return n
}

// Remaining returns the total number of undrafted players.
func (p *Pool) Remaining() int {
	n := 0
	for i := range p.players {
		if !p.players[i].Drafted {
			n++
		}
	}
	return n
}

// BestAvailable returns the highest-projected undrafted player at a
// position.
func (p *Pool) BestAvailable(pos Position) (Player, bool) {
	for _, i := range p.byPos[pos] {
		if !p.players[i].Drafted {
			return p.players[i], true
		}
	}
	return Player{}, false
}

// BestAvailableOverall returns the highest-projected undrafted player
// across all positions, breaking ties alphabetically.
func (p *Pool) BestAvailableOverall() (Player, bool) {
	best := Player{}
	found := false
	for _, pos := range Positions() {
		candidate, ok := p.BestAvailable(pos)
		if !ok {
			continue
		}
		if !found || candidate.ProjectedPoints > best.ProjectedPoints ||
			(candidate.ProjectedPoints == best.ProjectedPoints && candidate.Name < best.Name) {
			best = candidate
			found = true
		}
	}
	return best, found
}

// NonEmptyPositions returns the positions that still have undrafted
// players, in canonical order.
func (p *Pool) NonEmptyPositions() []Position {
	var out []Position
	for _, pos := range Positions() {
		if p.UndraftedCount(pos) > 0 {
			out = append(out, pos)
		}
	}
	return out
}

// MaxProjected returns the top projection at a position over the whole
// pool, drafted players included. Used to cap randomized scores.
func (p *Pool) MaxProjected(pos Position) float64 {
	idx := p.byPos[pos]
	if len(idx) == 0 {
		return 0
	}
	return p.players[idx[0]].ProjectedPoints
}

// NormalizeName canonicalizes a player name for matching: lowercase,
// punctuation stripped, runs of whitespace collapsed.
func NormalizeName(name string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r == '.' || r == '\'' || r == ',':
			continue
		case r == ' ' || r == '\t':
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return b.String()
}
