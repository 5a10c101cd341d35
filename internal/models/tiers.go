package models

import "fmt"

// tierMultipliers are the cut lines for tiers 1 and 2, expressed as
// multiples of (starter slots at the position × team count). Players
// ranked past the second cut fall into tier 3. DST and K are untiered:
// they are streamable enough that projection misses do not cluster by
// rank.
var tierMultipliers = map[Position][2]float64{
	PositionQB: {1.0, 2.5},
	PositionRB: {0.5, 2.5},
	PositionWR: {0.5, 2.5},
	PositionTE: {1.0, 2.0},
}

// TierBreaks returns the last rank (0-based, exclusive) of tiers 1 and
// 2 for a position, or ok=false for untiered positions.
func TierBreaks(pos Position, teams int, slots StarterSlots) (t1, t2 int, ok bool) {
	m, ok := tierMultipliers[pos]
	if !ok {
		return 0, 0, false
	}
	base := float64(slots.At(pos) * teams)
	return int(m[0] * base), int(m[1] * base), true
}

// TierFor returns the tier label for a player ranked rank-th (0-based,
// by projected points descending) within its position. Untiered
// positions use the bare position name.
func TierFor(pos Position, rank, teams int, slots StarterSlots) string {
	t1, t2, ok := TierBreaks(pos, teams, slots)
	if !ok {
		return string(pos)
	}
	switch {
	case rank < t1:
		return fmt.Sprintf("%s1", pos)
	case rank < t2:
		return fmt.Sprintf("%s2", pos)
	default:
		return fmt.Sprintf("%s3", pos)
	}
}
