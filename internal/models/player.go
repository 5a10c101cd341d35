package models

import "strings"

// Position identifies a fantasy roster position. Values are lowercase
// throughout the engine; ParsePosition normalizes external input.
type Position string

const (
	PositionQB  Position = "qb"
	PositionRB  Position = "rb"
	PositionWR  Position = "wr"
	PositionTE  Position = "te"
	PositionDST Position = "dst"
	PositionK   Position = "k"
)

// Positions returns all roster positions in canonical draft order.
// The order doubles as the deterministic tie-break order for
// recommendations.
func Positions() []Position {
	return []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionDST, PositionK}
}

// ParsePosition normalizes a position string ("QB", " Dst ", etc.).
// It returns false for anything outside the six roster positions.
func ParsePosition(s string) (Position, bool) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE, PositionDST, PositionK:
		return p, true
	}
	return "", false
}

// FlexEligible reports whether the position may fill a FLEX starter slot.
func (p Position) FlexEligible() bool {
	return p == PositionRB || p == PositionWR || p == PositionTE
}

// Player is a draftable player for the current season. Drafted is the
// only mutable field and flips false to true exactly once, via the
// draft state machine.
type Player struct {
	Name            string   `json:"name"`
	Position        Position `json:"position"`
	Team            string   `json:"team"`
	ProjectedPoints float64  `json:"projected_points"`
	Tier            string   `json:"tier"`
	Drafted         bool     `json:"drafted"`
}

// HistoricalPick is one observation of a past draft: which position was
// taken at a given overall pick number. Training data for the
// pick-probability model.
type HistoricalPick struct {
	Overall  int      `json:"overall"`
	Position Position `json:"position"`
}

// HistoricalSeason is one player-season of projected versus actual
// production, used to calibrate the setback model. Actual is nil for
// seasons that have not completed.
type HistoricalSeason struct {
	Season    int      `json:"season"`
	Name      string   `json:"name"`
	Position  Position `json:"position"`
	Team      string   `json:"team"`
	Projected float64  `json:"projected"`
	Actual    *float64 `json:"actual,omitempty"`
}

// Delta returns the relative projection miss (actual − projected) /
// projected, and whether the season is usable for calibration.
func (s HistoricalSeason) Delta() (float64, bool) {
	if s.Actual == nil || s.Projected <= 0 {
		return 0, false
	}
	return (*s.Actual - s.Projected) / s.Projected, true
}
