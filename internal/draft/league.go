package draft

import (
	"fmt"
	"sort"

	"github.com/jstittsworth/draft-assistant/internal/models"
	"github.com/jstittsworth/draft-assistant/pkg/config"
)

// TeamSeed is the validated team record the league is built from.
// Order is the team's slot in the first-round draft order.
type TeamSeed struct {
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	Order     int    `json:"order"`
	Simulator bool   `json:"simulator"`
}

// Options controls league shape at construction time.
type Options struct {
	RosterSlots int                 // picks per team (number of rounds)
	Slots       models.StarterSlots // starting lineup shape
	Snake       bool                // reverse team order on odd rounds
}

// League is the authoritative draft state: teams in first-round order,
// the player pool, and the current turn. It is mutated only by
// CommitPick; simulations work on Clone snapshots.
type League struct {
	Teams       []models.Team
	Pool        *models.Pool
	Slots       models.StarterSlots
	RosterSlots int
	Snake       bool
	CurrentTurn int

	simulatorIndex int
}

// NewLeague builds a league from team seeds and the draft-year player
// pool. Seeds are sorted into draft order; exactly one team must be the
// simulator's.
func NewLeague(seeds []TeamSeed, players []models.Player, opts Options) (*League, error) {
	if len(seeds) < 2 {
		return nil, &config.ConfigurationError{Field: "teams", Reason: fmt.Sprintf("need at least 2 teams, got %d", len(seeds))}
	}
	if opts.RosterSlots < 1 {
		return nil, &config.ConfigurationError{Field: "roster_slots", Reason: fmt.Sprintf("need at least 1 roster slot, got %d", opts.RosterSlots)}
	}
	if len(players) == 0 {
		return nil, &config.ConfigurationError{Field: "players", Reason: "empty player pool"}
	}

	ordered := make([]TeamSeed, len(seeds))
	copy(ordered, seeds)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	l := &League{
		Teams:          make([]models.Team, len(ordered)),
		Slots:          opts.Slots,
		RosterSlots:    opts.RosterSlots,
		Snake:          opts.Snake,
		simulatorIndex: -1,
	}
	for i, seed := range ordered {
		l.Teams[i] = models.Team{Name: seed.Name, Owner: seed.Owner, Simulator: seed.Simulator}
		if seed.Simulator {
			if l.simulatorIndex >= 0 {
				return nil, &config.ConfigurationError{Field: "teams", Reason: "more than one simulator team"}
			}
			l.simulatorIndex = i
		}
	}
	if l.simulatorIndex < 0 {
		return nil, &config.ConfigurationError{Field: "teams", Reason: "no simulator team"}
	}

	l.Pool = models.NewPool(players, len(l.Teams), opts.Slots)
	return l, nil
}

// TotalPicks returns the number of picks in a complete draft.
func (l *League) TotalPicks() int {
	return len(l.Teams) * l.RosterSlots
}

// Round returns the 0-based round of the current turn.
func (l *League) Round() int {
	return l.CurrentTurn / len(l.Teams)
}

// Complete reports whether no further picks can be made.
func (l *League) Complete() bool {
	return l.CurrentTurn >= l.TotalPicks() || l.Pool.Remaining() == 0
}

// TeamOnClock returns the index of the team holding the current pick,
// applying snake order: the fixed first-round permutation, reversed on
// odd rounds.
func (l *League) TeamOnClock() int {
	n := len(l.Teams)
	pickInRound := l.CurrentTurn % n
	if l.Snake && l.Round()%2 == 1 {
		return n - 1 - pickInRound
	}
	return pickInRound
}

// NextTeam returns the team holding the current pick.
func (l *League) NextTeam() *models.Team {
	return &l.Teams[l.TeamOnClock()]
}

// SimulatorIndex returns the index of the managed team.
func (l *League) SimulatorIndex() int { return l.simulatorIndex }

// SimulatorTeam returns the managed team.
func (l *League) SimulatorTeam() *models.Team {
	return &l.Teams[l.simulatorIndex]
}

// IsSimulatorTurn reports whether the managed team is on the clock.
func (l *League) IsSimulatorTurn() bool {
	return l.TeamOnClock() == l.simulatorIndex
}

// CommitPick drafts a player by name for the team on the clock. Name
// matching tolerates case and punctuation differences. On any error the
// league state is unchanged.
func (l *League) CommitPick(name string) error {
	if l.Complete() {
		return &StateError{Reason: "draft is complete"}
	}
	i, ok := l.Pool.Find(name)
	if !ok {
		return &NotFoundError{Name: name}
	}
	player := l.Pool.Get(i)
	if player.Drafted {
		return &StateError{Reason: fmt.Sprintf("%s has already been drafted", player.Name)}
	}
	team := l.NextTeam()
	if team.RosterCount() >= l.RosterSlots {
		return &StateError{Reason: fmt.Sprintf("roster full for %s", team.Name)}
	}

	l.Pool.MarkDrafted(i)
	drafted := l.Pool.Get(i)
	team.AddToRoster(drafted)
	l.CurrentTurn++
	return nil
}

// Clone returns a deep snapshot of the league for rollouts. Mutating
// the clone never touches the authoritative state.
func (l *League) Clone() *League {
	clone := &League{
		Teams:          make([]models.Team, len(l.Teams)),
		Pool:           l.Pool.Clone(),
		Slots:          l.Slots,
		RosterSlots:    l.RosterSlots,
		Snake:          l.Snake,
		CurrentTurn:    l.CurrentTurn,
		simulatorIndex: l.simulatorIndex,
	}
	for i := range l.Teams {
		clone.Teams[i] = l.Teams[i].Clone()
	}
	return clone
}
