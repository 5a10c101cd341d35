package draft

import "fmt"

// NotFoundError reports a pick attempt for a name with no match in the
// player pool. The league state is unchanged; callers re-prompt.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("player %q not found in pool", e.Name)
}

// StateError reports a pick that is illegal in the current draft state:
// drafting an already-drafted player, picking for a full roster, or
// picking after the draft has completed. The league state is unchanged.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid draft state: %s", e.Reason)
}
