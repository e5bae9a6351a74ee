package bracket

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidSlot    = errors.New("invalid slot address")
	ErrNotParticipant = errors.New("team is not a participant of this matchup")
)

// Sheet is one user's in-memory pick sheet: a slot-indexed map with the
// cascade-invalidation rules applied on every mutation. It is not safe for
// concurrent mutation; a bracket view owns exactly one sheet.
type Sheet struct {
	field Field
	picks PickSet
}

// NewSheet returns an empty sheet over the given field.
func NewSheet(field Field) *Sheet {
	return &Sheet{field: field, picks: PickSet{}}
}

// Load replaces the sheet contents with a saved snapshot, applying picks in
// round order so cascade rules cannot wipe later rounds of the same snapshot.
// Picks that no longer name a derivable participant are dropped, not errored:
// a stale snapshot degrades instead of failing the whole load.
func (s *Sheet) Load(picks PickSet) {
	s.picks = PickSet{}
	slots := make([]Slot, 0, len(picks))
	for slot := range picks {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		if a.Conference != b.Conference {
			return a.Conference < b.Conference
		}
		return a.Game < b.Game
	})
	for _, slot := range slots {
		_ = s.Set(slot, picks[slot])
	}
}

// Get returns the picked team ID for a slot, if picked.
func (s *Sheet) Get(slot Slot) (string, bool) {
	teamID, ok := s.picks[slot]
	return teamID, ok
}

// Set upserts the pick for a slot, or clears it when teamID is empty, then
// cascades: any change to a slot invalidates every downstream slot, whether
// or not the new pick would have kept them structurally valid.
func (s *Sheet) Set(slot Slot, teamID string) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidSlot, slot)
	}
	if teamID != "" && s.field != nil {
		if !MatchupFor(s.field, s.picks, slot).Contains(teamID) {
			return fmt.Errorf("%w: %s in %s", ErrNotParticipant, teamID, slot)
		}
	}

	if teamID == "" {
		delete(s.picks, slot)
	} else {
		s.picks[slot] = teamID
	}
	s.clearDownstream(slot)
	return nil
}

// clearDownstream applies the dependency rule table: a round-1 change clears
// rounds 2-3 of that conference plus the Super Bowl, round 2 clears round 3
// plus the Super Bowl, round 3 clears only the Super Bowl. The Super Bowl
// pick has no downstream.
func (s *Sheet) clearDownstream(changed Slot) {
	if changed.Conference == SB {
		return
	}
	for slot := range s.picks {
		if slot.Conference == changed.Conference && slot.Round > changed.Round {
			delete(s.picks, slot)
		}
	}
	delete(s.picks, SuperBowlSlot)
}

// Reset clears every pick ("start over").
func (s *Sheet) Reset() {
	s.picks = PickSet{}
}

// Len returns the number of picks currently on the sheet.
func (s *Sheet) Len() int {
	return len(s.picks)
}

// Picks returns a copy of the sheet's current pick set.
func (s *Sheet) Picks() PickSet {
	out := make(PickSet, len(s.picks))
	for slot, teamID := range s.picks {
		out[slot] = teamID
	}
	return out
}
