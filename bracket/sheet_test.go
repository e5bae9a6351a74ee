package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullSheet(t *testing.T) *Sheet {
	t.Helper()
	s := NewSheet(testField())
	sequence := []struct {
		slot   Slot
		teamID string
	}{
		{slotOf(AFC, RoundWildCard, 1), "A2"},
		{slotOf(AFC, RoundWildCard, 2), "A3"},
		{slotOf(AFC, RoundWildCard, 3), "A4"},
		{slotOf(AFC, RoundDivisional, 1), "A1"},
		{slotOf(AFC, RoundDivisional, 2), "A2"},
		{slotOf(AFC, RoundConference, 1), "A1"},
		{slotOf(NFC, RoundWildCard, 1), "N2"},
		{slotOf(NFC, RoundWildCard, 2), "N3"},
		{slotOf(NFC, RoundWildCard, 3), "N4"},
		{slotOf(NFC, RoundDivisional, 1), "N1"},
		{slotOf(NFC, RoundDivisional, 2), "N2"},
		{slotOf(NFC, RoundConference, 1), "N1"},
		{SuperBowlSlot, "A1"},
	}
	for _, step := range sequence {
		if err := s.Set(step.slot, step.teamID); err != nil {
			t.Fatalf("set %s = %s: %v", step.slot, step.teamID, err)
		}
	}
	assert.Equal(t, 13, s.Len())
	return s
}

func TestSetRejectsInvalidSlots(t *testing.T) {
	s := NewSheet(testField())

	invalid := []Slot{
		{Conference: AFC, Round: RoundSuperBowl, Game: 1},
		{Conference: SB, Round: RoundWildCard, Game: 1},
		{Conference: SB, Round: RoundSuperBowl, Game: 2},
		{Conference: NFC, Round: RoundWildCard, Game: 4},
		{Conference: AFC, Round: RoundDivisional, Game: 0},
		{Conference: "XFC", Round: RoundWildCard, Game: 1},
		{Conference: AFC, Round: 5, Game: 1},
	}
	for _, slot := range invalid {
		err := s.Set(slot, "A2")
		assert.ErrorIs(t, err, ErrInvalidSlot, "slot %s", slot)
	}
	assert.Equal(t, 0, s.Len())
}

func TestSetRejectsNonParticipants(t *testing.T) {
	s := NewSheet(testField())

	// A1 has a bye and is not in any wild card matchup.
	assert.ErrorIs(t, s.Set(slotOf(AFC, RoundWildCard, 1), "A1"), ErrNotParticipant)
	// N3 plays game 2, not game 1.
	assert.ErrorIs(t, s.Set(slotOf(NFC, RoundWildCard, 1), "N3"), ErrNotParticipant)
	// Divisional participants are not derivable before all three wild card picks.
	assert.ErrorIs(t, s.Set(slotOf(AFC, RoundDivisional, 2), "A2"), ErrNotParticipant)
}

func TestWildCardChangeCascades(t *testing.T) {
	s := fullSheet(t)

	// Flip one AFC wild card pick: AFC rounds 2-3 and the Super Bowl go,
	// NFC picks survive untouched.
	assert.NoError(t, s.Set(slotOf(AFC, RoundWildCard, 1), "A7"))

	_, ok := s.Get(slotOf(AFC, RoundDivisional, 1))
	assert.False(t, ok)
	_, ok = s.Get(slotOf(AFC, RoundDivisional, 2))
	assert.False(t, ok)
	_, ok = s.Get(slotOf(AFC, RoundConference, 1))
	assert.False(t, ok)
	_, ok = s.Get(SuperBowlSlot)
	assert.False(t, ok)

	_, ok = s.Get(slotOf(NFC, RoundConference, 1))
	assert.True(t, ok)
	assert.Equal(t, 9, s.Len())
}

func TestDivisionalChangeCascades(t *testing.T) {
	s := fullSheet(t)

	assert.NoError(t, s.Set(slotOf(NFC, RoundDivisional, 1), "N4"))

	_, ok := s.Get(slotOf(NFC, RoundConference, 1))
	assert.False(t, ok)
	_, ok = s.Get(SuperBowlSlot)
	assert.False(t, ok)

	// Same conference round 1 and the whole AFC side are untouched.
	_, ok = s.Get(slotOf(NFC, RoundWildCard, 1))
	assert.True(t, ok)
	_, ok = s.Get(slotOf(AFC, RoundConference, 1))
	assert.True(t, ok)
}

func TestChampionshipChangeClearsOnlySuperBowl(t *testing.T) {
	s := fullSheet(t)

	assert.NoError(t, s.Set(slotOf(AFC, RoundConference, 1), "A2"))

	_, ok := s.Get(SuperBowlSlot)
	assert.False(t, ok)
	assert.Equal(t, 12, s.Len())
}

func TestClearingAPickCascadesToo(t *testing.T) {
	s := fullSheet(t)

	// Deselecting is a change like any other: downstream goes.
	assert.NoError(t, s.Set(slotOf(AFC, RoundWildCard, 2), ""))

	_, ok := s.Get(slotOf(AFC, RoundWildCard, 2))
	assert.False(t, ok)
	_, ok = s.Get(slotOf(AFC, RoundDivisional, 1))
	assert.False(t, ok)
	_, ok = s.Get(SuperBowlSlot)
	assert.False(t, ok)
}

func TestSuperBowlPickHasNoDownstream(t *testing.T) {
	s := fullSheet(t)

	assert.NoError(t, s.Set(SuperBowlSlot, "N1"))
	assert.Equal(t, 13, s.Len())
}

func TestResetClearsEverything(t *testing.T) {
	s := fullSheet(t)
	s.Reset()
	assert.Equal(t, 0, s.Len())
}

func TestLoadAppliesSnapshotInRoundOrder(t *testing.T) {
	want := fullSheet(t).Picks()

	s := NewSheet(testField())
	s.Load(want)
	assert.Equal(t, want, s.Picks())
}

func TestLoadDropsStalePicks(t *testing.T) {
	s := NewSheet(testField())
	s.Load(PickSet{
		slotOf(AFC, RoundWildCard, 1): "A2",
		// Divisional pick names a team that is no longer derivable there.
		slotOf(AFC, RoundDivisional, 1): "A5",
	})

	_, ok := s.Get(slotOf(AFC, RoundWildCard, 1))
	assert.True(t, ok)
	_, ok = s.Get(slotOf(AFC, RoundDivisional, 1))
	assert.False(t, ok)
}

func TestPicksReturnsACopy(t *testing.T) {
	s := fullSheet(t)
	snapshot := s.Picks()
	delete(snapshot, SuperBowlSlot)
	_, ok := s.Get(SuperBowlSlot)
	assert.True(t, ok)
}
