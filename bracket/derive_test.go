package bracket

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testField builds a complete two-conference field with synthetic team IDs
// of the form "A1".."A7" and "N1".."N7".
func testField() Field {
	field := Field{AFC: {}, NFC: {}}
	for _, conf := range []Conference{AFC, NFC} {
		prefix := "A"
		if conf == NFC {
			prefix = "N"
		}
		for seed := 1; seed <= 7; seed++ {
			id := fmt.Sprintf("%s%d", prefix, seed)
			field[conf][seed] = Team{
				TeamID:       id,
				Name:         "Team " + id,
				Abbreviation: id,
				Seed:         seed,
				Conference:   conf,
			}
		}
	}
	return field
}

func slotOf(conf Conference, round Round, game int) Slot {
	return Slot{Conference: conf, Round: round, Game: game}
}

func TestWildCardMatchupsFixedBySeed(t *testing.T) {
	field := testField()

	// Picks must not influence wild card pairings.
	picks := PickSet{
		slotOf(AFC, RoundWildCard, 1): "A7",
		slotOf(AFC, RoundWildCard, 2): "A3",
	}

	for _, conf := range []Conference{AFC, NFC} {
		b := DeriveBracket(field, picks)
		cb := b.AFC
		if conf == NFC {
			cb = b.NFC
		}

		wantSeeds := [3][2]int{{2, 7}, {3, 6}, {4, 5}}
		for game, want := range wantSeeds {
			m := cb.WildCard[game]
			assert.NotNil(t, m[0])
			assert.NotNil(t, m[1])
			assert.Equal(t, want[0], m[0].Seed, "%s wild card game %d home seed", conf, game+1)
			assert.Equal(t, want[1], m[1].Seed, "%s wild card game %d away seed", conf, game+1)
		}
	}
}

func TestDivisionalPlaceholdersUntilAllWildCardPicks(t *testing.T) {
	field := testField()

	picks := PickSet{
		slotOf(AFC, RoundWildCard, 1): "A2",
		slotOf(AFC, RoundWildCard, 2): "A3",
	}

	b := DeriveBracket(field, picks)

	// Bye team shows as soon as the field is known; everything else is TBD.
	assert.NotNil(t, b.AFC.Divisional[0][0])
	assert.Equal(t, 1, b.AFC.Divisional[0][0].Seed)
	assert.Nil(t, b.AFC.Divisional[0][1])
	assert.Nil(t, b.AFC.Divisional[1][0])
	assert.Nil(t, b.AFC.Divisional[1][1])
}

func TestDivisionalReseeding(t *testing.T) {
	field := testField()

	// Winners seeded 2, 6, 4: the 6 seed is the worst survivor and draws
	// the bye team; the other game is displayed best seed first.
	picks := PickSet{
		slotOf(AFC, RoundWildCard, 1): "A2",
		slotOf(AFC, RoundWildCard, 2): "A6",
		slotOf(AFC, RoundWildCard, 3): "A4",
	}

	b := DeriveBracket(field, picks)

	assert.Equal(t, "A1", b.AFC.Divisional[0][0].TeamID)
	assert.Equal(t, "A6", b.AFC.Divisional[0][1].TeamID)
	assert.Equal(t, "A2", b.AFC.Divisional[1][0].TeamID)
	assert.Equal(t, "A4", b.AFC.Divisional[1][1].TeamID)
}

func TestDivisionalAllUpsets(t *testing.T) {
	field := testField()

	// 5, 6 and 7 all advance: 7 draws the bye, 5 and 6 meet.
	picks := PickSet{
		slotOf(NFC, RoundWildCard, 1): "N7",
		slotOf(NFC, RoundWildCard, 2): "N6",
		slotOf(NFC, RoundWildCard, 3): "N5",
	}

	b := DeriveBracket(field, picks)

	assert.Equal(t, "N1", b.NFC.Divisional[0][0].TeamID)
	assert.Equal(t, "N7", b.NFC.Divisional[0][1].TeamID)
	assert.Equal(t, "N5", b.NFC.Divisional[1][0].TeamID)
	assert.Equal(t, "N6", b.NFC.Divisional[1][1].TeamID)
}

func TestChampionshipAndSuperBowlDerivation(t *testing.T) {
	field := testField()

	picks := PickSet{
		slotOf(AFC, RoundWildCard, 1):   "A2",
		slotOf(AFC, RoundWildCard, 2):   "A3",
		slotOf(AFC, RoundWildCard, 3):   "A4",
		slotOf(AFC, RoundDivisional, 1): "A1",
		slotOf(AFC, RoundDivisional, 2): "A2",
		slotOf(AFC, RoundConference, 1): "A1",
		slotOf(NFC, RoundWildCard, 1):   "N2",
		slotOf(NFC, RoundWildCard, 2):   "N3",
		slotOf(NFC, RoundWildCard, 3):   "N4",
		slotOf(NFC, RoundDivisional, 1): "N4",
		slotOf(NFC, RoundDivisional, 2): "N3",
		slotOf(NFC, RoundConference, 1): "N3",
	}

	b := DeriveBracket(field, picks)

	// Championship pairs the divisional picks in game order, no re-seeding.
	assert.Equal(t, "A1", b.AFC.Championship[0].TeamID)
	assert.Equal(t, "A2", b.AFC.Championship[1].TeamID)
	assert.Equal(t, "N4", b.NFC.Championship[0].TeamID)
	assert.Equal(t, "N3", b.NFC.Championship[1].TeamID)

	// NFC champion on top, AFC below.
	assert.Equal(t, "N3", b.SuperBowl[0].TeamID)
	assert.Equal(t, "A1", b.SuperBowl[1].TeamID)

	picks[SuperBowlSlot] = "N3"
	champ := Champion(field, picks)
	assert.NotNil(t, champ)
	assert.Equal(t, "N3", champ.TeamID)
}

func TestDeriveBracketIsPure(t *testing.T) {
	field := testField()

	picks := PickSet{
		slotOf(AFC, RoundWildCard, 1): "A7",
		slotOf(AFC, RoundWildCard, 2): "A6",
		slotOf(AFC, RoundWildCard, 3): "A5",
	}

	first := DeriveBracket(field, picks)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DeriveBracket(field, picks))
	}
}

func TestDeriveBracketEmptyField(t *testing.T) {
	// A missing field degrades to placeholders, never panics.
	b := DeriveBracket(Field{}, PickSet{slotOf(AFC, RoundWildCard, 1): "A2"})
	for _, m := range b.AFC.WildCard {
		assert.Nil(t, m[0])
		assert.Nil(t, m[1])
	}
	assert.Nil(t, b.SuperBowl[0])
	assert.Nil(t, b.SuperBowl[1])
}
