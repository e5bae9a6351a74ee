package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyWildCard(t *testing.T) {
	field := testField()
	slot := slotOf(AFC, RoundWildCard, 1)

	results := ResultSet{slot: "A2"}

	assert.Equal(t, StatusCorrect, Classify(slot, "A2", field, results))
	assert.Equal(t, StatusIncorrect, Classify(slot, "A7", field, results))
	assert.Equal(t, StatusPending, Classify(slot, "A2", field, ResultSet{}))
}

func TestClassifyDivisionalMatchesRecordedWinner(t *testing.T) {
	field := testField()

	// The pick's game number need not line up with the real game: any
	// recorded winner of the round counts.
	results := ResultSet{
		slotOf(AFC, RoundDivisional, 2): "A3",
	}
	status := Classify(slotOf(AFC, RoundDivisional, 1), "A3", field, results)
	assert.Equal(t, StatusCorrect, status)
}

func TestClassifyDivisionalIncompleteRoundStaysPending(t *testing.T) {
	field := testField()

	// 1 of 2 divisional results in; the picked team is not among the
	// winners yet, but the round is incomplete so it is not provably out.
	results := ResultSet{
		slotOf(AFC, RoundWildCard, 1):   "A2",
		slotOf(AFC, RoundWildCard, 2):   "A3",
		slotOf(AFC, RoundWildCard, 3):   "A4",
		slotOf(AFC, RoundDivisional, 1): "A1",
	}
	status := Classify(slotOf(AFC, RoundDivisional, 2), "A2", field, results)
	assert.Equal(t, StatusPending, status)
}

func TestClassifyDivisionalCompleteRoundEliminates(t *testing.T) {
	field := testField()

	results := ResultSet{
		slotOf(AFC, RoundWildCard, 1):   "A2",
		slotOf(AFC, RoundWildCard, 2):   "A3",
		slotOf(AFC, RoundWildCard, 3):   "A4",
		slotOf(AFC, RoundDivisional, 1): "A1",
		slotOf(AFC, RoundDivisional, 2): "A3",
	}
	status := Classify(slotOf(AFC, RoundDivisional, 2), "A2", field, results)
	assert.Equal(t, StatusIncorrect, status)
}

func TestClassifyEliminatedInWildCard(t *testing.T) {
	field := testField()

	// A7 lost in a fully-reported wild card round; picking them for the
	// championship is already wrong.
	results := ResultSet{
		slotOf(AFC, RoundWildCard, 1): "A2",
		slotOf(AFC, RoundWildCard, 2): "A3",
		slotOf(AFC, RoundWildCard, 3): "A4",
	}
	status := Classify(slotOf(AFC, RoundConference, 1), "A7", field, results)
	assert.Equal(t, StatusIncorrect, status)
}

func TestClassifyByeTeamSurvivesWildCardRound(t *testing.T) {
	field := testField()

	// A1 never appears among wild card winners; the bye must not read as
	// an elimination once the round completes.
	results := ResultSet{
		slotOf(AFC, RoundWildCard, 1): "A2",
		slotOf(AFC, RoundWildCard, 2): "A3",
		slotOf(AFC, RoundWildCard, 3): "A4",
	}
	assert.Equal(t, StatusPending, Classify(slotOf(AFC, RoundDivisional, 1), "A1", field, results))
	assert.Equal(t, StatusPending, Classify(SuperBowlSlot, "A1", field, results))
}

func TestClassifySuperBowlResolvesConference(t *testing.T) {
	field := testField()

	// N2 lost the NFC championship (round complete). The Super Bowl pick
	// is wrong even though no Super Bowl result exists yet.
	results := ResultSet{
		slotOf(NFC, RoundConference, 1): "N1",
	}
	assert.Equal(t, StatusIncorrect, Classify(SuperBowlSlot, "N2", field, results))

	// An AFC team is untouched by NFC results.
	assert.Equal(t, StatusPending, Classify(SuperBowlSlot, "A2", field, results))
}

func TestClassifySuperBowlRecordedWinner(t *testing.T) {
	field := testField()

	results := ResultSet{SuperBowlSlot: "N1"}
	assert.Equal(t, StatusCorrect, Classify(SuperBowlSlot, "N1", field, results))
}

func TestClassifyNeverErrsOnPartialData(t *testing.T) {
	field := testField()

	// Unknown team, empty everything: pending across the board.
	assert.Equal(t, StatusPending, Classify(SuperBowlSlot, "nope", field, ResultSet{}))
	assert.Equal(t, StatusPending, Classify(SuperBowlSlot, "A1", Field{}, ResultSet{}))
	assert.Equal(t, StatusPending, Classify(Slot{}, "A1", field, ResultSet{}))
}

func TestClassifyAll(t *testing.T) {
	field := testField()

	picks := PickSet{
		slotOf(AFC, RoundWildCard, 1): "A2",
		slotOf(AFC, RoundWildCard, 2): "A6",
	}
	results := ResultSet{
		slotOf(AFC, RoundWildCard, 1): "A2",
		slotOf(AFC, RoundWildCard, 2): "A3",
	}

	statuses := ClassifyAll(picks, field, results)
	assert.Equal(t, StatusCorrect, statuses[slotOf(AFC, RoundWildCard, 1)])
	assert.Equal(t, StatusIncorrect, statuses[slotOf(AFC, RoundWildCard, 2)])
}
