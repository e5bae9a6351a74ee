package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testWeights = Weights{WildCard: 1, Divisional: 2, Championship: 4, SuperBowl: 8}

func TestScoreWeighsExactSlotMatches(t *testing.T) {
	picks := PickSet{
		slotOf(AFC, RoundWildCard, 1):   "A2", // hit: 1
		slotOf(AFC, RoundWildCard, 2):   "A6", // miss
		slotOf(AFC, RoundDivisional, 1): "A1", // hit: 2
		SuperBowlSlot:                   "A1", // hit: 8
	}
	results := ResultSet{
		slotOf(AFC, RoundWildCard, 1):   "A2",
		slotOf(AFC, RoundWildCard, 2):   "A3",
		slotOf(AFC, RoundDivisional, 1): "A1",
		SuperBowlSlot:                   "A1",
	}

	assert.Equal(t, 11, Score(picks, results, testWeights))
}

func TestScoreZeroWithoutMatches(t *testing.T) {
	picks := PickSet{
		slotOf(AFC, RoundWildCard, 1): "A7",
		slotOf(NFC, RoundWildCard, 2): "N6",
		SuperBowlSlot:                 "N6",
	}
	results := ResultSet{
		slotOf(AFC, RoundWildCard, 1): "A2",
	}

	assert.Equal(t, 0, Score(picks, results, testWeights))
	assert.Equal(t, 0, Score(PickSet{}, results, testWeights))
	assert.Equal(t, 0, Score(picks, ResultSet{}, testWeights))
}

func TestLeaderboardRanksDescending(t *testing.T) {
	results := ResultSet{
		slotOf(AFC, RoundWildCard, 1): "A2",
		slotOf(AFC, RoundWildCard, 2): "A3",
	}

	entrants := []Entrant{
		{UserID: 1, DisplayName: "one", Picks: PickSet{slotOf(AFC, RoundWildCard, 1): "A7"}},
		{UserID: 2, DisplayName: "two", Picks: PickSet{
			slotOf(AFC, RoundWildCard, 1): "A2",
			slotOf(AFC, RoundWildCard, 2): "A3",
		}, PaidBuyIn: true},
		{UserID: 3, DisplayName: "three", Picks: PickSet{slotOf(AFC, RoundWildCard, 2): "A3"}},
		{UserID: 4, DisplayName: "four"},
	}

	standings := Leaderboard(entrants, results, testWeights)

	assert.Equal(t, []uint{2, 3, 1, 4}, []uint{
		standings[0].UserID, standings[1].UserID, standings[2].UserID, standings[3].UserID,
	})
	assert.Equal(t, []int{2, 1, 0, 0}, []int{
		standings[0].Score, standings[1].Score, standings[2].Score, standings[3].Score,
	})
	for i, s := range standings {
		assert.Equal(t, i+1, s.Rank)
	}

	// Members with no saved picks are flagged, not dropped.
	assert.False(t, standings[3].HasBracket)
	assert.True(t, standings[0].HasBracket)
}

func TestLeaderboardTiesKeepInputOrder(t *testing.T) {
	entrants := []Entrant{
		{UserID: 10, DisplayName: "first"},
		{UserID: 11, DisplayName: "second"},
		{UserID: 12, DisplayName: "third"},
	}

	standings := Leaderboard(entrants, ResultSet{}, testWeights)

	assert.Equal(t, uint(10), standings[0].UserID)
	assert.Equal(t, uint(11), standings[1].UserID)
	assert.Equal(t, uint(12), standings[2].UserID)
}

func TestPrizePoolOnlyIncludesBuyIns(t *testing.T) {
	standings := []Standing{
		{Rank: 1, UserID: 1, Score: 9},
		{Rank: 2, UserID: 2, Score: 7, PaidBuyIn: true},
		{Rank: 3, UserID: 3, Score: 4},
		{Rank: 4, UserID: 4, Score: 1, PaidBuyIn: true},
	}

	pool := PrizePool(standings)

	assert.Len(t, pool, 2)
	assert.Equal(t, uint(2), pool[0].UserID)
	assert.Equal(t, 1, pool[0].Rank)
	assert.Equal(t, uint(4), pool[1].UserID)
	assert.Equal(t, 2, pool[1].Rank)

	// Overall standings keep their original ranks.
	assert.Equal(t, 2, standings[1].Rank)
}
