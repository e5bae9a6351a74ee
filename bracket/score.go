package bracket

import "sort"

// Weights are a group's per-round point values for a correct pick.
type Weights struct {
	WildCard     int `json:"points_r1"`
	Divisional   int `json:"points_r2"`
	Championship int `json:"points_r3"`
	SuperBowl    int `json:"points_sb"`
}

func (w Weights) forRound(round Round) int {
	switch round {
	case RoundWildCard:
		return w.WildCard
	case RoundDivisional:
		return w.Divisional
	case RoundConference:
		return w.Championship
	case RoundSuperBowl:
		return w.SuperBowl
	}
	return 0
}

// Score sums the weights of every pick that exactly matches the recorded
// winner of its slot. No partial credit, no penalty for misses.
func Score(picks PickSet, results ResultSet, w Weights) int {
	total := 0
	for slot, teamID := range picks {
		if winner, ok := results[slot]; ok && winner == teamID {
			total += w.forRound(slot.Round)
		}
	}
	return total
}

// Entrant is one group member's input to a leaderboard.
type Entrant struct {
	UserID      uint
	DisplayName string
	Picks       PickSet
	PaidBuyIn   bool
}

// Standing is one ranked leaderboard row. Rank is 1-based; ties keep the
// entrants' input order and share no rank (strictly positional), matching
// the stable-descending contract.
type Standing struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	HasBracket  bool   `json:"has_bracket"`
	PaidBuyIn   bool   `json:"paid_buy_in"`
}

// Leaderboard scores every entrant and ranks them descending. The sort is
// stable, so equal scores keep the caller's member order.
func Leaderboard(entrants []Entrant, results ResultSet, w Weights) []Standing {
	standings := make([]Standing, len(entrants))
	for i, e := range entrants {
		standings[i] = Standing{
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			Score:       Score(e.Picks, results, w),
			HasBracket:  len(e.Picks) > 0,
			PaidBuyIn:   e.PaidBuyIn,
		}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// PrizePool re-ranks only the buy-in entrants. Ranks are recomputed over the
// subset; the overall leaderboard ranks are untouched.
func PrizePool(standings []Standing) []Standing {
	pool := make([]Standing, 0, len(standings))
	for _, s := range standings {
		if s.PaidBuyIn {
			pool = append(pool, s)
		}
	}
	for i := range pool {
		pool[i].Rank = i + 1
	}
	return pool
}
