package bracket

// Status is the correctness of one pick against the results recorded so far.
type Status string

const (
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
	StatusPending   Status = "pending"
)

// ResultSet maps slots to the actual winner's team ID. Results arrive
// incrementally; any partial state is a valid input.
type ResultSet map[Slot]string

// Classify grades a single pick. Wild card matchups are fixed, so their
// result is read straight off the slot. Later rounds are pick-dependent:
// the user's divisional game 1 need not line up with the real game 1, so
// correctness is derived relationally instead:
//
//  1. the picked team is among the recorded winners of the same
//     round and conference -> correct
//  2. the picked team was eliminated in a fully-reported earlier
//     round -> incorrect
//  3. otherwise -> pending
//
// Partial or missing result data always degrades to pending, never panics
// and never produces a false incorrect.
func Classify(slot Slot, teamID string, field Field, results ResultSet) Status {
	if !slot.Valid() || teamID == "" {
		return StatusPending
	}

	if slot.Round == RoundWildCard {
		winner, ok := results[slot]
		if !ok {
			return StatusPending
		}
		if winner == teamID {
			return StatusCorrect
		}
		return StatusIncorrect
	}

	if roundWinners(results, slot.Conference, slot.Round)[teamID] {
		return StatusCorrect
	}

	// A Super Bowl pick is conference-agnostic; the elimination walk needs
	// the team's true conference from the field.
	conf := slot.Conference
	if conf == SB {
		resolved, ok := field.ConferenceOf(teamID)
		if !ok {
			return StatusPending
		}
		conf = resolved
	}

	for round := RoundWildCard; round < slot.Round && round <= RoundConference; round++ {
		if eliminatedIn(results, field, conf, round, teamID) {
			return StatusIncorrect
		}
	}
	return StatusPending
}

// ClassifyAll grades every pick in the set, keyed by slot.
func ClassifyAll(picks PickSet, field Field, results ResultSet) map[Slot]Status {
	statuses := make(map[Slot]Status, len(picks))
	for slot, teamID := range picks {
		statuses[slot] = Classify(slot, teamID, field, results)
	}
	return statuses
}

// eliminatedIn reports whether the team provably did not survive the round.
// Elimination can only be asserted once every game of the round has a
// recorded winner: a team absent from a 1-of-2 reported divisional round may
// still win the remaining game. The 1 seed has a wild card bye and is never
// eliminated by that round.
func eliminatedIn(results ResultSet, field Field, conf Conference, round Round, teamID string) bool {
	if round == RoundWildCard {
		if t, ok := field.FindTeam(conf, teamID); ok && t.Seed == 1 {
			return false
		}
	}
	winners := roundWinners(results, conf, round)
	if len(winners) < GamesIn(round) {
		return false
	}
	return !winners[teamID]
}

func roundWinners(results ResultSet, conf Conference, round Round) map[string]bool {
	winners := make(map[string]bool)
	for game := 1; game <= GamesIn(round); game++ {
		slot := Slot{Conference: conf, Round: round, Game: game}
		if teamID, ok := results[slot]; ok {
			winners[teamID] = true
		}
	}
	return winners
}
