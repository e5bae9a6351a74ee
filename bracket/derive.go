package bracket

import "sort"

// PickSet maps slots to the picked winner's team ID. It is a partial
// function over the 13 slots; absent slots are simply unpicked.
type PickSet map[Slot]string

// Matchup holds the two displayed participants of a game. A nil entry means
// the participant cannot be derived yet from upstream picks.
type Matchup [2]*Team

// ConferenceBracket is one conference's half of the derived bracket.
type ConferenceBracket struct {
	WildCard     [3]Matchup `json:"wild_card"`
	Divisional   [2]Matchup `json:"divisional"`
	Championship Matchup    `json:"championship"`
}

// Bracket is the full derived view: every matchup at every round, given the
// seeded field and the picks made so far.
type Bracket struct {
	AFC       ConferenceBracket `json:"afc"`
	NFC       ConferenceBracket `json:"nfc"`
	SuperBowl Matchup           `json:"super_bowl"`
}

// DeriveBracket computes the displayable bracket from the field and picks.
// It is a pure function: identical inputs always yield an identical bracket,
// regardless of the order picks were made in. Results play no part here.
func DeriveBracket(field Field, picks PickSet) Bracket {
	var b Bracket
	b.AFC = deriveConference(field, picks, AFC)
	b.NFC = deriveConference(field, picks, NFC)

	// Super Bowl display convention: NFC champion on top, AFC below.
	// No re-seeding is applied at this stage.
	b.SuperBowl = Matchup{
		pickedWinner(field, picks, Slot{Conference: NFC, Round: RoundConference, Game: 1}),
		pickedWinner(field, picks, Slot{Conference: AFC, Round: RoundConference, Game: 1}),
	}
	return b
}

// Champion returns the team picked to win the Super Bowl, if any.
func Champion(field Field, picks PickSet) *Team {
	return pickedWinner(field, picks, SuperBowlSlot)
}

func deriveConference(field Field, picks PickSet, conf Conference) ConferenceBracket {
	var cb ConferenceBracket

	// Wild card pairings are fixed by seed: 2v7, 3v6, 4v5. Seed 1 has a bye.
	cb.WildCard[0] = seedMatchup(field, conf, 2, 7)
	cb.WildCard[1] = seedMatchup(field, conf, 3, 6)
	cb.WildCard[2] = seedMatchup(field, conf, 4, 5)

	cb.Divisional = deriveDivisional(field, picks, conf)

	// Championship pairs the two divisional picks positionally, game 1
	// winner first. Unlike the divisional round there is no re-seeding.
	cb.Championship = Matchup{
		pickedWinner(field, picks, Slot{Conference: conf, Round: RoundDivisional, Game: 1}),
		pickedWinner(field, picks, Slot{Conference: conf, Round: RoundDivisional, Game: 2}),
	}
	return cb
}

// deriveDivisional applies the NFL re-seeding rule once all three wild card
// winners are picked: the 1 seed hosts the worst surviving seed, the other
// two winners meet, displayed best seed first. With fewer than three picks
// only the bye team can be placed.
func deriveDivisional(field Field, picks PickSet, conf Conference) [2]Matchup {
	var top *Team
	if t, ok := field.TeamBySeed(conf, 1); ok {
		top = &t
	}

	winners := wildCardWinners(field, picks, conf)
	if len(winners) < 3 {
		return [2]Matchup{{top, nil}, {nil, nil}}
	}

	sort.Slice(winners, func(i, j int) bool { return winners[i].Seed > winners[j].Seed })
	worst := winners[0]
	others := winners[1:]
	sort.Slice(others, func(i, j int) bool { return others[i].Seed < others[j].Seed })

	return [2]Matchup{
		{top, &worst},
		{&others[0], &others[1]},
	}
}

func wildCardWinners(field Field, picks PickSet, conf Conference) []Team {
	winners := make([]Team, 0, 3)
	for game := 1; game <= GamesIn(RoundWildCard); game++ {
		slot := Slot{Conference: conf, Round: RoundWildCard, Game: game}
		if t := pickedWinner(field, picks, slot); t != nil {
			winners = append(winners, *t)
		}
	}
	return winners
}

func pickedWinner(field Field, picks PickSet, slot Slot) *Team {
	teamID, ok := picks[slot]
	if !ok {
		return nil
	}
	t, ok := field.FindTeam(slot.Conference, teamID)
	if !ok {
		return nil
	}
	return &t
}

func seedMatchup(field Field, conf Conference, a, b int) Matchup {
	var m Matchup
	if t, ok := field.TeamBySeed(conf, a); ok {
		m[0] = &t
	}
	if t, ok := field.TeamBySeed(conf, b); ok {
		m[1] = &t
	}
	return m
}

// MatchupFor returns the derived matchup at a single slot, used to validate
// that a pick names an actual participant of that game.
func MatchupFor(field Field, picks PickSet, slot Slot) Matchup {
	b := DeriveBracket(field, picks)
	var cb ConferenceBracket
	switch slot.Conference {
	case AFC:
		cb = b.AFC
	case NFC:
		cb = b.NFC
	case SB:
		return b.SuperBowl
	}
	switch slot.Round {
	case RoundWildCard:
		return cb.WildCard[slot.Game-1]
	case RoundDivisional:
		return cb.Divisional[slot.Game-1]
	case RoundConference:
		return cb.Championship
	}
	return Matchup{}
}

// Contains reports whether the team is one of the matchup's participants.
func (m Matchup) Contains(teamID string) bool {
	for _, t := range m {
		if t != nil && t.TeamID == teamID {
			return true
		}
	}
	return false
}
