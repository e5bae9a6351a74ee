package bracket

import "fmt"

type Conference string

const (
	AFC Conference = "AFC"
	NFC Conference = "NFC"
	// SB is the cross-conference slot space for the Super Bowl game.
	SB Conference = "SB"
)

type Round int

const (
	RoundWildCard   Round = 1
	RoundDivisional Round = 2
	RoundConference Round = 3
	RoundSuperBowl  Round = 4
)

// gamesPerRound drives the round-completeness checks; a round's results are
// only conclusive once this many winners have been recorded.
var gamesPerRound = map[Round]int{
	RoundWildCard:   3,
	RoundDivisional: 2,
	RoundConference: 1,
	RoundSuperBowl:  1,
}

// GamesIn returns how many games a round has within one conference
// (or overall, for the Super Bowl round).
func GamesIn(round Round) int {
	return gamesPerRound[round]
}

// Slot addresses one pickable game: 6 wild card, 4 divisional,
// 2 championship and 1 super bowl game, 13 in total.
type Slot struct {
	Conference Conference `json:"conference"`
	Round      Round      `json:"round"`
	Game       int        `json:"game"`
}

func (s Slot) String() string {
	return fmt.Sprintf("%s-%d-%d", s.Conference, s.Round, s.Game)
}

// Valid reports whether the slot addresses a real game. The SB conference
// only pairs with round 4 game 1; AFC/NFC only with rounds 1-3.
func (s Slot) Valid() bool {
	switch s.Conference {
	case SB:
		return s.Round == RoundSuperBowl && s.Game == 1
	case AFC, NFC:
		if s.Round < RoundWildCard || s.Round > RoundConference {
			return false
		}
		return s.Game >= 1 && s.Game <= gamesPerRound[s.Round]
	default:
		return false
	}
}

// SuperBowlSlot is the single cross-conference slot.
var SuperBowlSlot = Slot{Conference: SB, Round: RoundSuperBowl, Game: 1}

// AllSlots returns the 13 addressable slots in a fixed display order:
// AFC rounds, NFC rounds, then the Super Bowl.
func AllSlots() []Slot {
	slots := make([]Slot, 0, 13)
	for _, conf := range []Conference{AFC, NFC} {
		for round := RoundWildCard; round <= RoundConference; round++ {
			for game := 1; game <= gamesPerRound[round]; game++ {
				slots = append(slots, Slot{Conference: conf, Round: round, Game: game})
			}
		}
	}
	return append(slots, SuperBowlSlot)
}
