package bracket

// Team is one playoff participant. Seeds run 1-7 and are unique within a
// conference; TeamID is the external (ESPN) team identifier.
type Team struct {
	TeamID       string     `json:"team_id"`
	Name         string     `json:"name"`
	Abbreviation string     `json:"abbreviation"`
	ShortName    string     `json:"short_name"`
	Logo         string     `json:"logo"`
	Seed         int        `json:"seed"`
	Conference   Conference `json:"conference"`
}

// Field is the seeded playoff field: conference -> seed -> team.
// It is loaded once per session and read-only afterwards.
type Field map[Conference]map[int]Team

// TeamBySeed returns the team holding the given seed, if the field has one.
func (f Field) TeamBySeed(conf Conference, seed int) (Team, bool) {
	teams, ok := f[conf]
	if !ok {
		return Team{}, false
	}
	t, ok := teams[seed]
	return t, ok
}

// FindTeam looks a team up by ID. The SB pseudo-conference searches both
// real conferences, since Super Bowl picks are conference-agnostic.
func (f Field) FindTeam(conf Conference, teamID string) (Team, bool) {
	if conf == SB {
		if t, ok := f.FindTeam(AFC, teamID); ok {
			return t, true
		}
		return f.FindTeam(NFC, teamID)
	}
	for _, t := range f[conf] {
		if t.TeamID == teamID {
			return t, true
		}
	}
	return Team{}, false
}

// ConferenceOf resolves a team's true conference from the field.
func (f Field) ConferenceOf(teamID string) (Conference, bool) {
	if _, ok := f.FindTeam(AFC, teamID); ok {
		return AFC, true
	}
	if _, ok := f.FindTeam(NFC, teamID); ok {
		return NFC, true
	}
	return "", false
}

// Complete reports whether both conferences carry all seven seeds.
func (f Field) Complete() bool {
	for _, conf := range []Conference{AFC, NFC} {
		for seed := 1; seed <= 7; seed++ {
			if _, ok := f.TeamBySeed(conf, seed); !ok {
				return false
			}
		}
	}
	return true
}
