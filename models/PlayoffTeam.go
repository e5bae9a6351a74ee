package models

import (
	"errors"
	"html"
	"strings"
	"time"

	"PlayoffPredictor/bracket"

	"gorm.io/gorm"
)

// PlayoffTeam is one row of the persisted seed table: the playoff field is
// loaded from the feed (or the static fallback) once per season and is
// read-only for bracket purposes afterwards.
type PlayoffTeam struct {
	ID           uint      `gorm:"primary_key;autoIncrement" json:"id"`
	TeamID       string    `gorm:"size:32;not null;uniqueIndex:idx_conference_team" json:"team_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Abbreviation string    `gorm:"size:8;not null" json:"abbreviation"`
	ShortName    string    `gorm:"size:64" json:"short_name"`
	Logo         string    `gorm:"size:512" json:"logo"`
	Seed         int       `gorm:"not null;uniqueIndex:idx_conference_seed" json:"seed"`
	Conference   string    `gorm:"size:3;not null;uniqueIndex:idx_conference_seed;uniqueIndex:idx_conference_team" json:"conference"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (pt *PlayoffTeam) Prepare() {
	pt.TeamID = strings.TrimSpace(pt.TeamID)
	pt.Name = html.EscapeString(strings.TrimSpace(pt.Name))
	pt.Abbreviation = strings.ToUpper(strings.TrimSpace(pt.Abbreviation))
	pt.ShortName = html.EscapeString(strings.TrimSpace(pt.ShortName))
	pt.Conference = strings.ToUpper(strings.TrimSpace(pt.Conference))
	pt.CreatedAt = time.Now()
	pt.UpdatedAt = time.Now()
}

func (pt *PlayoffTeam) Validate() map[string]string {
	errorMessages := make(map[string]string)

	if pt.TeamID == "" {
		errorMessages["Required_team_id"] = "Required Team ID"
	}
	if pt.Name == "" {
		errorMessages["Required_name"] = "Required Name"
	}
	if pt.Seed < 1 || pt.Seed > 7 {
		errorMessages["Invalid_seed"] = "Seed must be between 1 and 7"
	}
	if pt.Conference != string(bracket.AFC) && pt.Conference != string(bracket.NFC) {
		errorMessages["Invalid_conference"] = "Conference must be AFC or NFC"
	}
	return errorMessages
}

// ReplaceField swaps the stored playoff field for a fresh snapshot in one
// transaction, so readers never see a half-written season.
func (pt *PlayoffTeam) ReplaceField(db *gorm.DB, field bracket.Field) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&PlayoffTeam{}).Error; err != nil {
			return err
		}
		for _, conf := range []bracket.Conference{bracket.AFC, bracket.NFC} {
			for seed := 1; seed <= 7; seed++ {
				team, ok := field.TeamBySeed(conf, seed)
				if !ok {
					return errors.New("incomplete playoff field: missing " + string(conf) + " seed")
				}
				row := PlayoffTeam{
					TeamID:       team.TeamID,
					Name:         team.Name,
					Abbreviation: team.Abbreviation,
					ShortName:    team.ShortName,
					Logo:         team.Logo,
					Seed:         team.Seed,
					Conference:   string(team.Conference),
				}
				row.Prepare()
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// LoadField reads the stored rows back into the core's Field shape.
func (pt *PlayoffTeam) LoadField(db *gorm.DB) (bracket.Field, error) {
	var rows []PlayoffTeam
	if err := db.Order("conference, seed").Find(&rows).Error; err != nil {
		return nil, err
	}

	field := bracket.Field{bracket.AFC: {}, bracket.NFC: {}}
	for _, row := range rows {
		conf := bracket.Conference(row.Conference)
		if _, ok := field[conf]; !ok {
			continue
		}
		field[conf][row.Seed] = bracket.Team{
			TeamID:       row.TeamID,
			Name:         row.Name,
			Abbreviation: row.Abbreviation,
			ShortName:    row.ShortName,
			Logo:         row.Logo,
			Seed:         row.Seed,
			Conference:   conf,
		}
	}
	return field, nil
}

func (pt *PlayoffTeam) CountTeams(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&PlayoffTeam{}).Count(&count).Error
	return count, err
}
