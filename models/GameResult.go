package models

import (
	"errors"
	"strings"
	"time"

	"PlayoffPredictor/bracket"

	"gorm.io/gorm"
)

// ErrResultExists guards the write-once rule: once a slot has an
// authoritative winner it is immutable truth unless an admin overrides it.
var ErrResultExists = errors.New("result already recorded for this game")

// GameResult is the actual winner of one real playoff game, recorded by an
// admin (or the feed sync) as games complete.
type GameResult struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Conference string    `gorm:"size:3;not null;uniqueIndex:idx_result_slot" json:"conference"`
	Round      int       `gorm:"not null;uniqueIndex:idx_result_slot" json:"round"`
	Game       int       `gorm:"not null;uniqueIndex:idx_result_slot" json:"game"`
	TeamID     string    `gorm:"size:32;not null" json:"team_id"`
	RecordedBy uint      `json:"recorded_by"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (r *GameResult) Prepare() {
	r.Conference = strings.ToUpper(strings.TrimSpace(r.Conference))
	r.TeamID = strings.TrimSpace(r.TeamID)
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
}

func (r *GameResult) Validate() map[string]string {
	errorMessages := make(map[string]string)

	if !r.Slot().Valid() {
		errorMessages["Invalid_slot"] = "Invalid conference/round/game address"
	}
	if r.TeamID == "" {
		errorMessages["Required_team"] = "Required Team"
	}
	return errorMessages
}

func (r *GameResult) Slot() bracket.Slot {
	return bracket.Slot{
		Conference: bracket.Conference(r.Conference),
		Round:      bracket.Round(r.Round),
		Game:       r.Game,
	}
}

// SaveResult records a winner. Without override it refuses to touch a slot
// that already has one.
func (r *GameResult) SaveResult(db *gorm.DB, override bool) (*GameResult, error) {
	var existing GameResult
	err := db.Where("conference = ? AND round = ? AND game = ?", r.Conference, r.Round, r.Game).
		Take(&existing).Error

	switch {
	case err == nil:
		if !override {
			return nil, ErrResultExists
		}
		existing.TeamID = r.TeamID
		existing.RecordedBy = r.RecordedBy
		existing.UpdatedAt = time.Now()
		if err := db.Save(&existing).Error; err != nil {
			return nil, err
		}
		*r = existing
		return r, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(r).Error; err != nil {
			return nil, err
		}
		return r, nil

	default:
		return nil, err
	}
}

func (r *GameResult) FindAllResults(db *gorm.DB) (*[]GameResult, error) {
	var results []GameResult
	err := db.Order("round, conference, game").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return &results, nil
}

func (r *GameResult) CountResults(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&GameResult{}).Count(&count).Error
	return count, err
}

// ResultSet loads all recorded winners as the core's canonical shape.
func (r *GameResult) ResultSet(db *gorm.DB) (bracket.ResultSet, error) {
	results, err := r.FindAllResults(db)
	if err != nil {
		return nil, err
	}
	set := make(bracket.ResultSet, len(*results))
	for _, result := range *results {
		set[result.Slot()] = result.TeamID
	}
	return set, nil
}
