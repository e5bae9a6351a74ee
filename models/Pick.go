package models

import (
	"strings"
	"time"

	"PlayoffPredictor/bracket"

	"gorm.io/gorm"
)

// Pick is one saved bracket pick. A user holds at most one pick per slot;
// the unique index is the storage-side guarantee, slot validity and the
// participant constraint are enforced by the bracket core before saving.
type Pick struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_slot" json:"user_id"`
	Conference string    `gorm:"size:3;not null;uniqueIndex:idx_user_slot" json:"conference"`
	Round      int       `gorm:"not null;uniqueIndex:idx_user_slot" json:"round"`
	Game       int       `gorm:"not null;uniqueIndex:idx_user_slot" json:"game"`
	TeamID     string    `gorm:"size:32;not null" json:"team_id"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (p *Pick) Prepare() {
	p.Conference = strings.ToUpper(strings.TrimSpace(p.Conference))
	p.TeamID = strings.TrimSpace(p.TeamID)
	p.User = User{}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
}

func (p *Pick) Validate() map[string]string {
	errorMessages := make(map[string]string)

	if !p.Slot().Valid() {
		errorMessages["Invalid_slot"] = "Invalid conference/round/game address"
	}
	if p.TeamID == "" {
		errorMessages["Required_team"] = "Required Team"
	}
	if p.UserID == 0 {
		errorMessages["Required_user"] = "Required User"
	}
	return errorMessages
}

func (p *Pick) Slot() bracket.Slot {
	return bracket.Slot{
		Conference: bracket.Conference(p.Conference),
		Round:      bracket.Round(p.Round),
		Game:       p.Game,
	}
}

func (p *Pick) FindUserPicks(db *gorm.DB, uid uint) (*[]Pick, error) {
	var picks []Pick
	err := db.Where("user_id = ?", uid).
		Order("round, conference, game").
		Find(&picks).Error
	if err != nil {
		return nil, err
	}
	return &picks, nil
}

// ReplaceUserPicks persists a full snapshot: last full save wins, no
// per-pick merging. The delete and insert share one transaction so a failed
// save leaves the previous snapshot intact.
func (p *Pick) ReplaceUserPicks(db *gorm.DB, uid uint, picks bracket.PickSet) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", uid).Delete(&Pick{}).Error; err != nil {
			return err
		}
		for slot, teamID := range picks {
			row := Pick{
				UserID:     uid,
				Conference: string(slot.Conference),
				Round:      int(slot.Round),
				Game:       slot.Game,
				TeamID:     teamID,
			}
			row.Prepare()
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Pick) DeleteUserPicks(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("user_id = ?", uid).Delete(&Pick{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// PickSetFor loads a user's saved picks as the core's PickSet shape.
func (p *Pick) PickSetFor(db *gorm.DB, uid uint) (bracket.PickSet, error) {
	picks, err := p.FindUserPicks(db, uid)
	if err != nil {
		return nil, err
	}
	return ToPickSet(*picks), nil
}

// ToPickSet normalizes stored rows into the canonical in-memory shape; the
// storage field naming never leaks into the core.
func ToPickSet(picks []Pick) bracket.PickSet {
	set := make(bracket.PickSet, len(picks))
	for _, pick := range picks {
		set[pick.Slot()] = pick.TeamID
	}
	return set
}
