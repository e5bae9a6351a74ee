package models

import (
	"html"
	"strings"
	"time"

	"PlayoffPredictor/bracket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BuyinNone     = "none"
	BuyinOptional = "optional"
	BuyinRequired = "required"
)

// Group is a competitive pool with its own scoring weights and buy-in
// settings. Point values are per-group configuration, not global constants.
type Group struct {
	ID       uint   `gorm:"primary_key;autoIncrement" json:"id"`
	PublicID string `gorm:"type:uuid;uniqueIndex;column:public_id" json:"public_id"`
	Name     string `gorm:"size:255;not null" json:"name"`

	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	OwnerID uint `gorm:"not null;index" json:"owner_id"`

	IsPublic    bool   `gorm:"not null;default:false" json:"is_public"`
	BuyinType   string `gorm:"size:16;not null;default:'none'" json:"buyin_type"`
	BuyinPrice  int    `gorm:"not null;default:0" json:"buyin_price"`
	PaymentLink string `gorm:"size:512" json:"payment_link"`

	PointsR1 int `gorm:"not null;default:1" json:"points_r1"`
	PointsR2 int `gorm:"not null;default:2" json:"points_r2"`
	PointsR3 int `gorm:"not null;default:4" json:"points_r3"`
	PointsSB int `gorm:"not null;default:8" json:"points_sb"`

	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type GroupMember struct {
	ID      uint  `gorm:"primary_key;autoIncrement" json:"id"`
	Group   Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	GroupID uint  `gorm:"not null;uniqueIndex:idx_group_user" json:"group_id"`
	User    User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID  uint  `gorm:"not null;uniqueIndex:idx_group_user" json:"user_id"`

	// PaidBuyIn marks the member as opted into the prize pool.
	PaidBuyIn bool      `gorm:"not null;default:false" json:"paid_buy_in"`
	JoinedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"joined_at"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(g.PublicID) == "" {
		g.PublicID = uuid.NewString()
	}
	return nil
}

func (g *Group) Prepare() {
	g.Name = html.EscapeString(strings.TrimSpace(g.Name))
	g.PaymentLink = strings.TrimSpace(g.PaymentLink)
	g.BuyinType = strings.ToLower(strings.TrimSpace(g.BuyinType))
	g.Owner = User{}

	if g.BuyinType == "" {
		g.BuyinType = BuyinNone
	}
	if g.PointsR1 == 0 && g.PointsR2 == 0 && g.PointsR3 == 0 && g.PointsSB == 0 {
		g.PointsR1, g.PointsR2, g.PointsR3, g.PointsSB = 1, 2, 4, 8
	}

	g.CreatedAt = time.Now()
	g.UpdatedAt = time.Now()
}

func (g *Group) Validate() map[string]string {
	errorMessages := make(map[string]string)

	if g.Name == "" {
		errorMessages["Required_name"] = "Required Name"
	}
	if g.OwnerID == 0 {
		errorMessages["Required_owner"] = "Required Owner"
	}
	switch g.BuyinType {
	case BuyinNone, BuyinOptional, BuyinRequired:
	default:
		errorMessages["Invalid_buyin_type"] = "Buy-in type must be none, optional or required"
	}
	if g.BuyinType != BuyinNone && g.BuyinPrice <= 0 {
		errorMessages["Invalid_buyin_price"] = "Buy-in price must be positive"
	}
	if g.PointsR1 < 0 || g.PointsR2 < 0 || g.PointsR3 < 0 || g.PointsSB < 0 {
		errorMessages["Invalid_points"] = "Point values cannot be negative"
	}
	return errorMessages
}

// Weights exposes the group's scoring configuration to the bracket core.
func (g *Group) Weights() bracket.Weights {
	return bracket.Weights{
		WildCard:     g.PointsR1,
		Divisional:   g.PointsR2,
		Championship: g.PointsR3,
		SuperBowl:    g.PointsSB,
	}
}

func (g *Group) SaveGroup(db *gorm.DB) (*Group, error) {
	if err := db.Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) FindGroupByID(db *gorm.DB, id uint) (*Group, error) {
	err := db.Where("id = ?", id).First(&g).Error
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) FindGroupByPublicID(db *gorm.DB, publicID string) (*Group, error) {
	err := db.Where("public_id = ?", publicID).First(&g).Error
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) FindPublicGroups(db *gorm.DB) (*[]Group, error) {
	var groups []Group
	err := db.Where("is_public = ?", true).
		Order("created_at DESC").
		Limit(100).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return &groups, nil
}

func (g *Group) FindUserGroups(db *gorm.DB, uid uint) (*[]Group, error) {
	var groups []Group
	err := db.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", uid).
		Order("groups.created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return &groups, nil
}

func (g *Group) UpdateGroup(db *gorm.DB) (*Group, error) {
	g.UpdatedAt = time.Now()

	err := db.Model(&Group{}).
		Where("id = ?", g.ID).
		Updates(map[string]interface{}{
			"name":         g.Name,
			"is_public":    g.IsPublic,
			"buyin_type":   g.BuyinType,
			"buyin_price":  g.BuyinPrice,
			"payment_link": g.PaymentLink,
			"points_r1":    g.PointsR1,
			"points_r2":    g.PointsR2,
			"points_r3":    g.PointsR3,
			"points_sb":    g.PointsSB,
			"updated_at":   g.UpdatedAt,
		}).Error
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) DeleteGroup(db *gorm.DB, id uint) (int64, error) {
	if err := db.Where("group_id = ?", id).Delete(&GroupMember{}).Error; err != nil {
		return 0, err
	}
	result := db.Delete(&Group{}, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (gm *GroupMember) AddMember(db *gorm.DB) (*GroupMember, error) {
	gm.JoinedAt = time.Now()
	if err := db.Create(gm).Error; err != nil {
		return nil, err
	}
	return gm, nil
}

func (gm *GroupMember) RemoveMember(db *gorm.DB, groupID, uid uint) (int64, error) {
	result := db.Where("group_id = ? AND user_id = ?", groupID, uid).Delete(&GroupMember{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (gm *GroupMember) FindMembers(db *gorm.DB, groupID uint) (*[]GroupMember, error) {
	var members []GroupMember
	err := db.Where("group_id = ?", groupID).Order("joined_at").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return &members, nil
}

func (gm *GroupMember) IsMember(db *gorm.DB, groupID, uid uint) (bool, error) {
	var count int64
	err := db.Model(&GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, uid).
		Count(&count).Error
	return count > 0, err
}

func (gm *GroupMember) CountMembers(db *gorm.DB, groupID uint) (int64, error) {
	var count int64
	err := db.Model(&GroupMember{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}
