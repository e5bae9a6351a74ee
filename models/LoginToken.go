package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TokenPurposeMagicLink     = "magic_link"
	TokenPurposePasswordReset = "password_reset"
)

var ErrTokenInvalid = errors.New("token is invalid or has expired")

// LoginToken backs the emailed single-use links: magic-link sign-in and
// password resets. Tokens are consumed on first redemption.
type LoginToken struct {
	ID        uint       `gorm:"primary_key;autoIncrement" json:"id"`
	User      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Token     string     `gorm:"size:64;not null;uniqueIndex" json:"token"`
	Purpose   string     `gorm:"size:32;not null" json:"purpose"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IssueToken creates a fresh single-use token for the user.
func (lt *LoginToken) IssueToken(db *gorm.DB, uid uint, purpose string, ttl time.Duration) (*LoginToken, error) {
	token := &LoginToken{
		UserID:    uid,
		Token:     strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", ""),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
	if err := db.Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// ConsumeToken redeems a token, marking it used. Expired, unknown or
// already-used tokens all come back as ErrTokenInvalid.
func (lt *LoginToken) ConsumeToken(db *gorm.DB, token, purpose string) (*LoginToken, error) {
	var found LoginToken
	err := db.Where("token = ? AND purpose = ?", strings.TrimSpace(token), purpose).
		Take(&found).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if found.UsedAt != nil || time.Now().After(found.ExpiresAt) {
		return nil, ErrTokenInvalid
	}

	now := time.Now()
	if err := db.Model(&found).Update("used_at", &now).Error; err != nil {
		return nil, err
	}
	found.UsedAt = &now
	return &found, nil
}

// PurgeExpired removes dead tokens; called from the maintenance schedule.
func (lt *LoginToken) PurgeExpired(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at < ?", time.Now()).Delete(&LoginToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
