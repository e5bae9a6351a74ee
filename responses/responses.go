package responses

import (
	"time"

	"PlayoffPredictor/bracket"
)

type UserResponse struct {
	ID          uint   `json:"id"`
	PublicID    string `json:"public_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type GroupResponse struct {
	ID          uint      `json:"id"`
	PublicID    string    `json:"public_id"`
	Name        string    `json:"name"`
	IsPublic    bool      `json:"is_public"`
	BuyinType   string    `json:"buyin_type"`
	BuyinPrice  int       `json:"buyin_price"`
	PaymentLink string    `json:"payment_link,omitempty"`
	PointsR1    int       `json:"points_r1"`
	PointsR2    int       `json:"points_r2"`
	PointsR3    int       `json:"points_r3"`
	PointsSB    int       `json:"points_sb"`
	MemberCount int64     `json:"member_count"`
	InviteLink  string    `json:"invite_link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type GroupMemberResponse struct {
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	PaidBuyIn   bool      `json:"paid_buy_in"`
	JoinedAt    time.Time `json:"joined_at"`
}

// PickStatusResponse is one graded pick in the bracket view.
type PickStatusResponse struct {
	Conference string         `json:"conference"`
	Round      int            `json:"round"`
	Game       int            `json:"game"`
	TeamID     string         `json:"team_id"`
	Status     bracket.Status `json:"status"`
}

// BracketViewResponse is the full derived bracket plus the viewer's graded
// picks and the champion pick, ready for a presentation layer to render.
type BracketViewResponse struct {
	Bracket  bracket.Bracket      `json:"bracket"`
	Champion *bracket.Team        `json:"champion,omitempty"`
	Picks    []PickStatusResponse `json:"picks"`
	Locked   bool                 `json:"locked"`
}

type LeaderboardResponse struct {
	Group     GroupResponse      `json:"group"`
	Standings []bracket.Standing `json:"standings"`
	PrizePool []bracket.Standing `json:"prize_pool"`
}

// SlotStatResponse is the share of brackets picking a team at one slot.
type SlotStatResponse struct {
	Conference string  `json:"conference"`
	Round      int     `json:"round"`
	Game       int     `json:"game"`
	TeamID     string  `json:"team_id"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}
