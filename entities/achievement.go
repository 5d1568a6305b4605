package entities

import (
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	IconURL           string    `json:"icon_url,omitempty"`
	RequiredCoins     int       `json:"required_coins"`
	UnlockType        string    `json:"unlock_type"` // Privilege, Access, Event, Benefit
	UnlockDescription string    `json:"unlock_description,omitempty"`
	Category          string    `json:"category"` // Milestone, Event, Exclusive
	BadgeColor        string    `json:"badge_color,omitempty"`
	SortOrder         int       `json:"sort_order"`
	IsActive          bool      `json:"is_active"`

	Timestamp
}

// UserCoinAchievement records a single unlock per (user, achievement).
// The unique index is the concurrency guard: unlock inserts are
// conflict-ignore, so repeated checks never duplicate.
type UserCoinAchievement struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID  `gorm:"uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uuid.UUID  `gorm:"uniqueIndex:idx_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time  `json:"unlocked_at"`
	IsClaimed     bool       `json:"is_claimed"`
	ClaimedAt     *time.Time `json:"claimed_at,omitempty"`

	User        *User        `gorm:"foreignKey:UserID"`
	Achievement *Achievement `gorm:"foreignKey:AchievementID"`
	Timestamp
}
