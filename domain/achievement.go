package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetAchievements   = "achievements retrieved successfully"
	MessageSuccessGetProgress       = "achievement progress retrieved successfully"
	MessageSuccessCheckAchievements = "achievements checked successfully"
	MessageSuccessClaimAchievement  = "achievement claimed successfully"
	MessageSuccessCreateAchievement = "achievement created successfully"
	MessageSuccessUpdateAchievement = "achievement updated successfully"
	MessageSuccessDeleteAchievement = "achievement deleted successfully"

	MessageFailedGetAchievements   = "failed to retrieve achievements"
	MessageFailedGetProgress       = "failed to retrieve achievement progress"
	MessageFailedCheckAchievements = "failed to check achievements"
	MessageFailedClaimAchievement  = "failed to claim achievement"
	MessageFailedCreateAchievement = "failed to create achievement"
	MessageFailedUpdateAchievement = "failed to update achievement"
	MessageFailedDeleteAchievement = "failed to delete achievement"

	ErrAchievementNotFound       = errors.New("achievement not found")
	ErrAchievementNotUnlocked    = errors.New("achievement not unlocked")
	ErrAchievementAlreadyClaimed = errors.New("achievement already claimed")
)

type (
	CreateAchievementRequest struct {
		Title             string                `json:"title" validate:"required"`
		Description       string                `json:"description" validate:"required"`
		Icon              *multipart.FileHeader `json:"-"`
		RequiredCoins     int                   `json:"required_coins" validate:"required,min=1"`
		UnlockType        string                `json:"unlock_type" validate:"required,oneof=Privilege Access Event Benefit"`
		UnlockDescription string                `json:"unlock_description,omitempty"`
		Category          string                `json:"category" validate:"required,oneof=Milestone Event Exclusive"`
		BadgeColor        string                `json:"badge_color,omitempty"`
		SortOrder         int                   `json:"sort_order"`
	}

	UpdateAchievementRequest struct {
		Title             string `json:"title,omitempty"`
		Description       string `json:"description,omitempty"`
		RequiredCoins     *int   `json:"required_coins,omitempty" validate:"omitempty,min=1"`
		UnlockType        string `json:"unlock_type,omitempty" validate:"omitempty,oneof=Privilege Access Event Benefit"`
		UnlockDescription string `json:"unlock_description,omitempty"`
		Category          string `json:"category,omitempty" validate:"omitempty,oneof=Milestone Event Exclusive"`
		BadgeColor        string `json:"badge_color,omitempty"`
		SortOrder         *int   `json:"sort_order,omitempty"`
		IsActive          *bool  `json:"is_active,omitempty"`
	}

	Achievement struct {
		ID                string `json:"id"`
		Title             string `json:"title"`
		Description       string `json:"description"`
		IconURL           string `json:"icon_url,omitempty"`
		RequiredCoins     int    `json:"required_coins"`
		UnlockType        string `json:"unlock_type"`
		UnlockDescription string `json:"unlock_description,omitempty"`
		Category          string `json:"category"`
		BadgeColor        string `json:"badge_color,omitempty"`
		SortOrder         int    `json:"sort_order"`
		IsActive          bool   `json:"is_active"`
	}

	UnlockedAchievement struct {
		ID            string    `json:"id"`
		Title         string    `json:"title"`
		RequiredCoins int       `json:"required_coins"`
		UnlockType    string    `json:"unlock_type"`
		BadgeColor    string    `json:"badge_color,omitempty"`
		UnlockedAt    time.Time `json:"unlocked_at"`
	}

	UserAchievement struct {
		Achievement
		UnlockedAt time.Time  `json:"unlocked_at"`
		IsClaimed  bool       `json:"is_claimed"`
		ClaimedAt  *time.Time `json:"claimed_at,omitempty"`
	}

	AchievementProgress struct {
		CurrentBalance int                `json:"current_balance"`
		NextTarget     *Achievement       `json:"next_target,omitempty"`
		CoinsToNext    int                `json:"coins_to_next,omitempty"`
		Unlocked       []*UserAchievement `json:"unlocked"`
		Locked         []*Achievement     `json:"locked"`
	}
)
