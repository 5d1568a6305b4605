package achievement

import (
	"HR-Platform-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	AchievementRepository interface {
		CreateAchievement(ctx context.Context, achievement *entities.Achievement) error
		UpdateAchievement(ctx context.Context, achievement *entities.Achievement) error
		DeleteAchievement(ctx context.Context, id string) error
		GetAchievementByID(ctx context.Context, id string) (*entities.Achievement, error)
		GetActiveAchievements(ctx context.Context) ([]*entities.Achievement, error)
		ListAchievements(ctx context.Context) ([]*entities.Achievement, error)

		GetUserAchievements(ctx context.Context, userID string) ([]*entities.UserCoinAchievement, error)
		GetUserAchievement(ctx context.Context, userID, achievementID string) (*entities.UserCoinAchievement, error)
		CreateUserAchievement(ctx context.Context, unlock *entities.UserCoinAchievement) (bool, error)
		MarkClaimed(ctx context.Context, userID, achievementID string, claimedAt time.Time) (int64, error)
	}

	achievementRepository struct {
		db *gorm.DB
	}
)

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{
		db: db,
	}
}

func (r *achievementRepository) CreateAchievement(ctx context.Context, achievement *entities.Achievement) error {
	return r.db.WithContext(ctx).Create(achievement).Error
}

func (r *achievementRepository) UpdateAchievement(ctx context.Context, achievement *entities.Achievement) error {
	return r.db.WithContext(ctx).Save(achievement).Error
}

func (r *achievementRepository) DeleteAchievement(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entities.Achievement{}).Error
}

func (r *achievementRepository) GetAchievementByID(ctx context.Context, id string) (*entities.Achievement, error) {
	var achievement entities.Achievement
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *achievementRepository) GetActiveAchievements(ctx context.Context) ([]*entities.Achievement, error) {
	var achievements []*entities.Achievement
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("required_coins ASC, sort_order ASC").
		Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *achievementRepository) ListAchievements(ctx context.Context) ([]*entities.Achievement, error) {
	var achievements []*entities.Achievement
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, required_coins ASC").
		Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *achievementRepository) GetUserAchievements(ctx context.Context, userID string) ([]*entities.UserCoinAchievement, error) {
	var unlocks []*entities.UserCoinAchievement
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&unlocks).Error; err != nil {
		return nil, err
	}
	return unlocks, nil
}

func (r *achievementRepository) GetUserAchievement(ctx context.Context, userID, achievementID string) (*entities.UserCoinAchievement, error) {
	var unlock entities.UserCoinAchievement
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		First(&unlock).Error; err != nil {
		return nil, err
	}
	return &unlock, nil
}

// CreateUserAchievement inserts with conflict-ignore on the
// (user_id, achievement_id) unique index. Returns false when the unlock
// already existed, so concurrent checks never duplicate a row.
func (r *achievementRepository) CreateUserAchievement(ctx context.Context, unlock *entities.UserCoinAchievement) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(unlock)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkClaimed flips is_claimed only when it is still false; the affected row
// count tells the service whether this call won or the claim already happened.
func (r *achievementRepository) MarkClaimed(ctx context.Context, userID, achievementID string, claimedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.UserCoinAchievement{}).
		Where("user_id = ? AND achievement_id = ? AND is_claimed = ?", userID, achievementID, false).
		Updates(map[string]interface{}{
			"is_claimed": true,
			"claimed_at": claimedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
