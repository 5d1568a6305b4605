package achievement

import (
	"HR-Platform-Backend/domain"
	"HR-Platform-Backend/entities"
	"HR-Platform-Backend/internal/utils/storage"
	"HR-Platform-Backend/pkg/coin"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AchievementService interface {
		CreateAchievement(ctx context.Context, req domain.CreateAchievementRequest) (*domain.Achievement, error)
		UpdateAchievement(ctx context.Context, id string, req domain.UpdateAchievementRequest) (*domain.Achievement, error)
		DeleteAchievement(ctx context.Context, id string) error
		UploadIcon(ctx context.Context, id string, file *multipart.FileHeader) (*domain.Achievement, error)
		GetAchievements(ctx context.Context, includeInactive bool) ([]*domain.Achievement, error)

		CheckAndUnlock(ctx context.Context, userID string) ([]*domain.UnlockedAchievement, error)
		Claim(ctx context.Context, userID, achievementID string) error
		Progress(ctx context.Context, userID string) (*domain.AchievementProgress, error)
	}

	achievementService struct {
		achievementRepository AchievementRepository
		coinService           coin.CoinService
		s3                    storage.AwsS3
	}
)

func NewAchievementService(achievementRepository AchievementRepository, coinService coin.CoinService, s3 storage.AwsS3) AchievementService {
	return &achievementService{
		achievementRepository: achievementRepository,
		coinService:           coinService,
		s3:                    s3,
	}
}

func (s *achievementService) CreateAchievement(ctx context.Context, req domain.CreateAchievementRequest) (*domain.Achievement, error) {
	achievementID := uuid.New()

	var iconURL string
	if req.Icon != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("achievement-%s", achievementID.String()),
			req.Icon,
			"achievements",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		iconURL = s.s3.GetPublicLinkKey(objectKey)
	}

	achievement := &entities.Achievement{
		ID:                achievementID,
		Title:             req.Title,
		Description:       req.Description,
		IconURL:           iconURL,
		RequiredCoins:     req.RequiredCoins,
		UnlockType:        req.UnlockType,
		UnlockDescription: req.UnlockDescription,
		Category:          req.Category,
		BadgeColor:        req.BadgeColor,
		SortOrder:         req.SortOrder,
		IsActive:          true,
	}

	if err := s.achievementRepository.CreateAchievement(ctx, achievement); err != nil {
		return nil, err
	}

	return toDomainAchievement(achievement), nil
}

func (s *achievementService) UpdateAchievement(ctx context.Context, id string, req domain.UpdateAchievementRequest) (*domain.Achievement, error) {
	achievement, err := s.achievementRepository.GetAchievementByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAchievementNotFound
		}
		return nil, err
	}

	if req.Title != "" {
		achievement.Title = req.Title
	}
	if req.Description != "" {
		achievement.Description = req.Description
	}
	if req.RequiredCoins != nil {
		achievement.RequiredCoins = *req.RequiredCoins
	}
	if req.UnlockType != "" {
		achievement.UnlockType = req.UnlockType
	}
	if req.UnlockDescription != "" {
		achievement.UnlockDescription = req.UnlockDescription
	}
	if req.Category != "" {
		achievement.Category = req.Category
	}
	if req.BadgeColor != "" {
		achievement.BadgeColor = req.BadgeColor
	}
	if req.SortOrder != nil {
		achievement.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		achievement.IsActive = *req.IsActive
	}

	if err := s.achievementRepository.UpdateAchievement(ctx, achievement); err != nil {
		return nil, err
	}

	return toDomainAchievement(achievement), nil
}

func (s *achievementService) DeleteAchievement(ctx context.Context, id string) error {
	if _, err := s.achievementRepository.GetAchievementByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAchievementNotFound
		}
		return err
	}
	return s.achievementRepository.DeleteAchievement(ctx, id)
}

func (s *achievementService) UploadIcon(ctx context.Context, id string, file *multipart.FileHeader) (*domain.Achievement, error) {
	achievement, err := s.achievementRepository.GetAchievementByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAchievementNotFound
		}
		return nil, err
	}

	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("achievement-%s", id),
		file,
		"achievements",
		storage.AllowImage...,
	)
	if err != nil {
		return nil, err
	}

	achievement.IconURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.achievementRepository.UpdateAchievement(ctx, achievement); err != nil {
		return nil, err
	}

	return toDomainAchievement(achievement), nil
}

func (s *achievementService) GetAchievements(ctx context.Context, includeInactive bool) ([]*domain.Achievement, error) {
	var achievements []*entities.Achievement
	var err error
	if includeInactive {
		achievements, err = s.achievementRepository.ListAchievements(ctx)
	} else {
		achievements, err = s.achievementRepository.GetActiveAchievements(ctx)
	}
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Achievement, 0, len(achievements))
	for _, a := range achievements {
		result = append(result, toDomainAchievement(a))
	}
	return result, nil
}

// CheckAndUnlock compares the current balance against every active
// achievement the user has not unlocked yet and unlocks all newly eligible
// ones in a single pass. Safe to call repeatedly and concurrently: the
// conflict-ignore insert makes a lost race a no-op.
func (s *achievementService) CheckAndUnlock(ctx context.Context, userID string) ([]*domain.UnlockedAchievement, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	balance, err := s.coinService.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.achievementRepository.GetActiveAchievements(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.achievementRepository.GetUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked := make(map[uuid.UUID]bool, len(existing))
	for _, e := range existing {
		unlocked[e.AchievementID] = true
	}

	var newlyUnlocked []*domain.UnlockedAchievement
	for _, a := range achievements {
		if unlocked[a.ID] || balance.Current < a.RequiredCoins {
			continue
		}

		now := time.Now()
		inserted, err := s.achievementRepository.CreateUserAchievement(ctx, &entities.UserCoinAchievement{
			ID:            uuid.New(),
			UserID:        userUUID,
			AchievementID: a.ID,
			UnlockedAt:    now,
		})
		if err != nil {
			return nil, err
		}
		if !inserted {
			// another concurrent check got there first
			continue
		}

		newlyUnlocked = append(newlyUnlocked, &domain.UnlockedAchievement{
			ID:            a.ID.String(),
			Title:         a.Title,
			RequiredCoins: a.RequiredCoins,
			UnlockType:    a.UnlockType,
			BadgeColor:    a.BadgeColor,
			UnlockedAt:    now,
		})
	}

	return newlyUnlocked, nil
}

// Claim acknowledges an unlocked achievement. It grants no coins; the unlock
// itself is what carries the reward semantics via UnlockType.
func (s *achievementService) Claim(ctx context.Context, userID, achievementID string) error {
	unlock, err := s.achievementRepository.GetUserAchievement(ctx, userID, achievementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAchievementNotUnlocked
		}
		return err
	}
	if unlock.IsClaimed {
		return domain.ErrAchievementAlreadyClaimed
	}

	rows, err := s.achievementRepository.MarkClaimed(ctx, userID, achievementID, time.Now())
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAchievementAlreadyClaimed
	}
	return nil
}

func (s *achievementService) Progress(ctx context.Context, userID string) (*domain.AchievementProgress, error) {
	balance, err := s.coinService.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.achievementRepository.GetActiveAchievements(ctx)
	if err != nil {
		return nil, err
	}

	unlocks, err := s.achievementRepository.GetUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlockByID := make(map[uuid.UUID]*entities.UserCoinAchievement, len(unlocks))
	for _, u := range unlocks {
		unlockByID[u.AchievementID] = u
	}

	progress := &domain.AchievementProgress{
		CurrentBalance: balance.Current,
		Unlocked:       []*domain.UserAchievement{},
		Locked:         []*domain.Achievement{},
	}

	// achievements come back ordered by required_coins ascending, so the
	// first locked one is the next target
	for _, a := range achievements {
		if unlock, ok := unlockByID[a.ID]; ok {
			progress.Unlocked = append(progress.Unlocked, &domain.UserAchievement{
				Achievement: *toDomainAchievement(a),
				UnlockedAt:  unlock.UnlockedAt,
				IsClaimed:   unlock.IsClaimed,
				ClaimedAt:   unlock.ClaimedAt,
			})
			continue
		}

		if progress.NextTarget == nil {
			progress.NextTarget = toDomainAchievement(a)
			progress.CoinsToNext = a.RequiredCoins - balance.Current
			if progress.CoinsToNext < 0 {
				progress.CoinsToNext = 0
			}
		}
		progress.Locked = append(progress.Locked, toDomainAchievement(a))
	}

	return progress, nil
}

func toDomainAchievement(a *entities.Achievement) *domain.Achievement {
	return &domain.Achievement{
		ID:                a.ID.String(),
		Title:             a.Title,
		Description:       a.Description,
		IconURL:           a.IconURL,
		RequiredCoins:     a.RequiredCoins,
		UnlockType:        a.UnlockType,
		UnlockDescription: a.UnlockDescription,
		Category:          a.Category,
		BadgeColor:        a.BadgeColor,
		SortOrder:         a.SortOrder,
		IsActive:          a.IsActive,
	}
}
