package distribution

import (
	"HR-Platform-Backend/domain"
	"HR-Platform-Backend/entities"
	"HR-Platform-Backend/pkg/achievement"
	"HR-Platform-Backend/pkg/coin"
	"HR-Platform-Backend/pkg/user"
	"context"

	"github.com/gofiber/fiber/v2/log"
)

type (
	DistributionService interface {
		DistributeToUsers(ctx context.Context, req domain.DistributeCoinsRequest, adminID string) (*domain.DistributeCoinsResponse, error)
	}

	distributionService struct {
		coinService        coin.CoinService
		achievementService achievement.AchievementService
		userRepository     user.UserRepository
	}
)

func NewDistributionService(coinService coin.CoinService, achievementService achievement.AchievementService, userRepository user.UserRepository) DistributionService {
	return &distributionService{
		coinService:        coinService,
		achievementService: achievementService,
		userRepository:     userRepository,
	}
}

// DistributeToUsers grants the same amount to every distinct user in the
// request. Each append is independent: one failed write does not roll back the
// grants that already succeeded, the caller gets the count and the failures.
func (s *distributionService) DistributeToUsers(ctx context.Context, req domain.DistributeCoinsRequest, adminID string) (*domain.DistributeCoinsResponse, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	seen := make(map[string]bool, len(req.UserIDs))
	resp := &domain.DistributeCoinsResponse{}

	for _, userID := range req.UserIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true

		exists, err := s.userRepository.UserExists(ctx, userID)
		if err != nil {
			resp.Failed = append(resp.Failed, domain.DistributeFailure{UserID: userID, Error: err.Error()})
			continue
		}
		if !exists {
			resp.Failed = append(resp.Failed, domain.DistributeFailure{UserID: userID, Error: domain.ErrUserNotFound.Error()})
			continue
		}

		_, err = s.coinService.Append(ctx, domain.AppendCoinRequest{
			UserID:        userID,
			Amount:        req.Amount,
			Type:          entities.TransactionEarned,
			Reason:        req.Reason,
			DistributedBy: adminID,
		})
		if err != nil {
			resp.Failed = append(resp.Failed, domain.DistributeFailure{UserID: userID, Error: err.Error()})
			continue
		}

		resp.GrantedCount++

		// every grant is balance-affecting, so re-run the unlock check
		if _, err := s.achievementService.CheckAndUnlock(ctx, userID); err != nil {
			log.Errorf("achievement check after distribution failed for %s: %v", userID, err)
		}
	}

	return resp, nil
}
