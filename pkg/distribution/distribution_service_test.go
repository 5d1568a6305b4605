package distribution

import (
	"HR-Platform-Backend/domain"
	"HR-Platform-Backend/entities"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
)

type fakeCoinService struct {
	appends []domain.AppendCoinRequest
	failFor map[string]error
}

func (f *fakeCoinService) Append(_ context.Context, req domain.AppendCoinRequest) (string, error) {
	if err, ok := f.failFor[req.UserID]; ok {
		return "", err
	}
	f.appends = append(f.appends, req)
	return uuid.New().String(), nil
}

func (f *fakeCoinService) Balance(_ context.Context, _ string) (*domain.CoinBalance, error) {
	return &domain.CoinBalance{}, nil
}

func (f *fakeCoinService) Transactions(_ context.Context, _ string, _, _ int) ([]*domain.CoinTransaction, int64, error) {
	return nil, 0, nil
}

type fakeAchievementService struct {
	checkedUsers []string
}

func (f *fakeAchievementService) CreateAchievement(_ context.Context, _ domain.CreateAchievementRequest) (*domain.Achievement, error) {
	return nil, nil
}

func (f *fakeAchievementService) UpdateAchievement(_ context.Context, _ string, _ domain.UpdateAchievementRequest) (*domain.Achievement, error) {
	return nil, nil
}

func (f *fakeAchievementService) DeleteAchievement(_ context.Context, _ string) error {
	return nil
}

func (f *fakeAchievementService) UploadIcon(_ context.Context, _ string, _ *multipart.FileHeader) (*domain.Achievement, error) {
	return nil, nil
}

func (f *fakeAchievementService) GetAchievements(_ context.Context, _ bool) ([]*domain.Achievement, error) {
	return nil, nil
}

func (f *fakeAchievementService) CheckAndUnlock(_ context.Context, userID string) ([]*domain.UnlockedAchievement, error) {
	f.checkedUsers = append(f.checkedUsers, userID)
	return nil, nil
}

func (f *fakeAchievementService) Claim(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeAchievementService) Progress(_ context.Context, _ string) (*domain.AchievementProgress, error) {
	return nil, nil
}

type fakeUserRepository struct {
	existing map[string]bool
}

func (f *fakeUserRepository) CreateUser(_ context.Context, _ *entities.User) error {
	return nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, _ string) (*entities.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, _ string) (*entities.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) UserExists(_ context.Context, id string) (bool, error) {
	return f.existing[id], nil
}

func TestDistributeRejectsNonPositiveAmount(t *testing.T) {
	service := NewDistributionService(&fakeCoinService{}, &fakeAchievementService{}, &fakeUserRepository{})

	for _, amount := range []int{0, -25} {
		_, err := service.DistributeToUsers(context.Background(), domain.DistributeCoinsRequest{
			UserIDs: []string{uuid.New().String()},
			Amount:  amount,
			Reason:  "Town hall raffle",
		}, uuid.New().String())
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("DistributeToUsers(amount=%d) error = %v, want %v", amount, err, domain.ErrInvalidAmount)
		}
	}
}

func TestDistributeGrantsEachUserOnce(t *testing.T) {
	alice := uuid.New().String()
	bob := uuid.New().String()
	coins := &fakeCoinService{}
	achievements := &fakeAchievementService{}
	users := &fakeUserRepository{existing: map[string]bool{alice: true, bob: true}}
	service := NewDistributionService(coins, achievements, users)

	adminID := uuid.New().String()
	resp, err := service.DistributeToUsers(context.Background(), domain.DistributeCoinsRequest{
		UserIDs: []string{alice, bob, alice},
		Amount:  25,
		Reason:  "Hackathon prize",
	}, adminID)
	if err != nil {
		t.Fatalf("DistributeToUsers() error = %v", err)
	}

	if resp.GrantedCount != 2 {
		t.Errorf("GrantedCount = %d, want 2 despite the duplicate id", resp.GrantedCount)
	}
	if len(resp.Failed) != 0 {
		t.Errorf("Failed = %v, want empty", resp.Failed)
	}
	if len(coins.appends) != 2 {
		t.Fatalf("ledger appends = %d, want 2", len(coins.appends))
	}
	for _, req := range coins.appends {
		if req.Amount != 25 || req.Type != entities.TransactionEarned {
			t.Errorf("append = %d/%s, want 25/%s", req.Amount, req.Type, entities.TransactionEarned)
		}
		if req.DistributedBy != adminID {
			t.Errorf("DistributedBy = %s, want %s", req.DistributedBy, adminID)
		}
	}
	if len(achievements.checkedUsers) != 2 {
		t.Errorf("achievement checks = %d, want one per granted user", len(achievements.checkedUsers))
	}
}

func TestDistributeReportsFailuresWithoutRollback(t *testing.T) {
	alice := uuid.New().String()
	ghost := uuid.New().String()
	broken := uuid.New().String()

	coins := &fakeCoinService{failFor: map[string]error{broken: errors.New("write failed")}}
	achievements := &fakeAchievementService{}
	users := &fakeUserRepository{existing: map[string]bool{alice: true, broken: true}}
	service := NewDistributionService(coins, achievements, users)

	resp, err := service.DistributeToUsers(context.Background(), domain.DistributeCoinsRequest{
		UserIDs: []string{alice, ghost, broken},
		Amount:  10,
		Reason:  "Spot bonus",
	}, uuid.New().String())
	if err != nil {
		t.Fatalf("DistributeToUsers() error = %v", err)
	}

	if resp.GrantedCount != 1 {
		t.Errorf("GrantedCount = %d, want 1", resp.GrantedCount)
	}
	if len(resp.Failed) != 2 {
		t.Fatalf("Failed = %d entries, want 2", len(resp.Failed))
	}

	failedIDs := map[string]string{}
	for _, failure := range resp.Failed {
		failedIDs[failure.UserID] = failure.Error
	}
	if failedIDs[ghost] != domain.ErrUserNotFound.Error() {
		t.Errorf("ghost failure = %q, want %q", failedIDs[ghost], domain.ErrUserNotFound.Error())
	}
	if failedIDs[broken] != "write failed" {
		t.Errorf("broken failure = %q, want the append error", failedIDs[broken])
	}

	if len(achievements.checkedUsers) != 1 || achievements.checkedUsers[0] != alice {
		t.Errorf("achievement checks = %v, want only the granted user", achievements.checkedUsers)
	}
}
