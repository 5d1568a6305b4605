package achievement

import (
	"HR-Platform-Backend/domain"
	"HR-Platform-Backend/entities"
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeAchievementRepository struct {
	achievements []*entities.Achievement
	unlocks      map[string]*entities.UserCoinAchievement
}

func newFakeAchievementRepository(achievements ...*entities.Achievement) *fakeAchievementRepository {
	return &fakeAchievementRepository{
		achievements: achievements,
		unlocks:      make(map[string]*entities.UserCoinAchievement),
	}
}

func unlockKey(userID, achievementID string) string {
	return userID + "|" + achievementID
}

func (f *fakeAchievementRepository) CreateAchievement(_ context.Context, achievement *entities.Achievement) error {
	f.achievements = append(f.achievements, achievement)
	return nil
}

func (f *fakeAchievementRepository) UpdateAchievement(_ context.Context, _ *entities.Achievement) error {
	return nil
}

func (f *fakeAchievementRepository) DeleteAchievement(_ context.Context, id string) error {
	for i, a := range f.achievements {
		if a.ID.String() == id {
			f.achievements = append(f.achievements[:i], f.achievements[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeAchievementRepository) GetAchievementByID(_ context.Context, id string) (*entities.Achievement, error) {
	for _, a := range f.achievements {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAchievementRepository) GetActiveAchievements(_ context.Context) ([]*entities.Achievement, error) {
	var active []*entities.Achievement
	for _, a := range f.achievements {
		if a.IsActive {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].RequiredCoins < active[j].RequiredCoins
	})
	return active, nil
}

func (f *fakeAchievementRepository) ListAchievements(_ context.Context) ([]*entities.Achievement, error) {
	return f.achievements, nil
}

func (f *fakeAchievementRepository) GetUserAchievements(_ context.Context, userID string) ([]*entities.UserCoinAchievement, error) {
	var result []*entities.UserCoinAchievement
	for _, u := range f.unlocks {
		if u.UserID.String() == userID {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f *fakeAchievementRepository) GetUserAchievement(_ context.Context, userID, achievementID string) (*entities.UserCoinAchievement, error) {
	if unlock, ok := f.unlocks[unlockKey(userID, achievementID)]; ok {
		return unlock, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAchievementRepository) CreateUserAchievement(_ context.Context, unlock *entities.UserCoinAchievement) (bool, error) {
	key := unlockKey(unlock.UserID.String(), unlock.AchievementID.String())
	if _, exists := f.unlocks[key]; exists {
		return false, nil
	}
	f.unlocks[key] = unlock
	return true, nil
}

func (f *fakeAchievementRepository) MarkClaimed(_ context.Context, userID, achievementID string, claimedAt time.Time) (int64, error) {
	unlock, ok := f.unlocks[unlockKey(userID, achievementID)]
	if !ok || unlock.IsClaimed {
		return 0, nil
	}
	unlock.IsClaimed = true
	unlock.ClaimedAt = &claimedAt
	return 1, nil
}

type fakeBalanceService struct {
	current int
}

func (f *fakeBalanceService) Append(_ context.Context, _ domain.AppendCoinRequest) (string, error) {
	return "", nil
}

func (f *fakeBalanceService) Balance(_ context.Context, _ string) (*domain.CoinBalance, error) {
	return &domain.CoinBalance{Current: f.current}, nil
}

func (f *fakeBalanceService) Transactions(_ context.Context, _ string, _, _ int) ([]*domain.CoinTransaction, int64, error) {
	return nil, 0, nil
}

func newTestAchievement(title string, requiredCoins int) *entities.Achievement {
	return &entities.Achievement{
		ID:            uuid.New(),
		Title:         title,
		RequiredCoins: requiredCoins,
		UnlockType:    "Privilege",
		Category:      "Milestone",
		IsActive:      true,
	}
}

func TestCheckAndUnlockIsIdempotent(t *testing.T) {
	bronze := newTestAchievement("Bronze", 100)
	silver := newTestAchievement("Silver", 200)
	repo := newFakeAchievementRepository(bronze, silver)
	service := NewAchievementService(repo, &fakeBalanceService{current: 150}, nil)

	userID := uuid.New().String()

	unlocked, err := service.CheckAndUnlock(context.Background(), userID)
	if err != nil {
		t.Fatalf("CheckAndUnlock() error = %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].ID != bronze.ID.String() {
		t.Fatalf("first check unlocked %d achievements, want just Bronze", len(unlocked))
	}

	for i := 0; i < 3; i++ {
		unlocked, err = service.CheckAndUnlock(context.Background(), userID)
		if err != nil {
			t.Fatalf("CheckAndUnlock() error = %v", err)
		}
		if len(unlocked) != 0 {
			t.Fatalf("repeat check unlocked %d achievements, want 0", len(unlocked))
		}
	}

	if len(repo.unlocks) != 1 {
		t.Errorf("unlock rows = %d, want exactly 1", len(repo.unlocks))
	}
}

func TestCheckAndUnlockCatchesUpInOnePass(t *testing.T) {
	bronze := newTestAchievement("Bronze", 100)
	silver := newTestAchievement("Silver", 200)
	gold := newTestAchievement("Gold", 500)
	repo := newFakeAchievementRepository(bronze, silver, gold)
	service := NewAchievementService(repo, &fakeBalanceService{current: 250}, nil)

	unlocked, err := service.CheckAndUnlock(context.Background(), uuid.New().String())
	if err != nil {
		t.Fatalf("CheckAndUnlock() error = %v", err)
	}
	if len(unlocked) != 2 {
		t.Fatalf("unlocked %d achievements, want 2", len(unlocked))
	}
	if unlocked[0].ID != bronze.ID.String() || unlocked[1].ID != silver.ID.String() {
		t.Errorf("unlock order = [%s %s], want Bronze then Silver", unlocked[0].Title, unlocked[1].Title)
	}
}

func TestClaimLifecycle(t *testing.T) {
	bronze := newTestAchievement("Bronze", 100)
	repo := newFakeAchievementRepository(bronze)
	service := NewAchievementService(repo, &fakeBalanceService{current: 150}, nil)

	userID := uuid.New().String()
	achievementID := bronze.ID.String()

	if err := service.Claim(context.Background(), userID, achievementID); !errors.Is(err, domain.ErrAchievementNotUnlocked) {
		t.Fatalf("Claim() before unlock error = %v, want %v", err, domain.ErrAchievementNotUnlocked)
	}

	if _, err := service.CheckAndUnlock(context.Background(), userID); err != nil {
		t.Fatalf("CheckAndUnlock() error = %v", err)
	}

	if err := service.Claim(context.Background(), userID, achievementID); err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	unlock := repo.unlocks[unlockKey(userID, achievementID)]
	if !unlock.IsClaimed || unlock.ClaimedAt == nil {
		t.Errorf("unlock after claim = claimed:%v claimed_at:%v, want claimed with a timestamp", unlock.IsClaimed, unlock.ClaimedAt)
	}

	if err := service.Claim(context.Background(), userID, achievementID); !errors.Is(err, domain.ErrAchievementAlreadyClaimed) {
		t.Errorf("second Claim() error = %v, want %v", err, domain.ErrAchievementAlreadyClaimed)
	}
}

func TestProgressReportsNextTarget(t *testing.T) {
	bronze := newTestAchievement("Bronze", 100)
	silver := newTestAchievement("Silver", 200)
	gold := newTestAchievement("Gold", 500)
	repo := newFakeAchievementRepository(bronze, silver, gold)
	service := NewAchievementService(repo, &fakeBalanceService{current: 150}, nil)

	userID := uuid.New().String()
	if _, err := service.CheckAndUnlock(context.Background(), userID); err != nil {
		t.Fatalf("CheckAndUnlock() error = %v", err)
	}

	progress, err := service.Progress(context.Background(), userID)
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}

	if progress.CurrentBalance != 150 {
		t.Errorf("CurrentBalance = %d, want 150", progress.CurrentBalance)
	}
	if len(progress.Unlocked) != 1 || len(progress.Locked) != 2 {
		t.Fatalf("unlocked/locked = %d/%d, want 1/2", len(progress.Unlocked), len(progress.Locked))
	}
	if progress.NextTarget == nil || progress.NextTarget.ID != silver.ID.String() {
		t.Fatalf("NextTarget = %v, want Silver", progress.NextTarget)
	}
	if progress.CoinsToNext != 50 {
		t.Errorf("CoinsToNext = %d, want 50", progress.CoinsToNext)
	}
}
