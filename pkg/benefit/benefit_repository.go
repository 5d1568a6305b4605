package benefit

import (
	"HR-Platform-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	BenefitRepository interface {
		WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error

		CreateBenefit(ctx context.Context, benefit *entities.Benefit) error
		UpdateBenefit(ctx context.Context, benefit *entities.Benefit) error
		DeleteBenefit(ctx context.Context, id string) error
		GetBenefitByID(ctx context.Context, id string) (*entities.Benefit, error)
		ListBenefits(ctx context.Context, onlyApproved bool) ([]*entities.Benefit, error)

		CreateUserBenefitTx(tx *gorm.DB, userBenefit *entities.UserBenefit) error
		GetUserBenefitByID(ctx context.Context, id string) (*entities.UserBenefit, error)
		GetActiveUserBenefit(ctx context.Context, userID, benefitID string) (*entities.UserBenefit, error)
		CountActiveForBenefit(ctx context.Context, benefitID string) (int64, error)
		ListUserBenefits(ctx context.Context, userID string) ([]*entities.UserBenefit, error)
		ListRequests(ctx context.Context, status string, page, limit int) ([]*entities.UserBenefit, int64, error)
		UpdateStatusIfPending(tx *gorm.DB, id string, updates map[string]interface{}) (int64, error)
		IncrementCurrentUsersTx(tx *gorm.DB, benefitID string) error
	}

	benefitRepository struct {
		db *gorm.DB
	}
)

func NewBenefitRepository(db *gorm.DB) BenefitRepository {
	return &benefitRepository{
		db: db,
	}
}

// WithTransaction runs fn inside a single DB transaction. It commits when fn
// returns nil and rolls back otherwise.
func (r *benefitRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *benefitRepository) CreateBenefit(ctx context.Context, benefit *entities.Benefit) error {
	return r.db.WithContext(ctx).Create(benefit).Error
}

func (r *benefitRepository) UpdateBenefit(ctx context.Context, benefit *entities.Benefit) error {
	return r.db.WithContext(ctx).Save(benefit).Error
}

func (r *benefitRepository) DeleteBenefit(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entities.Benefit{}).Error
}

func (r *benefitRepository) GetBenefitByID(ctx context.Context, id string) (*entities.Benefit, error) {
	var benefit entities.Benefit
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&benefit).Error; err != nil {
		return nil, err
	}
	return &benefit, nil
}

func (r *benefitRepository) ListBenefits(ctx context.Context, onlyApproved bool) ([]*entities.Benefit, error) {
	var benefits []*entities.Benefit
	query := r.db.WithContext(ctx).Order("title ASC")
	if onlyApproved {
		query = query.Where("is_approved = ?", true)
	}
	if err := query.Find(&benefits).Error; err != nil {
		return nil, err
	}
	return benefits, nil
}

func (r *benefitRepository) CreateUserBenefitTx(tx *gorm.DB, userBenefit *entities.UserBenefit) error {
	return tx.Create(userBenefit).Error
}

func (r *benefitRepository) GetUserBenefitByID(ctx context.Context, id string) (*entities.UserBenefit, error) {
	var userBenefit entities.UserBenefit
	if err := r.db.WithContext(ctx).
		Preload("Benefit").
		Where("id = ?", id).
		First(&userBenefit).Error; err != nil {
		return nil, err
	}
	return &userBenefit, nil
}

func (r *benefitRepository) GetActiveUserBenefit(ctx context.Context, userID, benefitID string) (*entities.UserBenefit, error) {
	var userBenefit entities.UserBenefit
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND benefit_id = ? AND status IN ?",
			userID, benefitID,
			[]string{entities.BenefitStatusPending, entities.BenefitStatusApproved}).
		First(&userBenefit).Error; err != nil {
		return nil, err
	}
	return &userBenefit, nil
}

func (r *benefitRepository) CountActiveForBenefit(ctx context.Context, benefitID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.UserBenefit{}).
		Where("benefit_id = ? AND status IN ?",
			benefitID,
			[]string{entities.BenefitStatusPending, entities.BenefitStatusApproved}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *benefitRepository) ListUserBenefits(ctx context.Context, userID string) ([]*entities.UserBenefit, error) {
	var userBenefits []*entities.UserBenefit
	if err := r.db.WithContext(ctx).
		Preload("Benefit").
		Where("user_id = ?", userID).
		Order("requested_at DESC").
		Find(&userBenefits).Error; err != nil {
		return nil, err
	}
	return userBenefits, nil
}

func (r *benefitRepository) ListRequests(ctx context.Context, status string, page, limit int) ([]*entities.UserBenefit, int64, error) {
	var userBenefits []*entities.UserBenefit
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.UserBenefit{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Benefit").
		Order("requested_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&userBenefits).Error; err != nil {
		return nil, 0, err
	}

	return userBenefits, count, nil
}

// UpdateStatusIfPending performs the state transition conditionally: the
// WHERE clause on the Pending status means a request decided or cancelled by
// a concurrent call yields zero affected rows instead of a double transition.
func (r *benefitRepository) UpdateStatusIfPending(tx *gorm.DB, id string, updates map[string]interface{}) (int64, error) {
	result := tx.
		Model(&entities.UserBenefit{}).
		Where("id = ? AND status = ?", id, entities.BenefitStatusPending).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *benefitRepository) IncrementCurrentUsersTx(tx *gorm.DB, benefitID string) error {
	return tx.
		Model(&entities.Benefit{}).
		Where("id = ?", benefitID).
		Update("current_users", gorm.Expr("current_users + 1")).Error
}
