package coin

import (
	"HR-Platform-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	CoinRepository interface {
		CreateTransaction(ctx context.Context, tx *entities.CoinTransaction) error
		CreateTransactionTx(tx *gorm.DB, transaction *entities.CoinTransaction) error
		SumByType(ctx context.Context, userID string, txType string, since *time.Time) (int, error)
		GetUserTransactions(ctx context.Context, userID string, page, limit int) ([]*entities.CoinTransaction, int64, error)
		LockAndGetBalance(tx *gorm.DB, userID string) (int, error)
	}

	coinRepository struct {
		db *gorm.DB
	}
)

func NewCoinRepository(db *gorm.DB) CoinRepository {
	return &coinRepository{
		db: db,
	}
}

func (r *coinRepository) CreateTransaction(ctx context.Context, tx *entities.CoinTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// CreateTransactionTx appends inside an ongoing DB transaction. Used by the
// benefit purchase flow so the debit commits together with the UserBenefit row.
func (r *coinRepository) CreateTransactionTx(tx *gorm.DB, transaction *entities.CoinTransaction) error {
	return tx.Create(transaction).Error
}

func (r *coinRepository) SumByType(ctx context.Context, userID string, txType string, since *time.Time) (int, error) {
	var total int
	query := r.db.WithContext(ctx).
		Model(&entities.CoinTransaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Select("COALESCE(SUM(amount), 0) as total")
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if err := query.Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *coinRepository) GetUserTransactions(ctx context.Context, userID string, page, limit int) ([]*entities.CoinTransaction, int64, error) {
	var transactions []*entities.CoinTransaction
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.CoinTransaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, seq DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}

// LockAndGetBalance takes a FOR UPDATE lock on the user row and recomputes the
// balance from the transaction log under that lock. Concurrent spends for the
// same user serialize here, which closes the check-then-debit race.
func (r *coinRepository) LockAndGetBalance(tx *gorm.DB, userID string) (int, error) {
	var user entities.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return 0, err
	}

	var earned, spent int
	if err := tx.Model(&entities.CoinTransaction{}).
		Where("user_id = ? AND type = ?", userID, entities.TransactionEarned).
		Select("COALESCE(SUM(amount), 0) as total").
		Row().Scan(&earned); err != nil {
		return 0, err
	}
	if err := tx.Model(&entities.CoinTransaction{}).
		Where("user_id = ? AND type = ?", userID, entities.TransactionSpent).
		Select("COALESCE(SUM(amount), 0) as total").
		Row().Scan(&spent); err != nil {
		return 0, err
	}

	return earned - spent, nil
}
