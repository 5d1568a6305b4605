package coin

import (
	"HR-Platform-Backend/domain"
	"HR-Platform-Backend/entities"
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type (
	CoinService interface {
		Append(ctx context.Context, req domain.AppendCoinRequest) (string, error)
		Balance(ctx context.Context, userID string) (*domain.CoinBalance, error)
		Transactions(ctx context.Context, userID string, page, limit int) ([]*domain.CoinTransaction, int64, error)
	}

	coinService struct {
		coinRepository CoinRepository
	}
)

func NewCoinService(coinRepository CoinRepository) CoinService {
	return &coinService{
		coinRepository: coinRepository,
	}
}

// Append is the sole write path into the ledger. Amount must be positive for
// both transaction types; Type determines the sign during balance derivation.
func (s *coinService) Append(ctx context.Context, req domain.AppendCoinRequest) (string, error) {
	if req.Amount <= 0 {
		return "", domain.ErrInvalidAmount
	}
	if req.Type != entities.TransactionEarned && req.Type != entities.TransactionSpent {
		return "", domain.ErrInvalidTransactionType
	}

	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	transaction := &entities.CoinTransaction{
		ID:        uuid.New(),
		UserID:    userUUID,
		Amount:    req.Amount,
		Type:      req.Type,
		Reason:    req.Reason,
		Reference: req.Reference,
	}

	if req.DistributedBy != "" {
		adminUUID, err := uuid.Parse(req.DistributedBy)
		if err != nil {
			return "", domain.ErrParseUUID
		}
		transaction.DistributedBy = &adminUUID
	}

	if len(req.Metadata) > 0 {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return "", err
		}
		transaction.Metadata = string(raw)
	}

	if err := s.coinRepository.CreateTransaction(ctx, transaction); err != nil {
		return "", err
	}

	return transaction.ID.String(), nil
}

// Balance recomputes every figure by summation over the full transaction log.
// There is no cached counter anywhere that could drift from the log.
func (s *coinService) Balance(ctx context.Context, userID string) (*domain.CoinBalance, error) {
	now := time.Now()
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	totalEarned, err := s.coinRepository.SumByType(ctx, userID, entities.TransactionEarned, nil)
	if err != nil {
		return nil, err
	}
	totalSpent, err := s.coinRepository.SumByType(ctx, userID, entities.TransactionSpent, nil)
	if err != nil {
		return nil, err
	}
	yearlyEarned, err := s.coinRepository.SumByType(ctx, userID, entities.TransactionEarned, &startOfYear)
	if err != nil {
		return nil, err
	}
	yearlySpent, err := s.coinRepository.SumByType(ctx, userID, entities.TransactionSpent, &startOfYear)
	if err != nil {
		return nil, err
	}

	return &domain.CoinBalance{
		Current:      totalEarned - totalSpent,
		YearlyEarned: yearlyEarned,
		YearlySpent:  yearlySpent,
		TotalEarned:  totalEarned,
		TotalSpent:   totalSpent,
		Year:         now.Year(),
	}, nil
}

func (s *coinService) Transactions(ctx context.Context, userID string, page, limit int) ([]*domain.CoinTransaction, int64, error) {
	transactions, count, err := s.coinRepository.GetUserTransactions(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.CoinTransaction, 0, len(transactions))
	for _, tx := range transactions {
		item := &domain.CoinTransaction{
			ID:        tx.ID.String(),
			UserID:    tx.UserID.String(),
			Amount:    tx.Amount,
			Type:      tx.Type,
			Reason:    tx.Reason,
			Reference: tx.Reference,
			CreatedAt: tx.CreatedAt,
		}
		if tx.DistributedBy != nil {
			item.DistributedBy = tx.DistributedBy.String()
		}
		result = append(result, item)
	}

	return result, count, nil
}
