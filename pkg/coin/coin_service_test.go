package coin

import (
	"HR-Platform-Backend/domain"
	"HR-Platform-Backend/entities"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeCoinRepository struct {
	transactions []*entities.CoinTransaction
}

func (f *fakeCoinRepository) CreateTransaction(_ context.Context, tx *entities.CoinTransaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeCoinRepository) CreateTransactionTx(_ *gorm.DB, tx *entities.CoinTransaction) error {
	return f.CreateTransaction(context.Background(), tx)
}

func (f *fakeCoinRepository) SumByType(_ context.Context, userID string, txType string, since *time.Time) (int, error) {
	total := 0
	for _, tx := range f.transactions {
		if tx.UserID.String() != userID || tx.Type != txType {
			continue
		}
		if since != nil && tx.CreatedAt.Before(*since) {
			continue
		}
		total += tx.Amount
	}
	return total, nil
}

func (f *fakeCoinRepository) GetUserTransactions(_ context.Context, userID string, _, _ int) ([]*entities.CoinTransaction, int64, error) {
	var result []*entities.CoinTransaction
	for i := len(f.transactions) - 1; i >= 0; i-- {
		if f.transactions[i].UserID.String() == userID {
			result = append(result, f.transactions[i])
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeCoinRepository) LockAndGetBalance(_ *gorm.DB, userID string) (int, error) {
	earned, _ := f.SumByType(context.Background(), userID, entities.TransactionEarned, nil)
	spent, _ := f.SumByType(context.Background(), userID, entities.TransactionSpent, nil)
	return earned - spent, nil
}

func TestAppendValidation(t *testing.T) {
	userID := uuid.New().String()

	tests := []struct {
		name    string
		req     domain.AppendCoinRequest
		wantErr error
	}{
		{
			name:    "zero amount",
			req:     domain.AppendCoinRequest{UserID: userID, Amount: 0, Type: entities.TransactionEarned},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     domain.AppendCoinRequest{UserID: userID, Amount: -10, Type: entities.TransactionEarned},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "unknown transaction type",
			req:     domain.AppendCoinRequest{UserID: userID, Amount: 10, Type: "Borrowed"},
			wantErr: domain.ErrInvalidTransactionType,
		},
		{
			name:    "malformed user id",
			req:     domain.AppendCoinRequest{UserID: "not-a-uuid", Amount: 10, Type: entities.TransactionEarned},
			wantErr: domain.ErrParseUUID,
		},
		{
			name:    "malformed distributor id",
			req:     domain.AppendCoinRequest{UserID: userID, Amount: 10, Type: entities.TransactionEarned, DistributedBy: "bogus"},
			wantErr: domain.ErrParseUUID,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeCoinRepository{}
			service := NewCoinService(repo)

			_, err := service.Append(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Append() error = %v, want %v", err, tc.wantErr)
			}
			if len(repo.transactions) != 0 {
				t.Errorf("Append() wrote %d transactions, want 0", len(repo.transactions))
			}
		})
	}
}

func TestAppendStoresTransaction(t *testing.T) {
	repo := &fakeCoinRepository{}
	service := NewCoinService(repo)

	userID := uuid.New().String()
	adminID := uuid.New().String()

	id, err := service.Append(context.Background(), domain.AppendCoinRequest{
		UserID:        userID,
		Amount:        150,
		Type:          entities.TransactionEarned,
		Reason:        "Quiz completion",
		Reference:     "quiz-42",
		DistributedBy: adminID,
		Metadata:      map[string]string{"quiz_id": "42"},
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("Append() returned id %q, want a uuid", id)
	}

	if len(repo.transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(repo.transactions))
	}
	tx := repo.transactions[0]
	if tx.Amount != 150 || tx.Type != entities.TransactionEarned {
		t.Errorf("stored amount/type = %d/%s, want 150/%s", tx.Amount, tx.Type, entities.TransactionEarned)
	}
	if tx.Reference != "quiz-42" {
		t.Errorf("stored reference = %q, want %q", tx.Reference, "quiz-42")
	}
	if tx.DistributedBy == nil || tx.DistributedBy.String() != adminID {
		t.Errorf("stored distributed_by = %v, want %s", tx.DistributedBy, adminID)
	}
	if !strings.Contains(tx.Metadata, "quiz_id") {
		t.Errorf("stored metadata = %q, want it to carry quiz_id", tx.Metadata)
	}
}

func TestBalanceIsDerivedFromTheLog(t *testing.T) {
	repo := &fakeCoinRepository{}
	service := NewCoinService(repo)

	userUUID := uuid.New()
	otherUUID := uuid.New()
	now := time.Now()
	lastYear := now.AddDate(-1, 0, 0)

	seed := []*entities.CoinTransaction{
		{ID: uuid.New(), UserID: userUUID, Amount: 100, Type: entities.TransactionEarned, Timestamp: entities.Timestamp{CreatedAt: lastYear}},
		{ID: uuid.New(), UserID: userUUID, Amount: 150, Type: entities.TransactionEarned, Timestamp: entities.Timestamp{CreatedAt: now}},
		{ID: uuid.New(), UserID: userUUID, Amount: 40, Type: entities.TransactionSpent, Timestamp: entities.Timestamp{CreatedAt: now}},
		{ID: uuid.New(), UserID: otherUUID, Amount: 999, Type: entities.TransactionEarned, Timestamp: entities.Timestamp{CreatedAt: now}},
	}
	repo.transactions = append(repo.transactions, seed...)

	balance, err := service.Balance(context.Background(), userUUID.String())
	if err != nil {
		t.Fatalf("Balance() error = %v", err)
	}

	if balance.Current != 210 {
		t.Errorf("Current = %d, want 210", balance.Current)
	}
	if balance.TotalEarned != 250 || balance.TotalSpent != 40 {
		t.Errorf("totals = %d earned / %d spent, want 250/40", balance.TotalEarned, balance.TotalSpent)
	}
	if balance.YearlyEarned != 150 || balance.YearlySpent != 40 {
		t.Errorf("yearly = %d earned / %d spent, want 150/40", balance.YearlyEarned, balance.YearlySpent)
	}
	if balance.Year != now.Year() {
		t.Errorf("Year = %d, want %d", balance.Year, now.Year())
	}
}

func TestTransactionsNewestFirst(t *testing.T) {
	repo := &fakeCoinRepository{}
	service := NewCoinService(repo)

	userID := uuid.New().String()
	first, err := service.Append(context.Background(), domain.AppendCoinRequest{
		UserID: userID, Amount: 10, Type: entities.TransactionEarned, Reason: "first",
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	second, err := service.Append(context.Background(), domain.AppendCoinRequest{
		UserID: userID, Amount: 5, Type: entities.TransactionSpent, Reason: "second",
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	transactions, count, err := service.Transactions(context.Background(), userID, 1, 10)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if count != 2 || len(transactions) != 2 {
		t.Fatalf("got %d transactions (count %d), want 2", len(transactions), count)
	}
	if transactions[0].ID != second || transactions[1].ID != first {
		t.Errorf("order = [%s %s], want newest first", transactions[0].ID, transactions[1].ID)
	}
	if transactions[0].Type != entities.TransactionSpent || transactions[0].Amount != 5 {
		t.Errorf("newest = %s/%d, want %s/5", transactions[0].Type, transactions[0].Amount, entities.TransactionSpent)
	}
}
