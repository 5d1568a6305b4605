package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessEarnCoins       = "coins awarded successfully"
	MessageSuccessGetBalance      = "coin balance retrieved successfully"
	MessageSuccessGetCoinHistory  = "coin transaction history retrieved successfully"
	MessageSuccessDistributeCoins = "coins distributed successfully"

	MessageFailedEarnCoins       = "failed to award coins"
	MessageFailedGetBalance      = "failed to retrieve coin balance"
	MessageFailedGetCoinHistory  = "failed to retrieve coin transaction history"
	MessageFailedDistributeCoins = "failed to distribute coins"

	ErrInvalidAmount          = errors.New("amount must be a positive integer")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInsufficientCoins      = errors.New("insufficient coins")
)

type (
	// AppendCoinRequest is the service-level append contract. Every coin
	// movement in the system goes through it, award and debit alike.
	AppendCoinRequest struct {
		UserID        string
		Amount        int
		Type          string
		Reason        string
		Reference     string
		DistributedBy string
		Metadata      map[string]string
	}

	EarnCoinsRequest struct {
		Amount    int    `json:"amount" validate:"required,min=1"`
		Reason    string `json:"reason" validate:"required"`
		Reference string `json:"reference,omitempty"`
	}

	CoinBalance struct {
		Current      int `json:"current"`
		YearlyEarned int `json:"yearly_earned"`
		YearlySpent  int `json:"yearly_spent"`
		TotalEarned  int `json:"total_earned"`
		TotalSpent   int `json:"total_spent"`
		Year         int `json:"year"`
	}

	CoinTransaction struct {
		ID            string    `json:"id"`
		UserID        string    `json:"user_id"`
		Amount        int       `json:"amount"`
		Type          string    `json:"type"`
		Reason        string    `json:"reason"`
		Reference     string    `json:"reference,omitempty"`
		DistributedBy string    `json:"distributed_by,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
	}

	DistributeCoinsRequest struct {
		UserIDs []string `json:"user_ids" validate:"required,min=1,dive,uuid"`
		Amount  int      `json:"amount" validate:"required,min=1"`
		Reason  string   `json:"reason" validate:"required"`
	}

	DistributeFailure struct {
		UserID string `json:"user_id"`
		Error  string `json:"error"`
	}

	DistributeCoinsResponse struct {
		GrantedCount int                 `json:"granted_count"`
		Failed       []DistributeFailure `json:"failed,omitempty"`
	}
)
