package entities

import (
	"github.com/google/uuid"
)

const (
	TransactionEarned = "Earned"
	TransactionSpent  = "Spent"
)

// CoinTransaction is append-only. Rows are never updated or deleted;
// corrections are issued as new offsetting transactions.
type CoinTransaction struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Seq           int64      `gorm:"autoIncrement;uniqueIndex" json:"seq"`
	UserID        uuid.UUID  `gorm:"index" json:"user_id"`
	Amount        int        `json:"amount"` // always positive, Type determines sign
	Type          string     `json:"type"`   // Earned, Spent
	Reason        string     `json:"reason"`
	Reference     string     `gorm:"index" json:"reference,omitempty"`
	DistributedBy *uuid.UUID `json:"distributed_by,omitempty"`
	Metadata      string     `json:"metadata,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
