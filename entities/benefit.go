package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	BenefitStatusPending   = "Pending"
	BenefitStatusApproved  = "Approved"
	BenefitStatusRejected  = "Rejected"
	BenefitStatusCancelled = "Cancelled"
)

type Benefit struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Title             string    `json:"title"`
	Category          string    `json:"category"`
	ShortDescription  string    `json:"short_description"`
	Value             string    `json:"value,omitempty"`
	EligibilityMonths int       `json:"eligibility_months"`
	MaxUsers          *int      `json:"max_users,omitempty"` // nil = unlimited
	CurrentUsers      int       `json:"current_users"`
	CoinPrice         *int      `json:"coin_price,omitempty"` // nil = not purchasable
	RequiresApproval  bool      `json:"requires_approval"`
	InstantApproval   bool      `json:"instant_approval"`
	IsApproved        bool      `json:"is_approved"` // admin enable flag
	ImageURL          string    `json:"image_url,omitempty"`

	Timestamp
}

type UserBenefit struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID  `gorm:"index" json:"user_id"`
	BenefitID       uuid.UUID  `gorm:"index" json:"benefit_id"`
	Status          string     `json:"status"` // Pending, Approved, Rejected, Cancelled
	Notes           string     `json:"notes,omitempty"`
	AdminNotes      string     `json:"admin_notes,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CoinCost        int        `json:"coin_cost"` // 0 for free requests
	RequestedAt     time.Time  `json:"requested_at"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	DecidedBy       *uuid.UUID `json:"decided_by,omitempty"`

	User    *User    `gorm:"foreignKey:UserID"`
	Benefit *Benefit `gorm:"foreignKey:BenefitID"`
	Timestamp
}
