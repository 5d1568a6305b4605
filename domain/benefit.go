package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetBenefits     = "benefits retrieved successfully"
	MessageSuccessRequestBenefit  = "benefit requested successfully"
	MessageSuccessPurchaseBenefit = "benefit purchased successfully"
	MessageSuccessDecideBenefit   = "benefit request decided successfully"
	MessageSuccessCancelBenefit   = "benefit request cancelled successfully"
	MessageSuccessGetMyBenefits   = "user benefits retrieved successfully"
	MessageSuccessCreateBenefit   = "benefit created successfully"
	MessageSuccessUpdateBenefit   = "benefit updated successfully"
	MessageSuccessDeleteBenefit   = "benefit deleted successfully"

	MessageFailedGetBenefits     = "failed to retrieve benefits"
	MessageFailedRequestBenefit  = "failed to request benefit"
	MessageFailedPurchaseBenefit = "failed to purchase benefit"
	MessageFailedDecideBenefit   = "failed to decide benefit request"
	MessageFailedCancelBenefit   = "failed to cancel benefit request"
	MessageFailedGetMyBenefits   = "failed to retrieve user benefits"
	MessageFailedCreateBenefit   = "failed to create benefit"
	MessageFailedUpdateBenefit   = "failed to update benefit"
	MessageFailedDeleteBenefit   = "failed to delete benefit"

	ErrBenefitNotFound         = errors.New("benefit not found")
	ErrBenefitNotAvailable     = errors.New("benefit not available")
	ErrBenefitNotPurchasable   = errors.New("benefit has no coin price")
	ErrNotEligible             = errors.New("employment tenure requirement not met")
	ErrBenefitFull             = errors.New("benefit capacity reached")
	ErrDuplicateRequest        = errors.New("an active request for this benefit already exists")
	ErrRequestNotFound         = errors.New("benefit request not found")
	ErrInvalidStateTransition  = errors.New("benefit request is not pending")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
)

type (
	CreateBenefitRequest struct {
		Title             string                `json:"title" validate:"required"`
		Category          string                `json:"category" validate:"required"`
		ShortDescription  string                `json:"short_description" validate:"required"`
		Value             string                `json:"value,omitempty"`
		EligibilityMonths int                   `json:"eligibility_months" validate:"min=0"`
		MaxUsers          *int                  `json:"max_users,omitempty" validate:"omitempty,min=1"`
		CoinPrice         *int                  `json:"coin_price,omitempty" validate:"omitempty,min=1"`
		RequiresApproval  bool                  `json:"requires_approval"`
		InstantApproval   bool                  `json:"instant_approval"`
		Image             *multipart.FileHeader `json:"-"`
	}

	UpdateBenefitRequest struct {
		Title             string `json:"title,omitempty"`
		Category          string `json:"category,omitempty"`
		ShortDescription  string `json:"short_description,omitempty"`
		Value             string `json:"value,omitempty"`
		EligibilityMonths *int   `json:"eligibility_months,omitempty" validate:"omitempty,min=0"`
		MaxUsers          *int   `json:"max_users,omitempty" validate:"omitempty,min=1"`
		CoinPrice         *int   `json:"coin_price,omitempty" validate:"omitempty,min=1"`
		RequiresApproval  *bool  `json:"requires_approval,omitempty"`
		InstantApproval   *bool  `json:"instant_approval,omitempty"`
		IsApproved        *bool  `json:"is_approved,omitempty"`
	}

	RequestBenefitRequest struct {
		BenefitID string `json:"benefit_id" validate:"required,uuid"`
		Notes     string `json:"notes,omitempty"`
	}

	PurchaseBenefitRequest struct {
		BenefitID string `json:"benefit_id" validate:"required,uuid"`
	}

	DecideBenefitRequest struct {
		Decision        string `json:"decision" validate:"required,oneof=Approved Rejected"`
		AdminNotes      string `json:"admin_notes,omitempty"`
		RejectionReason string `json:"rejection_reason,omitempty"`
	}

	Benefit struct {
		ID                string `json:"id"`
		Title             string `json:"title"`
		Category          string `json:"category"`
		ShortDescription  string `json:"short_description"`
		Value             string `json:"value,omitempty"`
		EligibilityMonths int    `json:"eligibility_months"`
		MaxUsers          *int   `json:"max_users,omitempty"`
		CurrentUsers      int    `json:"current_users"`
		CoinPrice         *int   `json:"coin_price,omitempty"`
		RequiresApproval  bool   `json:"requires_approval"`
		InstantApproval   bool   `json:"instant_approval"`
		IsApproved        bool   `json:"is_approved"`
		ImageURL          string `json:"image_url,omitempty"`
	}

	UserBenefit struct {
		ID              string     `json:"id"`
		UserID          string     `json:"user_id"`
		BenefitID       string     `json:"benefit_id"`
		BenefitTitle    string     `json:"benefit_title,omitempty"`
		Status          string     `json:"status"`
		Notes           string     `json:"notes,omitempty"`
		AdminNotes      string     `json:"admin_notes,omitempty"`
		RejectionReason string     `json:"rejection_reason,omitempty"`
		CoinCost        int        `json:"coin_cost"`
		RequestedAt     time.Time  `json:"requested_at"`
		DecidedAt       *time.Time `json:"decided_at,omitempty"`
	}
)
