package benefit

import (
	"HR-Platform-Backend/domain"
	"HR-Platform-Backend/entities"
	"HR-Platform-Backend/internal/utils/mailing"
	"HR-Platform-Backend/internal/utils/storage"
	"HR-Platform-Backend/pkg/coin"
	"HR-Platform-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	BenefitService interface {
		CreateBenefit(ctx context.Context, req domain.CreateBenefitRequest) (*domain.Benefit, error)
		UpdateBenefit(ctx context.Context, id string, req domain.UpdateBenefitRequest) (*domain.Benefit, error)
		DeleteBenefit(ctx context.Context, id string) error
		UploadImage(ctx context.Context, id string, file *multipart.FileHeader) (*domain.Benefit, error)
		GetBenefits(ctx context.Context, includeUnapproved bool) ([]*domain.Benefit, error)

		Request(ctx context.Context, userID string, req domain.RequestBenefitRequest) (*domain.UserBenefit, error)
		PurchaseWithCoins(ctx context.Context, userID, benefitID string) (*domain.UserBenefit, error)
		Decide(ctx context.Context, adminID, userBenefitID string, req domain.DecideBenefitRequest) (*domain.UserBenefit, error)
		Cancel(ctx context.Context, userID, userBenefitID string) error
		MyBenefits(ctx context.Context, userID string) ([]*domain.UserBenefit, error)
		ListRequests(ctx context.Context, status string, page, limit int) ([]*domain.UserBenefit, int64, error)
	}

	benefitService struct {
		benefitRepository BenefitRepository
		coinRepository    coin.CoinRepository
		userService       user.UserService
		s3                storage.AwsS3
	}
)

func NewBenefitService(benefitRepository BenefitRepository, coinRepository coin.CoinRepository, userService user.UserService, s3 storage.AwsS3) BenefitService {
	return &benefitService{
		benefitRepository: benefitRepository,
		coinRepository:    coinRepository,
		userService:       userService,
		s3:                s3,
	}
}

func (s *benefitService) CreateBenefit(ctx context.Context, req domain.CreateBenefitRequest) (*domain.Benefit, error) {
	benefitID := uuid.New()

	var imageURL string
	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("benefit-%s", benefitID.String()),
			req.Image,
			"benefits",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	benefit := &entities.Benefit{
		ID:                benefitID,
		Title:             req.Title,
		Category:          req.Category,
		ShortDescription:  req.ShortDescription,
		Value:             req.Value,
		EligibilityMonths: req.EligibilityMonths,
		MaxUsers:          req.MaxUsers,
		CoinPrice:         req.CoinPrice,
		RequiresApproval:  req.RequiresApproval,
		InstantApproval:   req.InstantApproval,
		IsApproved:        true,
		ImageURL:          imageURL,
	}

	if err := s.benefitRepository.CreateBenefit(ctx, benefit); err != nil {
		return nil, err
	}

	return toDomainBenefit(benefit), nil
}

func (s *benefitService) UpdateBenefit(ctx context.Context, id string, req domain.UpdateBenefitRequest) (*domain.Benefit, error) {
	benefit, err := s.benefitRepository.GetBenefitByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBenefitNotFound
		}
		return nil, err
	}

	if req.Title != "" {
		benefit.Title = req.Title
	}
	if req.Category != "" {
		benefit.Category = req.Category
	}
	if req.ShortDescription != "" {
		benefit.ShortDescription = req.ShortDescription
	}
	if req.Value != "" {
		benefit.Value = req.Value
	}
	if req.EligibilityMonths != nil {
		benefit.EligibilityMonths = *req.EligibilityMonths
	}
	if req.MaxUsers != nil {
		benefit.MaxUsers = req.MaxUsers
	}
	if req.CoinPrice != nil {
		benefit.CoinPrice = req.CoinPrice
	}
	if req.RequiresApproval != nil {
		benefit.RequiresApproval = *req.RequiresApproval
	}
	if req.InstantApproval != nil {
		benefit.InstantApproval = *req.InstantApproval
	}
	if req.IsApproved != nil {
		benefit.IsApproved = *req.IsApproved
	}

	if err := s.benefitRepository.UpdateBenefit(ctx, benefit); err != nil {
		return nil, err
	}

	return toDomainBenefit(benefit), nil
}

func (s *benefitService) DeleteBenefit(ctx context.Context, id string) error {
	if _, err := s.benefitRepository.GetBenefitByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBenefitNotFound
		}
		return err
	}
	return s.benefitRepository.DeleteBenefit(ctx, id)
}

func (s *benefitService) UploadImage(ctx context.Context, id string, file *multipart.FileHeader) (*domain.Benefit, error) {
	benefit, err := s.benefitRepository.GetBenefitByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBenefitNotFound
		}
		return nil, err
	}

	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("benefit-%s", id),
		file,
		"benefits",
		storage.AllowImage...,
	)
	if err != nil {
		return nil, err
	}

	benefit.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.benefitRepository.UpdateBenefit(ctx, benefit); err != nil {
		return nil, err
	}

	return toDomainBenefit(benefit), nil
}

func (s *benefitService) GetBenefits(ctx context.Context, includeUnapproved bool) ([]*domain.Benefit, error) {
	benefits, err := s.benefitRepository.ListBenefits(ctx, !includeUnapproved)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Benefit, 0, len(benefits))
	for _, b := range benefits {
		result = append(result, toDomainBenefit(b))
	}
	return result, nil
}

// Request creates a free benefit request: Pending, or Approved right away
// when the benefit is configured for instant approval.
func (s *benefitService) Request(ctx context.Context, userID string, req domain.RequestBenefitRequest) (*domain.UserBenefit, error) {
	benefit, err := s.getAvailableBenefit(ctx, req.BenefitID)
	if err != nil {
		return nil, err
	}

	if err := s.checkEligibility(ctx, userID, benefit); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, userID, req.BenefitID); err != nil {
		return nil, err
	}
	if err := s.checkCapacity(ctx, benefit); err != nil {
		return nil, err
	}

	userBenefit, err := s.newUserBenefit(userID, benefit, req.Notes, 0)
	if err != nil {
		return nil, err
	}

	err = s.benefitRepository.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.benefitRepository.CreateUserBenefitTx(tx, userBenefit); err != nil {
			return err
		}
		if userBenefit.Status == entities.BenefitStatusApproved {
			return s.benefitRepository.IncrementCurrentUsersTx(tx, benefit.ID.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	userBenefit.Benefit = benefit
	return toDomainUserBenefit(userBenefit), nil
}

// PurchaseWithCoins debits the ledger and creates the UserBenefit as one
// atomic unit. The user row is locked FOR UPDATE and the balance recomputed
// under that lock, so two concurrent purchases cannot both pass the funds
// check.
func (s *benefitService) PurchaseWithCoins(ctx context.Context, userID, benefitID string) (*domain.UserBenefit, error) {
	benefit, err := s.getAvailableBenefit(ctx, benefitID)
	if err != nil {
		return nil, err
	}
	if benefit.CoinPrice == nil {
		return nil, domain.ErrBenefitNotPurchasable
	}

	if err := s.checkEligibility(ctx, userID, benefit); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, userID, benefitID); err != nil {
		return nil, err
	}
	if err := s.checkCapacity(ctx, benefit); err != nil {
		return nil, err
	}

	price := *benefit.CoinPrice
	userBenefit, err := s.newUserBenefit(userID, benefit, "", price)
	if err != nil {
		return nil, err
	}
	userUUID := userBenefit.UserID

	err = s.benefitRepository.WithTransaction(ctx, func(tx *gorm.DB) error {
		balance, err := s.coinRepository.LockAndGetBalance(tx, userID)
		if err != nil {
			return err
		}
		if balance < price {
			return domain.ErrInsufficientCoins
		}

		debit := &entities.CoinTransaction{
			ID:     uuid.New(),
			UserID: userUUID,
			Amount: price,
			Type:   entities.TransactionSpent,
			Reason: fmt.Sprintf("Benefit purchase: %s", benefit.Title),
		}
		if err := s.coinRepository.CreateTransactionTx(tx, debit); err != nil {
			return err
		}

		if err := s.benefitRepository.CreateUserBenefitTx(tx, userBenefit); err != nil {
			return err
		}
		if userBenefit.Status == entities.BenefitStatusApproved {
			return s.benefitRepository.IncrementCurrentUsersTx(tx, benefitID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	userBenefit.Benefit = benefit
	return toDomainUserBenefit(userBenefit), nil
}

// Decide resolves a Pending request. Rejecting a coin purchase refunds the
// debit with an offsetting Earned transaction in the same DB transaction.
func (s *benefitService) Decide(ctx context.Context, adminID, userBenefitID string, req domain.DecideBenefitRequest) (*domain.UserBenefit, error) {
	if req.Decision == entities.BenefitStatusRejected && req.RejectionReason == "" {
		return nil, domain.ErrRejectionReasonRequired
	}

	userBenefit, err := s.benefitRepository.GetUserBenefitByID(ctx, userBenefitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      req.Decision,
		"admin_notes": req.AdminNotes,
		"decided_at":  now,
		"decided_by":  adminUUID,
	}
	if req.Decision == entities.BenefitStatusRejected {
		updates["rejection_reason"] = req.RejectionReason
	}

	err = s.benefitRepository.WithTransaction(ctx, func(tx *gorm.DB) error {
		rows, err := s.benefitRepository.UpdateStatusIfPending(tx, userBenefitID, updates)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrInvalidStateTransition
		}

		if req.Decision == entities.BenefitStatusApproved {
			return s.benefitRepository.IncrementCurrentUsersTx(tx, userBenefit.BenefitID.String())
		}
		if userBenefit.CoinCost > 0 {
			return s.refundTx(tx, userBenefit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	userBenefit.Status = req.Decision
	userBenefit.AdminNotes = req.AdminNotes
	userBenefit.RejectionReason = req.RejectionReason
	userBenefit.DecidedAt = &now

	s.notifyDecision(ctx, userBenefit)

	return toDomainUserBenefit(userBenefit), nil
}

// Cancel is available to the requesting user while the request is Pending.
// A cancelled coin purchase refunds the debit.
func (s *benefitService) Cancel(ctx context.Context, userID, userBenefitID string) error {
	userBenefit, err := s.benefitRepository.GetUserBenefitByID(ctx, userBenefitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRequestNotFound
		}
		return err
	}
	if userBenefit.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	now := time.Now()
	return s.benefitRepository.WithTransaction(ctx, func(tx *gorm.DB) error {
		rows, err := s.benefitRepository.UpdateStatusIfPending(tx, userBenefitID, map[string]interface{}{
			"status":     entities.BenefitStatusCancelled,
			"decided_at": now,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrInvalidStateTransition
		}
		if userBenefit.CoinCost > 0 {
			return s.refundTx(tx, userBenefit)
		}
		return nil
	})
}

func (s *benefitService) MyBenefits(ctx context.Context, userID string) ([]*domain.UserBenefit, error) {
	userBenefits, err := s.benefitRepository.ListUserBenefits(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.UserBenefit, 0, len(userBenefits))
	for _, ub := range userBenefits {
		result = append(result, toDomainUserBenefit(ub))
	}
	return result, nil
}

func (s *benefitService) ListRequests(ctx context.Context, status string, page, limit int) ([]*domain.UserBenefit, int64, error) {
	userBenefits, count, err := s.benefitRepository.ListRequests(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.UserBenefit, 0, len(userBenefits))
	for _, ub := range userBenefits {
		result = append(result, toDomainUserBenefit(ub))
	}
	return result, count, nil
}

func (s *benefitService) getAvailableBenefit(ctx context.Context, benefitID string) (*entities.Benefit, error) {
	benefit, err := s.benefitRepository.GetBenefitByID(ctx, benefitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBenefitNotFound
		}
		return nil, err
	}
	if !benefit.IsApproved {
		return nil, domain.ErrBenefitNotAvailable
	}
	return benefit, nil
}

func (s *benefitService) checkEligibility(ctx context.Context, userID string, benefit *entities.Benefit) error {
	months, err := s.userService.MonthsEmployed(ctx, userID)
	if err != nil {
		return err
	}
	if months < benefit.EligibilityMonths {
		return domain.ErrNotEligible
	}
	return nil
}

func (s *benefitService) checkDuplicate(ctx context.Context, userID, benefitID string) error {
	_, err := s.benefitRepository.GetActiveUserBenefit(ctx, userID, benefitID)
	if err == nil {
		return domain.ErrDuplicateRequest
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *benefitService) checkCapacity(ctx context.Context, benefit *entities.Benefit) error {
	if benefit.MaxUsers == nil {
		return nil
	}
	count, err := s.benefitRepository.CountActiveForBenefit(ctx, benefit.ID.String())
	if err != nil {
		return err
	}
	if count >= int64(*benefit.MaxUsers) {
		return domain.ErrBenefitFull
	}
	return nil
}

func (s *benefitService) newUserBenefit(userID string, benefit *entities.Benefit, notes string, coinCost int) (*entities.UserBenefit, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := time.Now()
	userBenefit := &entities.UserBenefit{
		ID:          uuid.New(),
		UserID:      userUUID,
		BenefitID:   benefit.ID,
		Status:      entities.BenefitStatusPending,
		Notes:       notes,
		CoinCost:    coinCost,
		RequestedAt: now,
	}
	if benefit.InstantApproval && !benefit.RequiresApproval {
		userBenefit.Status = entities.BenefitStatusApproved
		userBenefit.DecidedAt = &now
	}
	return userBenefit, nil
}

// refundTx appends the offsetting Earned transaction for a rejected or
// cancelled coin purchase. The ledger stays append-only: the original debit
// is corrected, never removed.
func (s *benefitService) refundTx(tx *gorm.DB, userBenefit *entities.UserBenefit) error {
	title := ""
	if userBenefit.Benefit != nil {
		title = userBenefit.Benefit.Title
	}
	refund := &entities.CoinTransaction{
		ID:        uuid.New(),
		UserID:    userBenefit.UserID,
		Amount:    userBenefit.CoinCost,
		Type:      entities.TransactionEarned,
		Reason:    fmt.Sprintf("Refund for benefit: %s", title),
		Reference: fmt.Sprintf("refund-%s", userBenefit.ID.String()),
	}
	return s.coinRepository.CreateTransactionTx(tx, refund)
}

func (s *benefitService) notifyDecision(ctx context.Context, userBenefit *entities.UserBenefit) {
	requester, err := s.userService.Me(ctx, userBenefit.UserID.String())
	if err != nil {
		log.Errorf("failed to load requester for benefit notification: %v", err)
		return
	}

	title := ""
	if userBenefit.Benefit != nil {
		title = userBenefit.Benefit.Title
	}

	subject := fmt.Sprintf("Your benefit request was %s", userBenefit.Status)
	body := fmt.Sprintf("<p>Hi %s, your request for <b>%s</b> was %s.</p>", requester.Name, title, userBenefit.Status)
	if userBenefit.RejectionReason != "" {
		body += fmt.Sprintf("<p>Reason: %s</p>", userBenefit.RejectionReason)
	}

	if err := mailing.SendMail(requester.Email, subject, body); err != nil {
		log.Errorf("failed to send benefit decision email to %s: %v", requester.Email, err)
	}
}

func toDomainBenefit(b *entities.Benefit) *domain.Benefit {
	return &domain.Benefit{
		ID:                b.ID.String(),
		Title:             b.Title,
		Category:          b.Category,
		ShortDescription:  b.ShortDescription,
		Value:             b.Value,
		EligibilityMonths: b.EligibilityMonths,
		MaxUsers:          b.MaxUsers,
		CurrentUsers:      b.CurrentUsers,
		CoinPrice:         b.CoinPrice,
		RequiresApproval:  b.RequiresApproval,
		InstantApproval:   b.InstantApproval,
		IsApproved:        b.IsApproved,
		ImageURL:          b.ImageURL,
	}
}

func toDomainUserBenefit(ub *entities.UserBenefit) *domain.UserBenefit {
	result := &domain.UserBenefit{
		ID:              ub.ID.String(),
		UserID:          ub.UserID.String(),
		BenefitID:       ub.BenefitID.String(),
		Status:          ub.Status,
		Notes:           ub.Notes,
		AdminNotes:      ub.AdminNotes,
		RejectionReason: ub.RejectionReason,
		CoinCost:        ub.CoinCost,
		RequestedAt:     ub.RequestedAt,
		DecidedAt:       ub.DecidedAt,
	}
	if ub.Benefit != nil {
		result.BenefitTitle = ub.Benefit.Title
	}
	return result
}
