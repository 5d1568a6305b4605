package handlers

import (
	"HR-Platform-Backend/domain"
	"HR-Platform-Backend/entities"
	"HR-Platform-Backend/internal/api/presenters"
	"HR-Platform-Backend/pkg/achievement"
	"HR-Platform-Backend/pkg/coin"
	"HR-Platform-Backend/pkg/distribution"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CoinHandler interface {
		EarnCoins(c *fiber.Ctx) error
		GetBalance(c *fiber.Ctx) error
		GetTransactionHistory(c *fiber.Ctx) error
		DistributeCoins(c *fiber.Ctx) error
	}

	coinHandler struct {
		coinService         coin.CoinService
		achievementService  achievement.AchievementService
		distributionService distribution.DistributionService
		validator           *validator.Validate
	}
)

func NewCoinHandler(coinService coin.CoinService, achievementService achievement.AchievementService, distributionService distribution.DistributionService, validator *validator.Validate) CoinHandler {
	return &coinHandler{
		coinService:         coinService,
		achievementService:  achievementService,
		distributionService: distributionService,
		validator:           validator,
	}
}

// EarnCoins is the award entry point for completion events (quiz passed,
// video finished). Callers dedupe by event id through the reference field
// before hitting this endpoint. Every award re-runs the achievement check.
func (h *coinHandler) EarnCoins(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.EarnCoinsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEarnCoins, err)
	}

	transactionID, err := h.coinService.Append(c.Context(), domain.AppendCoinRequest{
		UserID:    userID,
		Amount:    req.Amount,
		Type:      entities.TransactionEarned,
		Reason:    req.Reason,
		Reference: req.Reference,
	})
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedEarnCoins, err)
	}

	newlyUnlocked, err := h.achievementService.CheckAndUnlock(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCheckAchievements, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"transaction_id":   transactionID,
		"new_achievements": newlyUnlocked,
	}, fiber.StatusCreated, domain.MessageSuccessEarnCoins)
}

func (h *coinHandler) GetBalance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	balance, err := h.coinService.Balance(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetBalance, err)
	}

	return presenters.SuccessResponse(c, balance, fiber.StatusOK, domain.MessageSuccessGetBalance)
}

func (h *coinHandler) GetTransactionHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	transactions, count, err := h.coinService.Transactions(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetCoinHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetCoinHistory)
}

func (h *coinHandler) DistributeCoins(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)

	req := new(domain.DistributeCoinsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDistributeCoins, err)
	}

	result, err := h.distributionService.DistributeToUsers(c.Context(), *req, adminID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDistributeCoins, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessDistributeCoins)
}
