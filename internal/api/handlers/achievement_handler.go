package handlers

import (
	"HR-Platform-Backend/domain"
	"HR-Platform-Backend/internal/api/presenters"
	"HR-Platform-Backend/pkg/achievement"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AchievementHandler interface {
		GetAchievements(c *fiber.Ctx) error
		GetProgress(c *fiber.Ctx) error
		CheckAchievements(c *fiber.Ctx) error
		ClaimAchievement(c *fiber.Ctx) error

		ListAchievements(c *fiber.Ctx) error
		CreateAchievement(c *fiber.Ctx) error
		UpdateAchievement(c *fiber.Ctx) error
		DeleteAchievement(c *fiber.Ctx) error
		UploadIcon(c *fiber.Ctx) error
	}

	achievementHandler struct {
		achievementService achievement.AchievementService
		validator          *validator.Validate
	}
)

func NewAchievementHandler(achievementService achievement.AchievementService, validator *validator.Validate) AchievementHandler {
	return &achievementHandler{
		achievementService: achievementService,
		validator:          validator,
	}
}

func (h *achievementHandler) GetAchievements(c *fiber.Ctx) error {
	achievements, err := h.achievementService.GetAchievements(c.Context(), false)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetAchievements, err)
	}

	return presenters.SuccessResponse(c, achievements, fiber.StatusOK, domain.MessageSuccessGetAchievements)
}

func (h *achievementHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	progress, err := h.achievementService.Progress(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetProgress, err)
	}

	return presenters.SuccessResponse(c, progress, fiber.StatusOK, domain.MessageSuccessGetProgress)
}

func (h *achievementHandler) CheckAchievements(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	newlyUnlocked, err := h.achievementService.CheckAndUnlock(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCheckAchievements, err)
	}

	return presenters.SuccessResponse(c, newlyUnlocked, fiber.StatusOK, domain.MessageSuccessCheckAchievements)
}

func (h *achievementHandler) ClaimAchievement(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	achievementID := c.Params("id")

	if err := h.achievementService.Claim(c.Context(), userID, achievementID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedClaimAchievement, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClaimAchievement)
}

func (h *achievementHandler) ListAchievements(c *fiber.Ctx) error {
	achievements, err := h.achievementService.GetAchievements(c.Context(), true)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetAchievements, err)
	}

	return presenters.SuccessResponse(c, achievements, fiber.StatusOK, domain.MessageSuccessGetAchievements)
}

func (h *achievementHandler) CreateAchievement(c *fiber.Ctx) error {
	req := new(domain.CreateAchievementRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateAchievement, err)
	}

	result, err := h.achievementService.CreateAchievement(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateAchievement, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessCreateAchievement)
}

func (h *achievementHandler) UpdateAchievement(c *fiber.Ctx) error {
	achievementID := c.Params("id")

	req := new(domain.UpdateAchievementRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateAchievement, err)
	}

	result, err := h.achievementService.UpdateAchievement(c.Context(), achievementID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateAchievement, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUpdateAchievement)
}

func (h *achievementHandler) DeleteAchievement(c *fiber.Ctx) error {
	achievementID := c.Params("id")

	if err := h.achievementService.DeleteAchievement(c.Context(), achievementID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteAchievement, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteAchievement)
}

func (h *achievementHandler) UploadIcon(c *fiber.Ctx) error {
	achievementID := c.Params("id")

	file, err := c.FormFile("icon")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	result, err := h.achievementService.UploadIcon(c.Context(), achievementID, file)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateAchievement, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUpdateAchievement)
}
