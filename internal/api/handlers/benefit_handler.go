package handlers

import (
	"HR-Platform-Backend/domain"
	"HR-Platform-Backend/internal/api/presenters"
	"HR-Platform-Backend/pkg/benefit"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BenefitHandler interface {
		GetBenefits(c *fiber.Ctx) error
		MyBenefits(c *fiber.Ctx) error
		RequestBenefit(c *fiber.Ctx) error
		PurchaseBenefit(c *fiber.Ctx) error
		CancelBenefit(c *fiber.Ctx) error

		ListBenefits(c *fiber.Ctx) error
		ListRequests(c *fiber.Ctx) error
		DecideBenefit(c *fiber.Ctx) error
		CreateBenefit(c *fiber.Ctx) error
		UpdateBenefit(c *fiber.Ctx) error
		DeleteBenefit(c *fiber.Ctx) error
		UploadImage(c *fiber.Ctx) error
	}

	benefitHandler struct {
		benefitService benefit.BenefitService
		validator      *validator.Validate
	}
)

func NewBenefitHandler(benefitService benefit.BenefitService, validator *validator.Validate) BenefitHandler {
	return &benefitHandler{
		benefitService: benefitService,
		validator:      validator,
	}
}

func (h *benefitHandler) GetBenefits(c *fiber.Ctx) error {
	benefits, err := h.benefitService.GetBenefits(c.Context(), false)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetBenefits, err)
	}

	return presenters.SuccessResponse(c, benefits, fiber.StatusOK, domain.MessageSuccessGetBenefits)
}

func (h *benefitHandler) MyBenefits(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	userBenefits, err := h.benefitService.MyBenefits(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetMyBenefits, err)
	}

	return presenters.SuccessResponse(c, userBenefits, fiber.StatusOK, domain.MessageSuccessGetMyBenefits)
}

func (h *benefitHandler) RequestBenefit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.RequestBenefitRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestBenefit, err)
	}

	result, err := h.benefitService.Request(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedRequestBenefit, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessRequestBenefit)
}

func (h *benefitHandler) PurchaseBenefit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.PurchaseBenefitRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPurchaseBenefit, err)
	}

	result, err := h.benefitService.PurchaseWithCoins(c.Context(), userID, req.BenefitID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedPurchaseBenefit, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessPurchaseBenefit)
}

func (h *benefitHandler) CancelBenefit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	userBenefitID := c.Params("id")

	if err := h.benefitService.Cancel(c.Context(), userID, userBenefitID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCancelBenefit, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelBenefit)
}

func (h *benefitHandler) ListBenefits(c *fiber.Ctx) error {
	benefits, err := h.benefitService.GetBenefits(c.Context(), true)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetBenefits, err)
	}

	return presenters.SuccessResponse(c, benefits, fiber.StatusOK, domain.MessageSuccessGetBenefits)
}

func (h *benefitHandler) ListRequests(c *fiber.Ctx) error {
	status := c.Query("status")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	requests, count, err := h.benefitService.ListRequests(c.Context(), status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetBenefits, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"requests": requests,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetBenefits)
}

func (h *benefitHandler) DecideBenefit(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)
	userBenefitID := c.Params("id")

	req := new(domain.DecideBenefitRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDecideBenefit, err)
	}

	result, err := h.benefitService.Decide(c.Context(), adminID, userBenefitID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDecideBenefit, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessDecideBenefit)
}

func (h *benefitHandler) CreateBenefit(c *fiber.Ctx) error {
	req := new(domain.CreateBenefitRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateBenefit, err)
	}

	result, err := h.benefitService.CreateBenefit(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateBenefit, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessCreateBenefit)
}

func (h *benefitHandler) UpdateBenefit(c *fiber.Ctx) error {
	benefitID := c.Params("id")

	req := new(domain.UpdateBenefitRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateBenefit, err)
	}

	result, err := h.benefitService.UpdateBenefit(c.Context(), benefitID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateBenefit, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUpdateBenefit)
}

func (h *benefitHandler) DeleteBenefit(c *fiber.Ctx) error {
	benefitID := c.Params("id")

	if err := h.benefitService.DeleteBenefit(c.Context(), benefitID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteBenefit, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteBenefit)
}

func (h *benefitHandler) UploadImage(c *fiber.Ctx) error {
	benefitID := c.Params("id")

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	result, err := h.benefitService.UploadImage(c.Context(), benefitID, file)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateBenefit, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUpdateBenefit)
}
