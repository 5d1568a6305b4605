package handlers

import (
	"HR-Platform-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps the service sentinel errors onto HTTP status codes so
// every handler reports failures consistently.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAchievementNotFound),
		errors.Is(err, domain.ErrBenefitNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAchievementNotUnlocked):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAchievementAlreadyClaimed),
		errors.Is(err, domain.ErrDuplicateRequest),
		errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrBenefitFull):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInsufficientCoins),
		errors.Is(err, domain.ErrNotEligible):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadRequest
	}
}
