package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/services"
	"tix4u-backend/pkg/utils"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Me โปรไฟล์เต็มของ user ที่ login อยู่ (teams + events + selected)
// GET /api/v1/profile/me
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	profile, err := h.profileService.Me(c.UserContext(), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, profile)
}

// SwitchEvent เปลี่ยน event (และ team) ที่เลือกใช้งานอยู่
// POST /api/v1/profile/switch-event
func (h *ProfileHandler) SwitchEvent(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.SwitchEventRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	if err := h.profileService.SwitchEvent(c.UserContext(), user.ID, req.EventID); err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return utils.NotFoundResponse(c, "Event not found")
		case errors.Is(err, services.ErrTeamNotFound):
			return utils.NotFoundResponse(c, "Team not found")
		case errors.Is(err, services.ErrNotTeamMember):
			return utils.ForbiddenResponse(c, "User is not a member of this team")
		default:
			return utils.InternalServerErrorResponse(c)
		}
	}

	return utils.SuccessResponse(c, fiber.Map{"eventId": req.EventID})
}
