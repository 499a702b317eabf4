package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/services"
	"tix4u-backend/pkg/utils"
)

type OnboardingHandler struct {
	onboardingService services.OnboardingService
}

func NewOnboardingHandler(onboardingService services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// SetRole เลือก role ครั้งแรกหลังสมัคร
// POST /api/v1/onboarding/role
func (h *OnboardingHandler) SetRole(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	if err := h.onboardingService.SetRole(c.UserContext(), user.ID, req.Role); err != nil {
		switch {
		case errors.Is(err, services.ErrRoleAlreadySet):
			return utils.ConflictResponse(c, "Role has already been set")
		case errors.Is(err, services.ErrUserNotFound):
			return utils.NotFoundResponse(c, "User not found")
		default:
			return utils.InternalServerErrorResponse(c)
		}
	}

	return utils.SuccessResponse(c, fiber.Map{"role": req.Role})
}

// UpdateRole เปลี่ยน role ที่ตั้งไว้แล้ว
// PUT /api/v1/onboarding/role
func (h *OnboardingHandler) UpdateRole(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	if err := h.onboardingService.UpdateRole(c.UserContext(), user.ID, req.Role); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, fiber.Map{"role": req.Role})
}

// CreateTeam สร้าง team แรกระหว่าง onboarding
// POST /api/v1/onboarding/team
func (h *OnboardingHandler) CreateTeam(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	teamID, err := h.onboardingService.CreateTeam(c.UserContext(), user.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			return utils.ConflictResponse(c, "Slug is already taken")
		}
		return utils.InternalServerErrorResponse(c)
	}

	return utils.CreatedResponse(c, fiber.Map{"teamId": teamID})
}

// CreateEvent สร้าง event ใต้ team ที่เลือกอยู่
// POST /api/v1/onboarding/event
func (h *OnboardingHandler) CreateEvent(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	eventID, err := h.onboardingService.CreateEvent(c.UserContext(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoTeamSelected):
			return utils.BadRequestResponse(c, "No team selected")
		case errors.Is(err, services.ErrTeamNotFound):
			return utils.NotFoundResponse(c, "Team not found")
		case errors.Is(err, services.ErrNotTeamMember):
			return utils.ForbiddenResponse(c, "User is not a member of this team")
		case errors.Is(err, services.ErrSlugTaken):
			return utils.ConflictResponse(c, "Slug is already taken")
		default:
			return utils.InternalServerErrorResponse(c)
		}
	}

	return utils.CreatedResponse(c, fiber.Map{"eventId": eventID})
}

// VerifyAffiliate ตรวจว่า email มีใบสมัครที่ approved (public — เรียกก่อน login)
// POST /api/v1/onboarding/verify-affiliate
func (h *OnboardingHandler) VerifyAffiliate(c *fiber.Ctx) error {
	var req dto.VerifyAffiliateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	approved, err := h.onboardingService.VerifyAffiliate(c.UserContext(), req.Email)
	if err != nil {
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, dto.VerifyAffiliateResponse{Approved: approved})
}
