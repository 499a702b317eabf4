package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/services"
	"tix4u-backend/pkg/utils"
)

type AffiliateHandler struct {
	affiliateService services.AffiliateService
}

func NewAffiliateHandler(affiliateService services.AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{affiliateService: affiliateService}
}

// Apply ยื่นใบสมัคร affiliate (public)
// POST /api/v1/affiliate/apply
func (h *AffiliateHandler) Apply(c *fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	if err := h.affiliateService.Apply(c.UserContext(), &req); err != nil {
		if errors.Is(err, services.ErrApplicationExists) {
			return utils.ConflictResponse(c, "An active application already exists for this email")
		}
		return utils.InternalServerErrorResponse(c)
	}

	return utils.CreatedResponse(c, fiber.Map{"status": "pending"})
}

// ListTeams team ทั้งหมดที่ affiliate คนนี้สร้างให้ organizer
// GET /api/v1/affiliate/teams
func (h *AffiliateHandler) ListTeams(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	teams, total, err := h.affiliateService.ListTeams(c.UserContext(), user.ID, (page-1)*limit, limit)
	if err != nil {
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, fiber.Map{
		"teams": teams,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetTeam
// GET /api/v1/affiliate/teams/:id
func (h *AffiliateHandler) GetTeam(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team id")
	}

	team, err := h.affiliateService.GetTeam(c.UserContext(), user.ID, teamID)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			return utils.NotFoundResponse(c, "Team not found")
		}
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, team)
}

// CreateTeam สร้าง team พร้อม organizer account ให้ลูกค้า
// POST /api/v1/affiliate/teams
func (h *AffiliateHandler) CreateTeam(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.CreateAffiliateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	team, err := h.affiliateService.CreateTeam(c.UserContext(), user.ID, user.Name, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSlugTaken):
			return utils.ConflictResponse(c, "Slug is already taken")
		case errors.Is(err, services.ErrEmailTaken):
			return utils.ConflictResponse(c, "Email is already registered")
		default:
			return utils.InternalServerErrorResponse(c)
		}
	}

	return utils.CreatedResponse(c, team)
}

// UpdateTeam
// PUT /api/v1/affiliate/teams/:id
func (h *AffiliateHandler) UpdateTeam(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team id")
	}

	var req dto.UpdateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	team, err := h.affiliateService.UpdateTeam(c.UserContext(), user.ID, teamID, &req)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			return utils.NotFoundResponse(c, "Team not found")
		}
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, team)
}

// EarningsStats ยอดรวมรายได้กับ % เปลี่ยนแปลงเดือนต่อเดือน
// GET /api/v1/affiliate/earnings/stats
func (h *AffiliateHandler) EarningsStats(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	stats, err := h.affiliateService.EarningsStats(c.UserContext(), user.ID)
	if err != nil {
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, stats)
}

// EarningsChart ยอดรายเดือนย้อนหลังสำหรับกราฟ
// GET /api/v1/affiliate/earnings/chart?months=6
func (h *AffiliateHandler) EarningsChart(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	months, _ := strconv.Atoi(c.Query("months", "6"))
	if months < 1 || months > 24 {
		months = 6
	}

	chart, err := h.affiliateService.EarningsChart(c.UserContext(), user.ID, months)
	if err != nil {
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, chart)
}

// PortfolioStats จำนวน team/event ใน portfolio
// GET /api/v1/affiliate/portfolio/stats
func (h *AffiliateHandler) PortfolioStats(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	stats, err := h.affiliateService.PortfolioStats(c.UserContext(), user.ID)
	if err != nil {
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, stats)
}
