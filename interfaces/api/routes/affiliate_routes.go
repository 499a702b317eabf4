package routes

import (
	"github.com/gofiber/fiber/v2"

	"tix4u-backend/domain/models"
	"tix4u-backend/interfaces/api/handlers"
	"tix4u-backend/interfaces/api/middleware"
)

func SetupAffiliateRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	affiliate := api.Group("/affiliate")

	// ใบสมัครยื่นได้โดยไม่ต้องมี account
	affiliate.Post("/apply", h.AffiliateHandler.Apply)

	member := affiliate.Group("", middleware.Protected(jwtSecret), middleware.RequireRole(models.RoleAffiliate, models.RoleAdmin))
	member.Get("/teams", h.AffiliateHandler.ListTeams)
	member.Post("/teams", h.AffiliateHandler.CreateTeam)
	member.Get("/teams/:id", h.AffiliateHandler.GetTeam)
	member.Put("/teams/:id", h.AffiliateHandler.UpdateTeam)
	member.Get("/earnings/stats", h.AffiliateHandler.EarningsStats)
	member.Get("/earnings/chart", h.AffiliateHandler.EarningsChart)
	member.Get("/portfolio/stats", h.AffiliateHandler.PortfolioStats)
}
