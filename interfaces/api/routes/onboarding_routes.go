package routes

import (
	"github.com/gofiber/fiber/v2"

	"tix4u-backend/interfaces/api/handlers"
	"tix4u-backend/interfaces/api/middleware"
)

func SetupOnboardingRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	onboarding := api.Group("/onboarding")

	// เรียกจากหน้า signup ก่อนมี account
	onboarding.Post("/verify-affiliate", h.OnboardingHandler.VerifyAffiliate)

	onboarding.Post("/role", middleware.Protected(jwtSecret), h.OnboardingHandler.SetRole)
	onboarding.Put("/role", middleware.Protected(jwtSecret), h.OnboardingHandler.UpdateRole)
	onboarding.Post("/team", middleware.Protected(jwtSecret), h.OnboardingHandler.CreateTeam)
	onboarding.Post("/event", middleware.Protected(jwtSecret), h.OnboardingHandler.CreateEvent)
}
