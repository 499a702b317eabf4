package routes

import (
	"github.com/gofiber/fiber/v2"

	"tix4u-backend/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, jwtSecret string) {
	SetupHealthRoutes(app)

	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h)
	SetupAssetRoutes(api, h, jwtSecret)
	SetupOnboardingRoutes(api, h, jwtSecret)
	SetupProfileRoutes(api, h, jwtSecret)
	SetupAffiliateRoutes(api, h, jwtSecret)
}
