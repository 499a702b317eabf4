package routes

import (
	"github.com/gofiber/fiber/v2"

	"tix4u-backend/interfaces/api/handlers"
	"tix4u-backend/interfaces/api/middleware"
)

func SetupProfileRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	profile := api.Group("/profile")
	profile.Use(middleware.Protected(jwtSecret))

	profile.Get("/me", h.ProfileHandler.Me)
	profile.Post("/switch-event", h.ProfileHandler.SwitchEvent)
}
