package routes

import (
	"github.com/gofiber/fiber/v2"

	"tix4u-backend/interfaces/api/handlers"
	"tix4u-backend/interfaces/api/middleware"
)

func SetupAssetRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	assets := api.Group("/assets")

	// serve กับ resolve เปิดให้ anonymous — URL ที่แจกออกไปชี้กลับมาที่นี่
	assets.Get("/:id", h.AssetHandler.Serve)
	assets.Post("/url", h.AssetHandler.ResolveURL)

	// upload แบบ direct รับได้ทั้ง anonymous และ user ที่ login
	assets.Post("/upload", middleware.Optional(jwtSecret), h.AssetHandler.Upload)

	assets.Post("/presign", middleware.Protected(jwtSecret), h.AssetHandler.Presign)
	assets.Post("/confirm", middleware.Protected(jwtSecret), h.AssetHandler.Confirm)
	assets.Delete("/:id", middleware.Protected(jwtSecret), h.AssetHandler.Delete)
}
