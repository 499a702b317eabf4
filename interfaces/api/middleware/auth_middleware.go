package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tix4u-backend/pkg/utils"
)

// Protected ตรวจสอบ JWT แล้วใส่ user context ลง fiber locals
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := utils.ExtractTokenFromHeader(c.Get("Authorization"))
		if token == "" {
			return utils.UnauthorizedResponse(c, "Missing or malformed authorization header")
		}

		userCtx, err := utils.ValidateToken(token, jwtSecret)
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			default:
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
		}

		c.Locals("user", userCtx)
		return c.Next()
	}
}

// Optional ใส่ user context ถ้ามี token ที่ valid — ไม่มี token ก็ผ่านได้
// ใช้กับ endpoint ที่ anonymous เรียกได้แต่อยากรู้ตัวตนถ้า login แล้ว
func Optional(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := utils.ExtractTokenFromHeader(c.Get("Authorization"))
		if token != "" {
			if userCtx, err := utils.ValidateToken(token, jwtSecret); err == nil {
				c.Locals("user", userCtx)
			}
		}
		return c.Next()
	}
}

// RequireRole ต้องผ่าน Protected มาก่อน
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return utils.ForbiddenResponse(c, "Insufficient permissions")
	}
}
