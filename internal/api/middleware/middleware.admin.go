package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/buggerbugsbunny/kriptopazar/internal/common"
	"github.com/buggerbugsbunny/kriptopazar/internal/global"
	"github.com/buggerbugsbunny/kriptopazar/internal/logger"
)

// AdminAuthMiddleware middleware xác thực admin cho Fiber.
// Mật khẩu admin được gửi qua header X-Admin-Password (hoặc Authorization: Bearer <password>).
// So sánh constant-time để tránh timing attack.
func AdminAuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		password := c.Get("X-Admin-Password")
		if password == "" {
			// Fallback: Authorization: Bearer <password>
			authHeader := c.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				password = parts[1]
			}
		}

		if password == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing admin password header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		expected := global.MongoDB_ServerConfig.AdminPassword
		if expected == "" || subtle.ConstantTimeCompare([]byte(password), []byte(expected)) != 1 {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Invalid admin password")
			HandleErrorResponse(c, common.ErrUnauthorized)
			return nil
		}

		c.Locals("is_admin", true)
		return c.Next()
	}
}
