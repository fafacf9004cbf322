package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	shopsvc "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/service"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
	"github.com/buggerbugsbunny/kriptopazar/internal/global"
)

// ShopTokenMiddleware xác thực link vào shop do bot phát hành.
// Token nhận qua query param "token" hoặc header Authorization (Bearer).
// Claims hợp lệ thì chatId của khách được đưa vào Locals cho handler phía sau.
func ShopTokenMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenString := c.Query("token")
		if tokenString == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				tokenString = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if tokenString == "" {
			logrus.Warn("❌ [AUTH] Thiếu token truy cập shop")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		claims, err := shopsvc.ParseShopToken(tokenString, global.MongoDB_ServerConfig.JwtSecret)
		if err != nil {
			logrus.WithError(err).Warn("❌ [AUTH] Token truy cập shop không hợp lệ")
			HandleErrorResponse(c, err)
			return nil
		}

		c.Locals("chat_id", claims.ChatID)
		return c.Next()
	}
}
