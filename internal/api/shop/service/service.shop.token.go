package shopsvc

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
)

// ShopTokenTTL thời gian sống của link vào shop bot phát cho khách.
const ShopTokenTTL = time.Hour

// GenerateShopToken sinh JWT cho link vào shop (HS256, sống 1 giờ).
// chatID được nhúng vào claims để gắn đơn hàng với khách trên Telegram.
func GenerateShopToken(chatID int64, secret string) (string, error) {
	now := time.Now()
	claims := shopmodels.ShopLinkClaims{
		ChatID: chatID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ShopTokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", common.NewError(
			common.ErrCodeInternalServer,
			"Không thể sinh token truy cập shop",
			common.StatusInternalServerError,
			err,
		)
	}
	return signed, nil
}

// ParseShopToken xác thực JWT từ link shop và trả về claims.
// Token hết hạn → ErrTokenExpired, sai chữ ký / sai định dạng → ErrTokenInvalid.
func ParseShopToken(tokenString, secret string) (*shopmodels.ShopLinkClaims, error) {
	claims := &shopmodels.ShopLinkClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}
