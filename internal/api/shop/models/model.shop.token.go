// Package models - ShopLinkClaims thuộc domain shop.
package models

import "github.com/dgrijalva/jwt-go"

// ShopLinkClaims chứa data được mã hóa trong JWT token của link vào shop.
// Token được bot khách hàng phát khi khách gõ "login"/"giriş", sống 1 giờ.
type ShopLinkClaims struct {
	ChatID int64 `json:"chatId"` // Chat ID telegram của khách
	jwt.StandardClaims
}
