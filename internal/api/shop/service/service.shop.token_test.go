// Package shopsvc - Test token link vào shop.
package shopsvc

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
)

const testSecret = "test-secret"

func TestShopToken_Roundtrip(t *testing.T) {
	signed, err := GenerateShopToken(123456789, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ParseShopToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), claims.ChatID)

	// Hạn token phải xấp xỉ 1 giờ kể từ lúc phát hành
	assert.InDelta(t, time.Now().Add(ShopTokenTTL).Unix(), claims.ExpiresAt, 5)
}

func TestParseShopToken_WrongSecret(t *testing.T) {
	signed, err := GenerateShopToken(1, testSecret)
	require.NoError(t, err)

	_, err = ParseShopToken(signed, "khac-secret")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseShopToken_Garbage(t *testing.T) {
	_, err := ParseShopToken("khong-phai-jwt", testSecret)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseShopToken_Expired(t *testing.T) {
	// Tự ký token đã hết hạn từ 1 giờ trước
	claims := shopmodels.ShopLinkClaims{
		ChatID: 1,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseShopToken(signed, testSecret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseShopToken_RejectsNonHMAC(t *testing.T) {
	// Token ký bằng alg "none" phải bị từ chối
	token := jwt.NewWithClaims(jwt.SigningMethodNone, shopmodels.ShopLinkClaims{ChatID: 1})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseShopToken(signed, testSecret)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}
