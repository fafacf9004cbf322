package shopsvc

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
)

// DefaultOrderNumberAttempts số lần thử tối đa khi sinh mã đơn bị trùng.
const DefaultOrderNumberAttempts = 10

// OrderNumberGenerator sinh mã đơn hàng dạng "EM-" + 8 ký tự hex in hoa
// (4 byte ngẫu nhiên từ crypto/rand). Exists được inject để kiểm tra trùng,
// giúp test không cần database.
type OrderNumberGenerator struct {
	Exists      func(ctx context.Context, orderNumber string) (bool, error)
	MaxAttempts int
}

// NewOrderNumberGenerator tạo generator với số lần thử mặc định
func NewOrderNumberGenerator(exists func(ctx context.Context, orderNumber string) (bool, error)) *OrderNumberGenerator {
	return &OrderNumberGenerator{
		Exists:      exists,
		MaxAttempts: DefaultOrderNumberAttempts,
	}
}

// Generate sinh một mã đơn hàng chưa tồn tại.
// Trả về lỗi khi hết số lần thử mà vẫn trùng (thay vì lặp vô hạn).
func (g *OrderNumberGenerator) Generate(ctx context.Context) (string, error) {
	maxAttempts := g.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultOrderNumberAttempts
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		number, err := randomOrderNumber()
		if err != nil {
			return "", common.NewError(
				common.ErrCodeInternalServer,
				"Không thể sinh mã đơn hàng",
				common.StatusInternalServerError,
				err,
			)
		}

		if g.Exists == nil {
			return number, nil
		}

		exists, err := g.Exists(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}

	return "", common.NewError(
		common.ErrCodeInternalServer,
		"Không thể sinh mã đơn hàng duy nhất sau nhiều lần thử",
		common.StatusInternalServerError,
		nil,
	)
}

// randomOrderNumber sinh mã "EM-" + 8 hex in hoa từ 4 byte crypto/rand
func randomOrderNumber() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return shopmodels.OrderNumberPrefix + strings.ToUpper(hex.EncodeToString(buf)), nil
}

// NormalizeOrderNumber chuẩn hóa mã đơn người dùng nhập: cắt khoảng trắng,
// in hoa, thêm prefix "EM-" nếu thiếu.
func NormalizeOrderNumber(input string) string {
	number := strings.ToUpper(strings.TrimSpace(input))
	if number == "" {
		return ""
	}
	if !strings.HasPrefix(number, shopmodels.OrderNumberPrefix) {
		number = shopmodels.OrderNumberPrefix + number
	}
	return number
}
