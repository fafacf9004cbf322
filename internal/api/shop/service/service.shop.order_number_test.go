// Package shopsvc - Test sinh mã đơn hàng và chuẩn hóa mã đơn.
package shopsvc

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^EM-[0-9A-F]{8}$`)

func TestOrderNumberGenerator_Format(t *testing.T) {
	gen := NewOrderNumberGenerator(nil)

	for i := 0; i < 50; i++ {
		number, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.Regexp(t, orderNumberPattern, number, "mã đơn phải có dạng EM- + 8 hex in hoa")
	}
}

func TestOrderNumberGenerator_RetryOnCollision(t *testing.T) {
	// 3 lần đầu báo trùng, lần thứ 4 thì không
	calls := 0
	gen := NewOrderNumberGenerator(func(ctx context.Context, orderNumber string) (bool, error) {
		calls++
		return calls <= 3, nil
	})

	number, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, orderNumberPattern, number)
	assert.Equal(t, 4, calls, "phải thử lại đúng 3 lần trước khi thành công")
}

func TestOrderNumberGenerator_ExhaustsAttempts(t *testing.T) {
	// Luôn báo trùng: generator phải dừng sau MaxAttempts thay vì lặp vô hạn
	calls := 0
	gen := NewOrderNumberGenerator(func(ctx context.Context, orderNumber string) (bool, error) {
		calls++
		return true, nil
	})

	_, err := gen.Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, DefaultOrderNumberAttempts, calls)
}

func TestOrderNumberGenerator_PropagatesExistsError(t *testing.T) {
	gen := NewOrderNumberGenerator(func(ctx context.Context, orderNumber string) (bool, error) {
		return false, assert.AnError
	})

	_, err := gen.Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, assert.AnError, err)
}

func TestNormalizeOrderNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"đã có prefix", "EM-1A2B3C4D", "EM-1A2B3C4D"},
		{"thiếu prefix", "1A2B3C4D", "EM-1A2B3C4D"},
		{"chữ thường", "em-1a2b3c4d", "EM-1A2B3C4D"},
		{"có khoảng trắng", "  em-1a2b3c4d  ", "EM-1A2B3C4D"},
		{"chuỗi rỗng", "", ""},
		{"chỉ khoảng trắng", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeOrderNumber(tt.input))
		})
	}
}
