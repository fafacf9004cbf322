// Package notify - Test lắp ráp dispatcher thông báo.
package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
)

func TestNewTelegramDispatcher_UnconfiguredReturnsNop(t *testing.T) {
	tests := []struct {
		name        string
		botToken    string
		adminChatID string
	}{
		{"thiếu token", "", "123456"},
		{"thiếu chat id", "token", ""},
		{"thiếu cả hai", "", ""},
		{"chat id không phải số", "token", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewTelegramDispatcher(tt.botToken, tt.adminChatID)
			assert.IsType(t, NopDispatcher{}, d)
		})
	}
}

func TestNewTelegramDispatcher_Configured(t *testing.T) {
	d := NewTelegramDispatcher("token", "123456")
	td, ok := d.(*TelegramDispatcher)
	assert.True(t, ok, "cấu hình đủ phải trả TelegramDispatcher")
	assert.Equal(t, int64(123456), td.adminChatID)
}

func TestNopDispatcher_DoesNothing(t *testing.T) {
	// Nop phải an toàn khi gọi với dữ liệu bất kỳ
	var d Dispatcher = NopDispatcher{}
	assert.NotPanics(t, func() {
		d.NotifyNewOrder(shopmodels.Order{})
		d.NotifyNewUserMessage(shopmodels.Order{}, "xin chào")
	})
}
