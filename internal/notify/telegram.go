package notify

import (
	"context"
	"fmt"
	"strconv"
	"time"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	"github.com/buggerbugsbunny/kriptopazar/internal/logger"
	"github.com/buggerbugsbunny/kriptopazar/internal/telegram"
)

// sendTimeout giới hạn thời gian cho một lần gửi thông báo nền.
const sendTimeout = 10 * time.Second

// TelegramDispatcher gửi thông báo tới chat admin qua Telegram bot.
type TelegramDispatcher struct {
	client      *telegram.Client
	adminChatID int64
}

// NewTelegramDispatcher tạo dispatcher từ bot token và chat id admin.
// Token hoặc chat id rỗng/không hợp lệ → trả NopDispatcher (tính năng tắt).
func NewTelegramDispatcher(botToken, adminChatID string) Dispatcher {
	log := logger.GetAppLogger()

	if botToken == "" || adminChatID == "" {
		log.Info("🔕 [NOTIFY] Chưa cấu hình bot admin, tắt thông báo Telegram")
		return NopDispatcher{}
	}

	chatID, err := strconv.ParseInt(adminChatID, 10, 64)
	if err != nil {
		log.WithError(err).Warn("🔕 [NOTIFY] Chat ID admin không hợp lệ, tắt thông báo Telegram")
		return NopDispatcher{}
	}

	return &TelegramDispatcher{
		client:      telegram.NewClient(botToken),
		adminChatID: chatID,
	}
}

// NotifyNewOrder thông báo đơn hàng mới kèm nút thao tác nhanh.
// Callback của nút do bot quản trị xử lý (cùng bot token).
func (d *TelegramDispatcher) NotifyNewOrder(order shopmodels.Order) {
	text := fmt.Sprintf(
		"🛒 Đơn hàng mới %s\n\nSản phẩm: %s x%d\nThanh toán: %s\nĐịa chỉ ví: %s",
		order.OrderNumber,
		order.ProductName,
		order.Quantity,
		order.PaymentAmount,
		order.WalletAddress,
	)
	d.send(text, orderKeyboard(order.OrderNumber))
}

// NotifyNewUserMessage thông báo tin nhắn mới từ khách trên một đơn
func (d *TelegramDispatcher) NotifyNewUserMessage(order shopmodels.Order, text string) {
	msg := fmt.Sprintf(
		"💬 Tin nhắn mới từ khách — đơn %s\n\n%s",
		order.OrderNumber,
		text,
	)
	d.send(msg, orderKeyboard(order.OrderNumber))
}

// orderKeyboard là các nút thao tác nhanh đính kèm thông báo
func orderKeyboard(orderNumber string) [][]telegram.Button {
	return [][]telegram.Button{
		{
			{Text: "✅ Xác nhận", CallbackData: "confirm:" + orderNumber},
			{Text: "🚫 Hủy", CallbackData: "cancel:" + orderNumber},
			{Text: "💬 Trả lời", CallbackData: "reply:" + orderNumber},
		},
	}
}

// send gửi thông báo trong goroutine tách biệt: có timeout riêng,
// recover mọi panic, lỗi chỉ ghi log. Caller không bao giờ bị ảnh hưởng.
func (d *TelegramDispatcher) send(text string, keyboard [][]telegram.Button) {
	go func() {
		log := logger.GetAppLogger()
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("🔕 [NOTIFY] Panic khi gửi thông báo: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := d.client.SendMessage(ctx, d.adminChatID, text, keyboard); err != nil {
			log.WithError(err).Warn("🔕 [NOTIFY] Gửi thông báo Telegram thất bại")
		}
	}()
}
