// Package bot chứa hai Telegram bot chạy nền:
// bot khách hàng (phát link vào shop) và bot quản trị (quản lý đơn hàng).
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	shopsvc "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/service"
	"github.com/buggerbugsbunny/kriptopazar/internal/logger"
	"github.com/buggerbugsbunny/kriptopazar/internal/telegram"
)

// pollTimeoutSec thời gian long polling giữ kết nối chờ update.
const pollTimeoutSec = 30

// CustomerBot phục vụ khách hàng: khách gõ "login" (hoặc "giriş")
// thì nhận link vào shop kèm JWT sống 1 giờ.
type CustomerBot struct {
	client    *telegram.Client
	jwtSecret string
	siteURL   string
}

// NewCustomerBot tạo CustomerBot. Token rỗng → trả nil (tính năng tắt).
func NewCustomerBot(botToken, jwtSecret, siteURL string) *CustomerBot {
	if botToken == "" {
		logger.GetAppLogger().Info("🤖 [BOT] Chưa cấu hình bot khách hàng, bỏ qua")
		return nil
	}
	return &CustomerBot{
		client:    telegram.NewClient(botToken),
		jwtSecret: jwtSecret,
		siteURL:   strings.TrimRight(siteURL, "/"),
	}
}

// Start chạy vòng lặp long polling đến khi ctx bị hủy.
// Mỗi update được xử lý trong closure có recover riêng: một update lỗi
// không làm chết cả bot.
func (b *CustomerBot) Start(ctx context.Context) {
	log := logger.GetAppLogger()
	log.Info("🤖 [BOT] Bot khách hàng bắt đầu long polling...")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			log.Info("🤖 [BOT] Bot khách hàng dừng")
			return
		default:
		}

		updates, err := b.client.GetUpdates(ctx, offset, pollTimeoutSec)
		if err != nil {
			log.WithError(err).Warn("🤖 [BOT] Lỗi long polling bot khách hàng, thử lại sau 5s")
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Errorf("🤖 [BOT] Panic khi xử lý update %d: %v", update.UpdateID, r)
					}
				}()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

// handleUpdate xử lý một update từ khách
func (b *CustomerBot) handleUpdate(ctx context.Context, update telegram.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	text := strings.ToLower(strings.TrimSpace(update.Message.Text))

	switch text {
	case "/start":
		b.reply(ctx, chatID, "Chào mừng! Gõ \"login\" để nhận link vào shop.", nil)

	// "giriş" giữ lại cho khách quen bản tiếng Thổ Nhĩ Kỳ cũ
	case "login", "giriş", "giris":
		b.sendShopLink(ctx, chatID)

	default:
		b.reply(ctx, chatID, "Gõ \"login\" để nhận link vào shop, hoặc tra cứu đơn hàng bằng mã đơn trên website.", nil)
	}
}

// sendShopLink phát link vào shop kèm token sống 1 giờ
func (b *CustomerBot) sendShopLink(ctx context.Context, chatID int64) {
	log := logger.GetAppLogger()

	token, err := shopsvc.GenerateShopToken(chatID, b.jwtSecret)
	if err != nil {
		log.WithError(err).Error("🤖 [BOT] Không sinh được token cho khách")
		b.reply(ctx, chatID, "Có lỗi xảy ra, vui lòng thử lại sau.", nil)
		return
	}

	link := fmt.Sprintf("%s?token=%s", b.siteURL, token)
	keyboard := [][]telegram.Button{
		{{Text: "🛍 Vào shop", URL: link}},
	}
	b.reply(ctx, chatID, "Link vào shop của bạn (có hiệu lực trong 1 giờ):", keyboard)
}

// reply gửi tin nhắn trả lời, lỗi chỉ ghi log
func (b *CustomerBot) reply(ctx context.Context, chatID int64, text string, keyboard [][]telegram.Button) {
	if err := b.client.SendMessage(ctx, chatID, text, keyboard); err != nil {
		logger.GetAppLogger().WithError(err).Warn("🤖 [BOT] Gửi tin nhắn cho khách thất bại")
	}
}
