package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	shopsvc "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/service"
	"github.com/buggerbugsbunny/kriptopazar/internal/logger"
	"github.com/buggerbugsbunny/kriptopazar/internal/telegram"
	"github.com/buggerbugsbunny/kriptopazar/internal/utility"
)

// AdminBot cho phép admin quản lý đơn hàng qua Telegram:
// xem đơn chờ xử lý, tin nhắn chưa đọc, đổi trạng thái, lưu trữ và trả lời khách.
type AdminBot struct {
	client       *telegram.Client
	orderService *shopsvc.OrderService
	adminChatID  int64

	// replyState nhớ admin đang trả lời đơn nào (sau khi bấm nút 💬 Trả lời)
	replyState *utility.Cache
}

// NewAdminBot tạo AdminBot. Token hoặc chat id không hợp lệ → trả nil (tính năng tắt).
func NewAdminBot(botToken, adminChatID string, orderService *shopsvc.OrderService) *AdminBot {
	log := logger.GetAppLogger()

	if botToken == "" || adminChatID == "" {
		log.Info("👮 [ADMIN_BOT] Chưa cấu hình bot quản trị, bỏ qua")
		return nil
	}

	chatID, err := strconv.ParseInt(adminChatID, 10, 64)
	if err != nil {
		log.WithError(err).Warn("👮 [ADMIN_BOT] Chat ID admin không hợp lệ, bỏ qua")
		return nil
	}

	return &AdminBot{
		client:       telegram.NewClient(botToken),
		orderService: orderService,
		adminChatID:  chatID,
		replyState:   utility.NewCache(5*time.Minute, 10*time.Minute),
	}
}

// Start chạy vòng lặp long polling đến khi ctx bị hủy
func (b *AdminBot) Start(ctx context.Context) {
	log := logger.GetAppLogger()
	log.Info("👮 [ADMIN_BOT] Bot quản trị bắt đầu long polling...")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			log.Info("👮 [ADMIN_BOT] Bot quản trị dừng")
			return
		default:
		}

		updates, err := b.client.GetUpdates(ctx, offset, pollTimeoutSec)
		if err != nil {
			log.WithError(err).Warn("👮 [ADMIN_BOT] Lỗi long polling, thử lại sau 5s")
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
						log.Errorf("👮 [ADMIN_BOT] Panic khi xử lý update %d: %v", update.UpdateID, r)
					}
				}()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

// handleUpdate định tuyến update: message → lệnh, callback → nút inline keyboard.
// Chỉ chat admin được phép thao tác.
func (b *AdminBot) handleUpdate(ctx context.Context, update telegram.Update) {
	if update.CallbackQuery != nil {
		if update.CallbackQuery.Message == nil || update.CallbackQuery.Message.Chat.ID != b.adminChatID {
			return
		}
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.Chat.ID != b.adminChatID {
		return
	}
	b.handleCommand(ctx, update.Message.Text)
}

// handleCommand xử lý lệnh văn bản từ admin
func (b *AdminBot) handleCommand(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}

	command := strings.ToLower(fields[0])
	args := fields[1:]

	// Admin đang trong luồng trả lời (đã bấm 💬 Trả lời): tin nhắn kế tiếp là nội dung
	if !strings.HasPrefix(command, "/") {
		if state, ok := b.replyState.Get(b.replyStateKey()); ok {
			b.replyState.Delete(b.replyStateKey())
			b.sendReply(ctx, state.(string), text)
			return
		}
	}

	switch command {
	case "/start", "/help":
		b.send(ctx, helpText(), nil)

	case "/pending":
		b.listOrders(ctx, shopmodels.OrderStatusPending, false)

	case "/unread":
		b.listOrders(ctx, "", true)

	case "/last":
		limit := int64(5)
		if len(args) > 0 {
			if n, err := strconv.ParseInt(args[0], 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		b.listRecent(ctx, limit)

	case "/search":
		if len(args) == 0 {
			b.send(ctx, "Dùng: /search <từ khóa>", nil)
			return
		}
		b.searchOrders(ctx, strings.Join(args, " "))

	case "/view":
		if len(args) == 0 {
			b.send(ctx, "Dùng: /view <mã đơn>", nil)
			return
		}
		b.viewOrder(ctx, args[0])

	case "/confirm":
		b.setStatus(ctx, args, shopmodels.OrderStatusCompleted)

	case "/cancel":
		b.setStatus(ctx, args, shopmodels.OrderStatusCancelled)

	case "/archive":
		b.setArchived(ctx, args, true)

	case "/unarchive":
		b.setArchived(ctx, args, false)

	case "/purge":
		if len(args) == 0 {
			b.send(ctx, "Dùng: /purge <mã đơn> — xóa vĩnh viễn đơn ĐÃ lưu trữ", nil)
			return
		}
		b.purgeOrder(ctx, args[0])

	case "/reply":
		if len(args) < 2 {
			b.send(ctx, "Dùng: /reply <mã đơn> <nội dung>", nil)
			return
		}
		b.sendReply(ctx, args[0], strings.Join(args[1:], " "))

	default:
		b.send(ctx, "Lệnh không hợp lệ. Gõ /help để xem danh sách lệnh.", nil)
	}
}

// handleCallback xử lý nút inline keyboard: "<action>:<mã đơn>"
func (b *AdminBot) handleCallback(ctx context.Context, callback *telegram.CallbackQuery) {
	parts := strings.SplitN(callback.Data, ":", 2)
	if len(parts) != 2 {
		return
	}
	action, orderNumber := parts[0], parts[1]

	var toast string
	switch action {
	case "confirm":
		_, err := b.orderService.SetStatusByNumber(ctx, orderNumber, shopmodels.OrderStatusCompleted)
		toast = resultToast(err, "✅ Đã xác nhận "+orderNumber)
	case "cancel":
		_, err := b.orderService.SetStatusByNumber(ctx, orderNumber, shopmodels.OrderStatusCancelled)
		toast = resultToast(err, "🚫 Đã hủy "+orderNumber)
	case "archive":
		_, err := b.orderService.SetArchivedByNumber(ctx, orderNumber, true)
		toast = resultToast(err, "📦 Đã lưu trữ "+orderNumber)
	case "reply":
		b.replyState.Set(b.replyStateKey(), orderNumber)
		toast = "Gửi nội dung trả lời cho " + orderNumber
		b.send(ctx, fmt.Sprintf("💬 Đang trả lời đơn %s — gửi nội dung tin nhắn:", orderNumber), nil)
	default:
		return
	}

	if err := b.client.AnswerCallbackQuery(ctx, callback.ID, toast); err != nil {
		logger.GetAppLogger().WithError(err).Warn("👮 [ADMIN_BOT] Trả lời callback thất bại")
	}
}

// listOrders liệt kê đơn theo trạng thái / cờ chưa đọc
func (b *AdminBot) listOrders(ctx context.Context, status string, unreadOnly bool) {
	result, err := b.orderService.List(ctx, status, nil, unreadOnly, 1, 10)
	if err != nil {
		b.sendError(ctx, err)
		return
	}
	if len(result.Items) == 0 {
		b.send(ctx, "Không có đơn nào.", nil)
		return
	}

	lines := lo.Map(result.Items, func(order shopmodels.Order, _ int) string {
		return formatOrderLine(order)
	})
	header := fmt.Sprintf("📋 %d/%d đơn:\n\n", len(result.Items), result.Total)
	b.send(ctx, header+strings.Join(lines, "\n"), nil)
}

// listRecent liệt kê N đơn mới nhất
func (b *AdminBot) listRecent(ctx context.Context, limit int64) {
	orders, err := b.orderService.Recent(ctx, limit)
	if err != nil {
		b.sendError(ctx, err)
		return
	}
	if len(orders) == 0 {
		b.send(ctx, "Chưa có đơn nào.", nil)
		return
	}

	lines := lo.Map(orders, func(order shopmodels.Order, _ int) string {
		return formatOrderLine(order)
	})
	b.send(ctx, "🕐 Đơn mới nhất:\n\n"+strings.Join(lines, "\n"), nil)
}

// searchOrders tìm đơn theo từ khóa
func (b *AdminBot) searchOrders(ctx context.Context, term string) {
	orders, err := b.orderService.Search(ctx, term)
	if err != nil {
		b.sendError(ctx, err)
		return
	}
	if len(orders) == 0 {
		b.send(ctx, "Không tìm thấy đơn nào khớp \""+term+"\".", nil)
		return
	}

	lines := lo.Map(orders, func(order shopmodels.Order, _ int) string {
		return formatOrderLine(order)
	})
	b.send(ctx, "🔍 Kết quả:\n\n"+strings.Join(lines, "\n"), nil)
}

// viewOrder gửi chi tiết đơn kèm nút thao tác
func (b *AdminBot) viewOrder(ctx context.Context, orderNumber string) {
	order, err := b.orderService.FindByNumber(ctx, orderNumber)
	if err != nil {
		b.sendError(ctx, err)
		return
	}

	// Admin đã xem → tắt cờ chưa đọc
	if order.HasUnreadUserMessage {
		if _, err := b.orderService.MarkMessagesRead(ctx, order.ID); err != nil {
			logger.GetAppLogger().WithError(err).Warn("👮 [ADMIN_BOT] Không tắt được cờ chưa đọc")
		}
	}

	b.send(ctx, formatOrderDetail(order), orderActionKeyboard(order.OrderNumber))
}

// setStatus đổi trạng thái đơn từ lệnh
func (b *AdminBot) setStatus(ctx context.Context, args []string, status string) {
	if len(args) == 0 {
		b.send(ctx, "Thiếu mã đơn.", nil)
		return
	}
	order, err := b.orderService.SetStatusByNumber(ctx, args[0], status)
	if err != nil {
		b.sendError(ctx, err)
		return
	}
	b.send(ctx, fmt.Sprintf("Đơn %s → %s", order.OrderNumber, order.Status), nil)
}

// setArchived bật/tắt lưu trữ đơn từ lệnh
func (b *AdminBot) setArchived(ctx context.Context, args []string, isArchived bool) {
	if len(args) == 0 {
		b.send(ctx, "Thiếu mã đơn.", nil)
		return
	}
	order, err := b.orderService.SetArchivedByNumber(ctx, args[0], isArchived)
	if err != nil {
		b.sendError(ctx, err)
		return
	}
	if isArchived {
		b.send(ctx, fmt.Sprintf("📦 Đã lưu trữ đơn %s", order.OrderNumber), nil)
	} else {
		b.send(ctx, fmt.Sprintf("📂 Đã bỏ lưu trữ đơn %s", order.OrderNumber), nil)
	}
}

// purgeOrder xóa vĩnh viễn đơn đã lưu trữ
func (b *AdminBot) purgeOrder(ctx context.Context, orderNumber string) {
	deleted, err := b.orderService.DeleteArchivedByNumber(ctx, orderNumber)
	if err != nil {
		b.sendError(ctx, err)
		return
	}
	b.send(ctx, fmt.Sprintf("🗑 Đã xóa vĩnh viễn đơn %s", deleted.OrderNumber), nil)
}

// sendReply gửi tin nhắn trả lời của admin vào đơn
func (b *AdminBot) sendReply(ctx context.Context, orderNumber, text string) {
	order, err := b.orderService.AppendMessage(ctx, orderNumber, shopmodels.MessageSenderAdmin, text)
	if err != nil {
		b.sendError(ctx, err)
		return
	}
	b.send(ctx, fmt.Sprintf("💬 Đã gửi trả lời cho đơn %s", order.OrderNumber), nil)
}

// replyStateKey là key cache cho luồng trả lời của chat admin
func (b *AdminBot) replyStateKey() string {
	return fmt.Sprintf("reply:%d", b.adminChatID)
}

// send gửi tin nhắn tới chat admin, lỗi chỉ ghi log
func (b *AdminBot) send(ctx context.Context, text string, keyboard [][]telegram.Button) {
	if err := b.client.SendMessage(ctx, b.adminChatID, text, keyboard); err != nil {
		logger.GetAppLogger().WithError(err).Warn("👮 [ADMIN_BOT] Gửi tin nhắn thất bại")
	}
}

// sendError báo lỗi thao tác cho admin
func (b *AdminBot) sendError(ctx context.Context, err error) {
	b.send(ctx, "⚠️ "+err.Error(), nil)
}

// resultToast chọn nội dung toast cho callback theo kết quả thao tác
func resultToast(err error, success string) string {
	if err != nil {
		return "⚠️ " + err.Error()
	}
	return success
}

// orderActionKeyboard là các nút thao tác nhanh trên một đơn
func orderActionKeyboard(orderNumber string) [][]telegram.Button {
	return [][]telegram.Button{
		{
			{Text: "✅ Xác nhận", CallbackData: "confirm:" + orderNumber},
			{Text: "🚫 Hủy", CallbackData: "cancel:" + orderNumber},
		},
		{
			{Text: "📦 Lưu trữ", CallbackData: "archive:" + orderNumber},
			{Text: "💬 Trả lời", CallbackData: "reply:" + orderNumber},
		},
	}
}

// formatOrderLine format một dòng tóm tắt đơn cho danh sách
func formatOrderLine(order shopmodels.Order) string {
	unread := ""
	if order.HasUnreadUserMessage {
		unread = " 💬"
	}
	return fmt.Sprintf("%s — %s x%d — %s — %s%s",
		order.OrderNumber, order.ProductName, order.Quantity, order.PaymentAmount, order.Status, unread)
}

// formatOrderDetail format chi tiết một đơn
func formatOrderDetail(order shopmodels.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🧾 Đơn %s\n", order.OrderNumber)
	fmt.Fprintf(&sb, "Sản phẩm: %s x%d\n", order.ProductName, order.Quantity)
	fmt.Fprintf(&sb, "Thanh toán: %s → %s\n", order.PaymentAmount, order.WalletAddress)
	fmt.Fprintf(&sb, "Trạng thái: %s\n", order.Status)
	if order.TransactionID != "" {
		fmt.Fprintf(&sb, "Mã giao dịch: %s\n", order.TransactionID)
	}
	if order.CustomerNote != "" {
		fmt.Fprintf(&sb, "Ghi chú: %s\n", order.CustomerNote)
	}
	if len(order.Messages) > 0 {
		sb.WriteString("\nTin nhắn gần nhất:\n")
		// Chỉ hiện tối đa 5 tin cuối
		messages := order.Messages
		if len(messages) > 5 {
			messages = messages[len(messages)-5:]
		}
		for _, m := range messages {
			fmt.Fprintf(&sb, "  [%s] %s\n", m.Sender, m.Text)
		}
	}
	return sb.String()
}

// helpText danh sách lệnh của bot quản trị
func helpText() string {
	return strings.Join([]string{
		"👮 Lệnh quản trị:",
		"/pending — đơn chờ xử lý",
		"/unread — đơn có tin nhắn chưa đọc",
		"/last [n] — n đơn mới nhất",
		"/search <từ khóa> — tìm đơn",
		"/view <mã đơn> — chi tiết đơn",
		"/confirm <mã đơn> — xác nhận hoàn thành",
		"/cancel <mã đơn> — hủy đơn",
		"/archive <mã đơn> — lưu trữ",
		"/unarchive <mã đơn> — bỏ lưu trữ",
		"/purge <mã đơn> — xóa vĩnh viễn đơn đã lưu trữ",
		"/reply <mã đơn> <nội dung> — trả lời khách",
	}, "\n")
}
