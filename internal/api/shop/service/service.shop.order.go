package shopsvc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/buggerbugsbunny/kriptopazar/internal/api/base/models"
	basesvc "github.com/buggerbugsbunny/kriptopazar/internal/api/base/service"
	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
	"github.com/buggerbugsbunny/kriptopazar/internal/global"
)

// TrackMessageWindow khoảng thời gian khách được nhắn thêm tin sau tin nhắn gần nhất
// trên trang tra cứu đơn (tránh spam).
const TrackMessageWindow = 15 * time.Minute

// OrderNotifier nhận thông báo khi có đơn mới / tin nhắn mới từ khách.
// Triển khai fire-and-forget: không trả lỗi, không block caller.
type OrderNotifier interface {
	NotifyNewOrder(order shopmodels.Order)
	NotifyNewUserMessage(order shopmodels.Order, text string)
}

// OrderService là cấu trúc chứa các phương thức vòng đời đơn hàng.
// Tầng truy cập dữ liệu nằm sau interface BaseServiceMongo để test
// được các nhánh xóa/tạo đơn mà không cần database.
type OrderService struct {
	basesvc.BaseServiceMongo[shopmodels.Order]
	generator *OrderNumberGenerator
	pricing   *PricingService
	notifier  OrderNotifier
}

// NewOrderService tạo mới OrderService.
// notifier có thể nil (không gửi thông báo).
func NewOrderService(pricing *PricingService, notifier OrderNotifier) (*OrderService, error) {
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}

	s := &OrderService{
		BaseServiceMongo: basesvc.NewBaseServiceMongo[shopmodels.Order](orderCollection),
		pricing:          pricing,
		notifier:         notifier,
	}
	s.generator = NewOrderNumberGenerator(s.orderNumberExists)
	return s, nil
}

// orderNumberExists kiểm tra mã đơn đã tồn tại trong collection chưa
func (s *OrderService) orderNumberExists(ctx context.Context, orderNumber string) (bool, error) {
	return s.DocumentExists(ctx, bson.M{"orderNumber": orderNumber})
}

// Checkout tạo đơn hàng mới: báo giá qua PricingService, sinh mã đơn,
// lưu đơn và bắn thông báo. Không có đơn nào được lưu khi bất kỳ bước
// validate/báo giá nào thất bại.
// transactionID là bằng chứng chuyển tiền khách khai báo, bắt buộc.
// customerNote (nếu có) trở thành tin nhắn đầu tiên của khách trên đơn.
func (s *OrderService) Checkout(ctx context.Context, productID, walletID primitive.ObjectID, quantity int, customerChatID int64, transactionID, customerNote string) (shopmodels.Order, error) {
	var zero shopmodels.Order

	if transactionID == "" {
		return zero, common.ErrInvalidInput
	}

	quote, err := s.pricing.QuoteCheckout(ctx, productID, walletID, quantity)
	if err != nil {
		return zero, err
	}

	orderNumber, err := s.generator.Generate(ctx)
	if err != nil {
		return zero, err
	}

	order := shopmodels.Order{
		OrderNumber:    orderNumber,
		ProductID:      quote.Product.ID,
		ProductName:    quote.Product.Name,
		Quantity:       quote.Quantity,
		UnitPrice:      quote.Product.PriceFiat,
		WalletID:       quote.Wallet.ID,
		WalletSymbol:   quote.Wallet.Symbol,
		WalletAddress:  quote.Wallet.WalletAddress,
		PaymentAmount:  quote.PaymentAmount,
		TransactionID:  transactionID,
		CustomerChatID: customerChatID,
		CustomerNote:   customerNote,
		Status:         shopmodels.OrderStatusPending,
	}

	if customerNote != "" {
		order.Messages = []shopmodels.OrderMessage{{
			Sender: shopmodels.MessageSenderUser,
			Text:   customerNote,
			SentAt: time.Now().UnixMilli(),
		}}
		order.HasUnreadUserMessage = true
	}

	created, err := s.InsertOne(ctx, order)
	if err != nil {
		return zero, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewOrder(created)
	}

	return created, nil
}

// BuildAppendMessageUpdate tạo update data cho việc thêm tin nhắn:
// $push message vào mảng, đồng thời set cờ hasUnreadUserMessage
// (true khi khách nhắn, false khi admin trả lời — admin trả lời coi như đã đọc).
func BuildAppendMessageUpdate(sender, text string, sentAt int64) *basesvc.UpdateData {
	return &basesvc.UpdateData{
		Set: map[string]interface{}{
			"hasUnreadUserMessage": sender == shopmodels.MessageSenderUser,
		},
		Push: map[string]interface{}{
			"messages": shopmodels.OrderMessage{
				Sender: sender,
				Text:   text,
				SentAt: sentAt,
			},
		},
	}
}

// AppendMessage thêm tin nhắn vào đơn hàng theo mã đơn.
// Tin từ khách bật cờ chưa đọc và bắn thông báo cho admin.
func (s *OrderService) AppendMessage(ctx context.Context, orderNumber, sender, text string) (shopmodels.Order, error) {
	var zero shopmodels.Order

	if sender != shopmodels.MessageSenderUser && sender != shopmodels.MessageSenderAdmin {
		return zero, common.ErrInvalidInput
	}
	if text == "" {
		return zero, common.ErrInvalidInput
	}

	number := NormalizeOrderNumber(orderNumber)
	update := BuildAppendMessageUpdate(sender, text, time.Now().UnixMilli())

	updated, err := s.FindOneAndUpdate(ctx, bson.M{"orderNumber": number}, update, nil)
	if err != nil {
		return zero, err
	}

	if sender == shopmodels.MessageSenderUser && s.notifier != nil {
		s.notifier.NotifyNewUserMessage(updated, text)
	}

	return updated, nil
}

// MarkMessagesRead tắt cờ tin nhắn chưa đọc (admin đã xem đơn)
func (s *OrderService) MarkMessagesRead(ctx context.Context, id primitive.ObjectID) (shopmodels.Order, error) {
	return s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"hasUnreadUserMessage": false},
	})
}

// SetStatus đổi trạng thái đơn hàng theo ObjectId.
// Chỉ chấp nhận pending | completed | cancelled; mọi chuyển đổi giữa các
// trạng thái hợp lệ đều được phép (kể cả mở lại đơn đã hủy).
func (s *OrderService) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (shopmodels.Order, error) {
	var zero shopmodels.Order
	if !shopmodels.IsValidOrderStatus(status) {
		return zero, common.ErrInvalidStatus
	}
	return s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": status},
	})
}

// SetStatusByNumber đổi trạng thái đơn hàng theo mã đơn
func (s *OrderService) SetStatusByNumber(ctx context.Context, orderNumber, status string) (shopmodels.Order, error) {
	var zero shopmodels.Order
	if !shopmodels.IsValidOrderStatus(status) {
		return zero, common.ErrInvalidStatus
	}
	number := NormalizeOrderNumber(orderNumber)
	return s.FindOneAndUpdate(ctx, bson.M{"orderNumber": number}, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": status},
	}, nil)
}

// SetArchived bật/tắt lưu trữ đơn hàng theo ObjectId
func (s *OrderService) SetArchived(ctx context.Context, id primitive.ObjectID, isArchived bool) (shopmodels.Order, error) {
	return s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"isArchived": isArchived},
	})
}

// SetArchivedByNumber bật/tắt lưu trữ đơn hàng theo mã đơn
func (s *OrderService) SetArchivedByNumber(ctx context.Context, orderNumber string, isArchived bool) (shopmodels.Order, error) {
	number := NormalizeOrderNumber(orderNumber)
	return s.FindOneAndUpdate(ctx, bson.M{"orderNumber": number}, &basesvc.UpdateData{
		Set: map[string]interface{}{"isArchived": isArchived},
	}, nil)
}

// DeleteArchived xóa vĩnh viễn một đơn đã lưu trữ (atomic findOneAndDelete
// với điều kiện isArchived: true — không thể xóa nhầm đơn chưa lưu trữ).
// Phân biệt lỗi: đơn tồn tại nhưng chưa lưu trữ → ErrNotArchived,
// đơn không tồn tại → ErrNotFound.
func (s *OrderService) DeleteArchived(ctx context.Context, id primitive.ObjectID) (shopmodels.Order, error) {
	var zero shopmodels.Order

	deleted, err := s.FindOneAndDelete(ctx, bson.M{"_id": id, "isArchived": true}, nil)
	if err == nil {
		return deleted, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	// Không match filter: phân biệt đơn chưa lưu trữ với đơn không tồn tại
	exists, existsErr := s.DocumentExists(ctx, bson.M{"_id": id})
	if existsErr != nil {
		return zero, existsErr
	}
	if exists {
		return zero, common.ErrNotArchived
	}
	return zero, common.ErrNotFound
}

// DeleteArchivedByNumber xóa vĩnh viễn một đơn đã lưu trữ theo mã đơn
func (s *OrderService) DeleteArchivedByNumber(ctx context.Context, orderNumber string) (shopmodels.Order, error) {
	var zero shopmodels.Order
	number := NormalizeOrderNumber(orderNumber)

	deleted, err := s.FindOneAndDelete(ctx, bson.M{"orderNumber": number, "isArchived": true}, nil)
	if err == nil {
		return deleted, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	exists, existsErr := s.DocumentExists(ctx, bson.M{"orderNumber": number})
	if existsErr != nil {
		return zero, existsErr
	}
	if exists {
		return zero, common.ErrNotArchived
	}
	return zero, common.ErrNotFound
}

// SetTransactionID ghi nhận mã giao dịch khách khai báo theo mã đơn
func (s *OrderService) SetTransactionID(ctx context.Context, orderNumber, transactionID string) (shopmodels.Order, error) {
	var zero shopmodels.Order
	if transactionID == "" {
		return zero, common.ErrInvalidInput
	}
	number := NormalizeOrderNumber(orderNumber)
	return s.FindOneAndUpdate(ctx, bson.M{"orderNumber": number}, &basesvc.UpdateData{
		Set: map[string]interface{}{"transactionId": transactionID},
	}, nil)
}

// FindByNumber tìm đơn hàng theo mã đơn (chuẩn hóa input trước khi query)
func (s *OrderService) FindByNumber(ctx context.Context, orderNumber string) (shopmodels.Order, error) {
	number := NormalizeOrderNumber(orderNumber)
	if number == "" {
		var zero shopmodels.Order
		return zero, common.ErrInvalidInput
	}
	return s.FindOne(ctx, bson.M{"orderNumber": number}, nil)
}

// BuildListFilter tạo filter cho danh sách đơn phía admin.
// status/isArchived/unreadOnly đều tùy chọn.
func BuildListFilter(status string, isArchived *bool, unreadOnly bool) bson.M {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if isArchived != nil {
		filter["isArchived"] = *isArchived
	}
	if unreadOnly {
		filter["hasUnreadUserMessage"] = true
	}
	return filter
}

// unreadFirstSort sort đơn chưa đọc lên đầu, trong đó mới nhất trước
func unreadFirstSort() bson.D {
	return bson.D{
		{Key: "hasUnreadUserMessage", Value: -1},
		{Key: "createdAt", Value: -1},
	}
}

// List trả về danh sách đơn hàng phân trang, đơn có tin nhắn chưa đọc lên đầu
func (s *OrderService) List(ctx context.Context, status string, isArchived *bool, unreadOnly bool, page, limit int64) (*basemodels.PaginateResult[shopmodels.Order], error) {
	filter := BuildListFilter(status, isArchived, unreadOnly)
	opts := options.Find().SetSort(unreadFirstSort())
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// Recent trả về N đơn mới nhất (dùng cho lệnh bot admin)
func (s *OrderService) Recent(ctx context.Context, limit int64) ([]shopmodels.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return s.Find(ctx, bson.M{}, opts)
}

// Search tìm đơn theo mã đơn / tên sản phẩm / mã giao dịch (regex, không phân biệt hoa thường)
func (s *OrderService) Search(ctx context.Context, term string) ([]shopmodels.Order, error) {
	if term == "" {
		return nil, common.ErrInvalidInput
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	filter := bson.M{
		"$or": []bson.M{
			{"orderNumber": pattern},
			{"productName": pattern},
			{"transactionId": pattern},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, filter, opts)
}

// CanAppendTrackMessage kiểm tra khách còn được nhắn thêm trên trang tra cứu không:
// tin nhắn gần nhất của khách phải cách hiện tại dưới TrackMessageWindow,
// hoặc chưa có tin nhắn nào của khách.
func CanAppendTrackMessage(messages []shopmodels.OrderMessage, now time.Time) bool {
	var lastUserMessage int64
	for _, m := range messages {
		if m.Sender == shopmodels.MessageSenderUser && m.SentAt > lastUserMessage {
			lastUserMessage = m.SentAt
		}
	}
	if lastUserMessage == 0 {
		return true
	}
	return now.UnixMilli()-lastUserMessage < TrackMessageWindow.Milliseconds()
}

// RecentTrackMessages lọc tin nhắn hiển thị trên trang tra cứu:
// chỉ những tin trong TrackMessageWindow gần nhất (tin cũ hơn không hiện ra,
// khách cần theo dõi đơn ngay sau khi nhắn).
func RecentTrackMessages(messages []shopmodels.OrderMessage, now time.Time) []shopmodels.OrderMessage {
	cutoff := now.UnixMilli() - TrackMessageWindow.Milliseconds()
	recent := make([]shopmodels.OrderMessage, 0, len(messages))
	for _, m := range messages {
		if m.SentAt >= cutoff {
			recent = append(recent, m)
		}
	}
	return recent
}
