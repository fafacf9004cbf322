package notify

import (
	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
)

// Dispatcher gửi thông báo cho admin khi có sự kiện từ khách.
// Mọi triển khai đều fire-and-forget: không trả lỗi, không block caller —
// checkout và nhắn tin phải thành công kể cả khi kênh thông báo chết.
type Dispatcher interface {
	NotifyNewOrder(order shopmodels.Order)
	NotifyNewUserMessage(order shopmodels.Order, text string)
}

// NopDispatcher dùng khi chưa cấu hình bot admin: nuốt mọi thông báo.
type NopDispatcher struct{}

func (NopDispatcher) NotifyNewOrder(order shopmodels.Order)                    {}
func (NopDispatcher) NotifyNewUserMessage(order shopmodels.Order, text string) {}
