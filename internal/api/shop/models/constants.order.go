// Package models - Constants cho order domain.
package models

// Trạng thái đơn hàng.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatuses danh sách trạng thái hợp lệ (dùng cho validate khi đổi trạng thái).
var ValidOrderStatuses = []string{
	OrderStatusPending,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValidOrderStatus kiểm tra trạng thái có nằm trong danh sách hợp lệ không.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Người gửi tin nhắn trong đơn hàng.
const (
	MessageSenderUser  = "user"
	MessageSenderAdmin = "admin"
)

// OrderNumberPrefix prefix của mã đơn hàng (vd: EM-1A2B3C4D).
const OrderNumberPrefix = "EM-"
