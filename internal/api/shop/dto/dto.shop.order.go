// Package shopdto - DTO cho checkout và vòng đời đơn hàng.
package shopdto

// CheckoutInput dùng cho tạo đơn hàng từ storefront.
// TransactionID là mã giao dịch khách tự khai báo (bằng chứng đã chuyển coin).
type CheckoutInput struct {
	ProductID      string `json:"productId" validate:"required,objectid"`
	WalletID       string `json:"walletId" validate:"required,objectid"`
	Quantity       int    `json:"quantity" validate:"required,min=1"`
	TransactionID  string `json:"transactionId" validate:"required,no_xss"`
	CustomerChatID int64  `json:"customerChatId,omitempty"`
	CustomerNote   string `json:"customerNote,omitempty" validate:"omitempty,no_xss"`
}

// OrderMessageInput dùng cho thêm tin nhắn vào đơn hàng.
// Sender để trống khi endpoint đã ngầm định người gửi
// (trang tra cứu → khách, route admin → admin).
type OrderMessageInput struct {
	Sender string `json:"sender,omitempty" validate:"omitempty,order_sender"`
	Text   string `json:"text" validate:"required,no_xss"`
}

// OrderStatusInput dùng cho đổi trạng thái đơn hàng.
type OrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// OrderArchiveInput dùng cho lưu trữ / bỏ lưu trữ đơn hàng.
type OrderArchiveInput struct {
	IsArchived bool `json:"isArchived"`
}

// OrderTransactionInput dùng cho khách khai báo mã giao dịch đã chuyển tiền.
type OrderTransactionInput struct {
	TransactionID string `json:"transactionId" validate:"required,no_xss"`
}
