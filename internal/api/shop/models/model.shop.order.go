// Package models - Order, OrderMessage thuộc domain shop (orders).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderMessage một tin nhắn trao đổi trong đơn hàng (giữa khách và admin).
type OrderMessage struct {
	Sender string `json:"sender" bson:"sender"` // "user" | "admin"
	Text   string `json:"text" bson:"text"`     // Nội dung tin nhắn
	SentAt int64  `json:"sentAt" bson:"sentAt"` // Thời gian gửi (unix milli)
}

// Order đơn hàng thanh toán bằng coin (orders).
// PaymentAmount là chuỗi đã format "4.000000 BTC" — chốt tại thời điểm checkout,
// không tính lại khi tỷ giá thay đổi.
type Order struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                       // ID của đơn hàng
	OrderNumber string             `json:"orderNumber" bson:"orderNumber" index:"unique"`           // Mã đơn hàng (vd: EM-1A2B3C4D)
	ProductID   primitive.ObjectID `json:"productId" bson:"productId" index:"single"`               // Sản phẩm được đặt
	ProductName string             `json:"productName" bson:"productName"`                          // Tên sản phẩm (chốt lúc đặt)
	Quantity    int                `json:"quantity" bson:"quantity"`                                // Số lượng
	UnitPrice   float64            `json:"unitPrice" bson:"unitPrice"`                              // Đơn giá fiat (chốt lúc đặt)

	WalletID      primitive.ObjectID `json:"walletId" bson:"walletId"`           // Ví thanh toán
	WalletSymbol  string             `json:"walletSymbol" bson:"walletSymbol"`   // Ký hiệu coin (vd: BTC)
	WalletAddress string             `json:"walletAddress" bson:"walletAddress"` // Địa chỉ ví nhận tiền (chốt lúc đặt)
	PaymentAmount string             `json:"paymentAmount" bson:"paymentAmount"` // Số coin phải trả, đã format (vd: "4.000000 BTC")
	TransactionID string             `json:"transactionId,omitempty" bson:"transactionId,omitempty"` // Mã giao dịch khách khai báo

	CustomerChatID int64  `json:"customerChatId,omitempty" bson:"customerChatId,omitempty"` // Chat ID telegram của khách (nếu đặt qua bot)
	CustomerNote   string `json:"customerNote,omitempty" bson:"customerNote,omitempty"`     // Ghi chú giao hàng của khách

	Status               string         `json:"status" bson:"status" default:"pending"` // pending | completed | cancelled
	IsArchived           bool           `json:"isArchived" bson:"isArchived"`           // Đơn đã lưu trữ (chỉ đơn lưu trữ mới được xóa)
	HasUnreadUserMessage bool           `json:"hasUnreadUserMessage" bson:"hasUnreadUserMessage"` // Có tin nhắn khách chưa đọc
	Messages             []OrderMessage `json:"messages,omitempty" bson:"messages,omitempty"`     // Lịch sử trao đổi

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
