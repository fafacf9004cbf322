// Package models - Wallet thuộc domain shop (wallets).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wallet ví nhận thanh toán của một loại coin (wallets).
// ApiID là ID của coin trên API giá (vd: "bitcoin", "ethereum"),
// Symbol là ký hiệu hiển thị (vd: "BTC", "ETH").
type Wallet struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`             // ID của ví
	WalletName    string             `json:"walletName" bson:"walletName" index:"unique"`   // Tên ví (vd: Bitcoin)
	Symbol        string             `json:"symbol" bson:"symbol"`                          // Ký hiệu coin (vd: BTC)
	ApiID         string             `json:"apiId" bson:"apiId" index:"single"`             // ID coin trên API giá (vd: bitcoin)
	WalletAddress string             `json:"walletAddress" bson:"walletAddress"`            // Địa chỉ ví nhận tiền
	IsActive      bool               `json:"isActive" bson:"isActive" default:"true"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
