// Package models - Product thuộc domain shop (products).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product sản phẩm bày bán trong shop (products).
// PriceFiat là giá niêm yết bằng tiền pháp định; số tiền coin phải trả
// được tính lúc checkout theo tỷ giá trong bảng giá.
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của sản phẩm
	Name        string             `json:"name" bson:"name" index:"text"`     // Tên sản phẩm
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	ShopID      primitive.ObjectID `json:"shopId" bson:"shopId" index:"single"` // Shop chứa sản phẩm
	PriceFiat   float64            `json:"priceFiat" bson:"priceFiat"`          // Giá niêm yết (tiền pháp định)
	InStock     bool               `json:"inStock" bson:"inStock" default:"true"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`

	// AcceptedWallets danh sách ví (coin) được chấp nhận thanh toán cho sản phẩm này.
	// Rỗng = không nhận thanh toán bằng coin nào.
	AcceptedWallets []primitive.ObjectID `json:"acceptedWallets,omitempty" bson:"acceptedWallets,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
