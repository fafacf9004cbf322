// Package models - Shop thuộc domain shop (shops).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shop khu trưng bày sản phẩm theo thành phố (shops).
// Mỗi shop thuộc về một thành phố, sản phẩm thuộc về shop.
type Shop struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`   // ID của shop
	Name        string             `json:"name" bson:"name" index:"text"`       // Tên shop
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CityID      primitive.ObjectID `json:"cityId" bson:"cityId" index:"single"` // Thành phố chứa shop
	IsActive    bool               `json:"isActive" bson:"isActive" default:"true"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
