// Package models - City thuộc domain shop (cities).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// City khu vực giao hàng mà cửa hàng phục vụ (cities).
type City struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của thành phố
	Name     string             `json:"name" bson:"name" index:"unique"`   // Tên thành phố
	IsActive bool               `json:"isActive" bson:"isActive" default:"true"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
