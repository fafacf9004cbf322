// Package database - Index bổ sung cho đơn hàng (compound) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buggerbugsbunny/kriptopazar/internal/global"
)

// CreateOrderAdditionalIndexes tạo các index bổ sung cho collection orders.
// Gọi sau CreateIndexes cho collection orders.
func CreateOrderAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	orders := db.Collection(global.MongoDB_ColNames.Orders)

	// orders: (hasUnreadUserMessage desc, createdAt desc) — sort dashboard, đơn chưa đọc lên đầu
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "hasUnreadUserMessage", Value: -1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("order_unread_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// orders: (isArchived, status) — filter danh sách theo trạng thái
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "isArchived", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("order_archived_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
