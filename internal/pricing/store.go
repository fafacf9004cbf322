package pricing

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
)

// MongoStore persist bảng giá dưới dạng document singleton {_id: "all_prices"}.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore tạo MongoStore trên collection cache giá
func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

// Load đọc bảng giá đã lưu. Chưa có document → (nil, nil).
func (s *MongoStore) Load(ctx context.Context) (*shopmodels.PriceTable, error) {
	var table shopmodels.PriceTable
	err := s.collection.FindOne(ctx, bson.M{"_id": shopmodels.PriceTableID}).Decode(&table)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, common.ConvertMongoError(err)
	}
	return &table, nil
}

// Save ghi đè bảng giá singleton (upsert)
func (s *MongoStore) Save(ctx context.Context, table *shopmodels.PriceTable) error {
	_, err := s.collection.ReplaceOne(
		ctx,
		bson.M{"_id": shopmodels.PriceTableID},
		table,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
