package shopsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/buggerbugsbunny/kriptopazar/internal/api/base/service"
	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
	"github.com/buggerbugsbunny/kriptopazar/internal/global"
)

// ProductService là cấu trúc chứa các phương thức liên quan đến sản phẩm
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[shopmodels.Product]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}

	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[shopmodels.Product](productCollection),
	}, nil
}

// FindInStockByShop trả về danh sách sản phẩm còn hàng của một shop
func (s *ProductService) FindInStockByShop(ctx context.Context, shopID primitive.ObjectID) ([]shopmodels.Product, error) {
	return s.Find(ctx, bson.M{"shopId": shopID, "inStock": true}, nil)
}

// SetInStock bật/tắt trạng thái còn hàng của sản phẩm
func (s *ProductService) SetInStock(ctx context.Context, id primitive.ObjectID, inStock bool) (shopmodels.Product, error) {
	return s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"inStock": inStock},
	})
}
