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

// ShopService là cấu trúc chứa các phương thức liên quan đến shop
type ShopService struct {
	*basesvc.BaseServiceMongoImpl[shopmodels.Shop]
	productService *ProductService
}

// NewShopService tạo mới ShopService
func NewShopService() (*ShopService, error) {
	shopCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Shops)
	if !exist {
		return nil, fmt.Errorf("failed to get shops collection: %v", common.ErrNotFound)
	}

	productService, err := NewProductService()
	if err != nil {
		return nil, err
	}

	return &ShopService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[shopmodels.Shop](shopCollection),
		productService:       productService,
	}, nil
}

// FindActiveByCity trả về danh sách shop đang hoạt động trong một thành phố
func (s *ShopService) FindActiveByCity(ctx context.Context, cityID primitive.ObjectID) ([]shopmodels.Shop, error) {
	return s.Find(ctx, bson.M{"cityId": cityID, "isActive": true}, nil)
}

// DeleteById xóa shop theo ObjectId.
// Không cho xóa khi còn sản phẩm tham chiếu tới shop.
func (s *ShopService) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	count, err := s.productService.CountDocuments(ctx, bson.M{"shopId": id})
	if err != nil {
		return err
	}
	if count > 0 {
		return common.NewError(
			common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể xóa shop: còn %d sản phẩm đang thuộc shop này", count),
			common.StatusConflict,
			nil,
		)
	}
	return s.BaseServiceMongoImpl.DeleteById(ctx, id)
}
