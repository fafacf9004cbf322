// Package shopsvc chứa các service nghiệp vụ của storefront.
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

// CityService là cấu trúc chứa các phương thức liên quan đến thành phố
type CityService struct {
	*basesvc.BaseServiceMongoImpl[shopmodels.City]
	shopService *ShopService
}

// NewCityService tạo mới CityService
func NewCityService() (*CityService, error) {
	cityCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Cities)
	if !exist {
		return nil, fmt.Errorf("failed to get cities collection: %v", common.ErrNotFound)
	}

	shopService, err := NewShopService()
	if err != nil {
		return nil, err
	}

	return &CityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[shopmodels.City](cityCollection),
		shopService:          shopService,
	}, nil
}

// FindActive trả về danh sách thành phố đang hoạt động
func (s *CityService) FindActive(ctx context.Context) ([]shopmodels.City, error) {
	return s.Find(ctx, bson.M{"isActive": true}, nil)
}

// DeleteById xóa thành phố theo ObjectId.
// Không cho xóa khi còn shop tham chiếu tới thành phố (tránh mồ côi dữ liệu).
func (s *CityService) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	count, err := s.shopService.CountDocuments(ctx, bson.M{"cityId": id})
	if err != nil {
		return err
	}
	if count > 0 {
		return common.NewError(
			common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể xóa thành phố: còn %d shop đang thuộc thành phố này", count),
			common.StatusConflict,
			nil,
		)
	}
	return s.BaseServiceMongoImpl.DeleteById(ctx, id)
}
