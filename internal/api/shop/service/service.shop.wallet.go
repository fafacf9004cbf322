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

// WalletService là cấu trúc chứa các phương thức liên quan đến ví thanh toán
type WalletService struct {
	*basesvc.BaseServiceMongoImpl[shopmodels.Wallet]
}

// NewWalletService tạo mới WalletService
func NewWalletService() (*WalletService, error) {
	walletCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Wallets)
	if !exist {
		return nil, fmt.Errorf("failed to get wallets collection: %v", common.ErrNotFound)
	}

	return &WalletService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[shopmodels.Wallet](walletCollection),
	}, nil
}

// FindActive trả về danh sách ví đang hoạt động
func (s *WalletService) FindActive(ctx context.Context) ([]shopmodels.Wallet, error) {
	return s.Find(ctx, bson.M{"isActive": true}, nil)
}

// ActiveApiIDs trả về danh sách ApiID (coin id trên API giá) của các ví đang hoạt động.
// Dùng làm nguồn danh sách coin cần fetch tỷ giá.
func (s *WalletService) ActiveApiIDs(ctx context.Context) ([]string, error) {
	wallets, err := s.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	// Khử trùng lặp (nhiều ví có thể cùng một coin)
	seen := map[string]bool{}
	apiIDs := make([]string, 0, len(wallets))
	for _, w := range wallets {
		if w.ApiID == "" || seen[w.ApiID] {
			continue
		}
		seen[w.ApiID] = true
		apiIDs = append(apiIDs, w.ApiID)
	}
	return apiIDs, nil
}

// DeleteById xóa ví theo ObjectId.
// Không cho xóa khi còn sản phẩm chấp nhận thanh toán bằng ví này.
func (s *WalletService) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}

	count, err := productCollection.CountDocuments(ctx, bson.M{"acceptedWallets": id})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if count > 0 {
		return common.NewError(
			common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể xóa ví: còn %d sản phẩm đang chấp nhận thanh toán bằng ví này", count),
			common.StatusConflict,
			nil,
		)
	}
	return s.BaseServiceMongoImpl.DeleteById(ctx, id)
}
