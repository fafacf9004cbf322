// Package shophdl chứa HTTP handler cho domain shop:
// catalog (thành phố, shop, sản phẩm, ví), checkout và tra cứu đơn hàng.
package shophdl

import (
	"fmt"

	basehdl "github.com/buggerbugsbunny/kriptopazar/internal/api/base/handler"
	shopdto "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/dto"
	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	shopsvc "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/service"
)

// CityHandler xử lý các request CRUD cho thành phố
type CityHandler struct {
	basehdl.BaseHandler[shopmodels.City, shopdto.CityCreateInput, shopdto.CityUpdateInput]
	CityService *shopsvc.CityService
}

// NewCityHandler tạo mới CityHandler
func NewCityHandler() (*CityHandler, error) {
	cityService, err := shopsvc.NewCityService()
	if err != nil {
		return nil, fmt.Errorf("failed to create city service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[shopmodels.City, shopdto.CityCreateInput, shopdto.CityUpdateInput](cityService)
	return &CityHandler{
		BaseHandler: *baseHandler,
		CityService: cityService,
	}, nil
}

// ShopHandler xử lý các request CRUD cho điểm bán
type ShopHandler struct {
	basehdl.BaseHandler[shopmodels.Shop, shopdto.ShopCreateInput, shopdto.ShopUpdateInput]
	ShopService *shopsvc.ShopService
}

// NewShopHandler tạo mới ShopHandler
func NewShopHandler() (*ShopHandler, error) {
	shopService, err := shopsvc.NewShopService()
	if err != nil {
		return nil, fmt.Errorf("failed to create shop service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[shopmodels.Shop, shopdto.ShopCreateInput, shopdto.ShopUpdateInput](shopService)
	return &ShopHandler{
		BaseHandler: *baseHandler,
		ShopService: shopService,
	}, nil
}

// ProductHandler xử lý các request CRUD cho sản phẩm
type ProductHandler struct {
	basehdl.BaseHandler[shopmodels.Product, shopdto.ProductCreateInput, shopdto.ProductUpdateInput]
	ProductService *shopsvc.ProductService
}

// NewProductHandler tạo mới ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := shopsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[shopmodels.Product, shopdto.ProductCreateInput, shopdto.ProductUpdateInput](productService)
	return &ProductHandler{
		BaseHandler: *baseHandler,
		ProductService: productService,
	}, nil
}

// WalletHandler xử lý các request CRUD cho ví thanh toán
type WalletHandler struct {
	basehdl.BaseHandler[shopmodels.Wallet, shopdto.WalletCreateInput, shopdto.WalletUpdateInput]
	WalletService *shopsvc.WalletService
}

// NewWalletHandler tạo mới WalletHandler
func NewWalletHandler() (*WalletHandler, error) {
	walletService, err := shopsvc.NewWalletService()
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[shopmodels.Wallet, shopdto.WalletCreateInput, shopdto.WalletUpdateInput](walletService)
	return &WalletHandler{
		BaseHandler: *baseHandler,
		WalletService: walletService,
	}, nil
}
