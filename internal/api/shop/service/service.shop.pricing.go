package shopsvc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
)

// productFinder, walletFinder, rateProvider là các collaborator nhỏ của PricingService.
// Inject qua interface để test không cần database / API giá.
type productFinder interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (shopmodels.Product, error)
}

type walletFinder interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (shopmodels.Wallet, error)
}

type rateProvider interface {
	RateFor(ctx context.Context, apiID string) (float64, bool)
}

// Quote kết quả báo giá checkout: sản phẩm, ví và số coin phải trả đã format.
type Quote struct {
	Product       shopmodels.Product
	Wallet        shopmodels.Wallet
	Quantity      int
	TotalFiat     float64
	PaymentAmount string // vd: "4.000000 BTC"
}

// PricingService tính số coin phải trả cho một lần checkout.
type PricingService struct {
	products productFinder
	wallets  walletFinder
	rates    rateProvider
}

// NewPricingService tạo PricingService từ các collaborator được inject
func NewPricingService(products productFinder, wallets walletFinder, rates rateProvider) *PricingService {
	return &PricingService{
		products: products,
		wallets:  wallets,
		rates:    rates,
	}
}

// QuoteCheckout validate yêu cầu checkout và tính số coin phải trả.
//
// Thứ tự kiểm tra:
//  1. quantity >= 1
//  2. sản phẩm tồn tại
//  3. sản phẩm còn hàng
//  4. ví tồn tại và được sản phẩm chấp nhận
//  5. có tỷ giá > 0 cho coin của ví
//
// Số coin = (priceFiat × quantity) / rate, làm tròn 6 chữ số thập phân,
// format "4.000000 BTC". Tính bằng decimal để tránh sai số nhị phân.
func (s *PricingService) QuoteCheckout(ctx context.Context, productID, walletID primitive.ObjectID, quantity int) (*Quote, error) {
	if quantity < 1 {
		return nil, common.ErrInvalidInput
	}

	product, err := s.products.FindOneById(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.InStock {
		return nil, common.ErrOutOfStock
	}

	wallet, err := s.wallets.FindOneById(ctx, walletID)
	if err != nil {
		// Ví không tồn tại coi như phương thức thanh toán không hợp lệ,
		// giống trường hợp ví không được sản phẩm chấp nhận
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidPaymentMethod
		}
		return nil, err
	}

	if !walletAccepted(product, wallet.ID) {
		return nil, common.ErrInvalidPaymentMethod
	}

	rate, ok := s.rates.RateFor(ctx, wallet.ApiID)
	if !ok || rate <= 0 {
		return nil, common.ErrRateUnavailable
	}

	totalFiat := decimal.NewFromFloat(product.PriceFiat).Mul(decimal.NewFromInt(int64(quantity)))
	amount := totalFiat.Div(decimal.NewFromFloat(rate))

	totalFiatValue, _ := totalFiat.Float64()

	return &Quote{
		Product:       product,
		Wallet:        wallet,
		Quantity:      quantity,
		TotalFiat:     totalFiatValue,
		PaymentAmount: amount.StringFixed(6) + " " + wallet.Symbol,
	}, nil
}

// walletAccepted kiểm tra ví có trong danh sách chấp nhận của sản phẩm không
func walletAccepted(product shopmodels.Product, walletID primitive.ObjectID) bool {
	for _, accepted := range product.AcceptedWallets {
		if accepted == walletID {
			return true
		}
	}
	return false
}
