// Package shopsvc - Test engine báo giá checkout.
package shopsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
)

// fakeProductFinder / fakeWalletFinder / fakeRateProvider là các collaborator giả cho test
type fakeProductFinder struct {
	product shopmodels.Product
	err     error
}

func (f fakeProductFinder) FindOneById(ctx context.Context, id primitive.ObjectID) (shopmodels.Product, error) {
	return f.product, f.err
}

type fakeWalletFinder struct {
	wallet shopmodels.Wallet
	err    error
}

func (f fakeWalletFinder) FindOneById(ctx context.Context, id primitive.ObjectID) (shopmodels.Wallet, error) {
	return f.wallet, f.err
}

type fakeRateProvider struct {
	rate float64
	ok   bool
}

func (f fakeRateProvider) RateFor(ctx context.Context, apiID string) (float64, bool) {
	return f.rate, f.ok
}

// newPricingFixture dựng PricingService với sản phẩm còn hàng giá 100,
// ví BTC được chấp nhận và tỷ giá 50.
func newPricingFixture() (*PricingService, primitive.ObjectID, primitive.ObjectID) {
	productID := primitive.NewObjectID()
	walletID := primitive.NewObjectID()

	product := shopmodels.Product{
		ID:              productID,
		Name:            "Test Product",
		PriceFiat:       100,
		InStock:         true,
		AcceptedWallets: []primitive.ObjectID{walletID},
	}
	wallet := shopmodels.Wallet{
		ID:     walletID,
		Symbol: "BTC",
		ApiID:  "bitcoin",
	}

	svc := NewPricingService(
		fakeProductFinder{product: product},
		fakeWalletFinder{wallet: wallet},
		fakeRateProvider{rate: 50, ok: true},
	)
	return svc, productID, walletID
}

func TestQuoteCheckout_ComputesPaymentAmount(t *testing.T) {
	svc, productID, walletID := newPricingFixture()

	// 100 fiat × 2 / tỷ giá 50 = 4 coin, format 6 chữ số thập phân
	quote, err := svc.QuoteCheckout(context.Background(), productID, walletID, 2)
	require.NoError(t, err)
	assert.Equal(t, "4.000000 BTC", quote.PaymentAmount)
	assert.Equal(t, float64(200), quote.TotalFiat)
	assert.Equal(t, 2, quote.Quantity)
}

func TestQuoteCheckout_DecimalPrecision(t *testing.T) {
	productID := primitive.NewObjectID()
	walletID := primitive.NewObjectID()

	svc := NewPricingService(
		fakeProductFinder{product: shopmodels.Product{
			ID:              productID,
			PriceFiat:       0.1,
			InStock:         true,
			AcceptedWallets: []primitive.ObjectID{walletID},
		}},
		fakeWalletFinder{wallet: shopmodels.Wallet{ID: walletID, Symbol: "ETH", ApiID: "ethereum"}},
		fakeRateProvider{rate: 0.3, ok: true},
	)

	// 0.1 × 3 = 0.3 chính xác với decimal (float sẽ ra 0.30000000000000004)
	quote, err := svc.QuoteCheckout(context.Background(), productID, walletID, 3)
	require.NoError(t, err)
	assert.Equal(t, "1.000000 ETH", quote.PaymentAmount)
}

func TestQuoteCheckout_InvalidQuantity(t *testing.T) {
	svc, productID, walletID := newPricingFixture()

	for _, quantity := range []int{0, -1, -100} {
		_, err := svc.QuoteCheckout(context.Background(), productID, walletID, quantity)
		assert.ErrorIs(t, err, common.ErrInvalidInput, "quantity=%d phải bị từ chối", quantity)
	}
}

func TestQuoteCheckout_ProductNotFound(t *testing.T) {
	walletID := primitive.NewObjectID()
	svc := NewPricingService(
		fakeProductFinder{err: common.ErrNotFound},
		fakeWalletFinder{wallet: shopmodels.Wallet{ID: walletID}},
		fakeRateProvider{rate: 50, ok: true},
	)

	_, err := svc.QuoteCheckout(context.Background(), primitive.NewObjectID(), walletID, 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestQuoteCheckout_OutOfStock(t *testing.T) {
	productID := primitive.NewObjectID()
	walletID := primitive.NewObjectID()
	svc := NewPricingService(
		fakeProductFinder{product: shopmodels.Product{
			ID:              productID,
			PriceFiat:       100,
			InStock:         false,
			AcceptedWallets: []primitive.ObjectID{walletID},
		}},
		fakeWalletFinder{wallet: shopmodels.Wallet{ID: walletID, Symbol: "BTC"}},
		fakeRateProvider{rate: 50, ok: true},
	)

	_, err := svc.QuoteCheckout(context.Background(), productID, walletID, 1)
	assert.ErrorIs(t, err, common.ErrOutOfStock)
}

func TestQuoteCheckout_WalletNotAccepted(t *testing.T) {
	svc, productID, _ := newPricingFixture()

	// Ví tồn tại nhưng không nằm trong danh sách chấp nhận của sản phẩm
	otherWalletID := primitive.NewObjectID()
	svc.wallets = fakeWalletFinder{wallet: shopmodels.Wallet{ID: otherWalletID, Symbol: "LTC"}}

	_, err := svc.QuoteCheckout(context.Background(), productID, otherWalletID, 1)
	assert.ErrorIs(t, err, common.ErrInvalidPaymentMethod)
}

func TestQuoteCheckout_RateUnavailable(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		ok   bool
	}{
		{"không có tỷ giá", 0, false},
		{"tỷ giá bằng 0", 0, true},
		{"tỷ giá âm", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, productID, walletID := newPricingFixture()
			svc.rates = fakeRateProvider{rate: tt.rate, ok: tt.ok}

			_, err := svc.QuoteCheckout(context.Background(), productID, walletID, 1)
			assert.ErrorIs(t, err, common.ErrRateUnavailable)
		})
	}
}

func TestQuoteCheckout_WalletMissing(t *testing.T) {
	// Ví không tồn tại bị coi như phương thức thanh toán không hợp lệ,
	// không lộ ra NotFound của tầng dưới
	svc, productID, walletID := newPricingFixture()
	svc.wallets = fakeWalletFinder{err: common.ErrNotFound}

	_, err := svc.QuoteCheckout(context.Background(), productID, walletID, 1)
	assert.ErrorIs(t, err, common.ErrInvalidPaymentMethod)
}

func TestQuoteCheckout_WalletLookupErrorPassthrough(t *testing.T) {
	// Lỗi hạ tầng (không phải NotFound) vẫn trả nguyên trạng cho caller
	svc, productID, walletID := newPricingFixture()
	infraErr := errors.New("mongo down")
	svc.wallets = fakeWalletFinder{err: infraErr}

	_, err := svc.QuoteCheckout(context.Background(), productID, walletID, 1)
	assert.ErrorIs(t, err, infraErr)
}
