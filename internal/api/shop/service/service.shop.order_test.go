// Package shopsvc - Test vòng đời đơn hàng: các helper thuần và các thao tác
// trên tầng dữ liệu (qua fake store, không cần database).
package shopsvc

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/buggerbugsbunny/kriptopazar/internal/api/base/service"
	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
)

// fakeOrderStore giả lập tầng dữ liệu đơn hàng. Chỉ cài các phương thức
// test cần; phương thức khác kế thừa từ interface nil, gọi nhầm sẽ panic.
type fakeOrderStore struct {
	basesvc.BaseServiceMongo[shopmodels.Order]

	insertCalls int
	inserted    shopmodels.Order
	insertErr   error

	deleteResult shopmodels.Order
	deleteErr    error

	exists    bool
	existsErr error
}

func (f *fakeOrderStore) InsertOne(ctx context.Context, data shopmodels.Order) (shopmodels.Order, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return shopmodels.Order{}, f.insertErr
	}
	f.inserted = data
	return data, nil
}

func (f *fakeOrderStore) FindOneAndDelete(ctx context.Context, filter interface{}, opts *options.FindOneAndDeleteOptions) (shopmodels.Order, error) {
	if f.deleteErr != nil {
		return shopmodels.Order{}, f.deleteErr
	}
	return f.deleteResult, nil
}

func (f *fakeOrderStore) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	return f.exists, f.existsErr
}

// recordingNotifier ghi nhận các thông báo được bắn ra
type recordingNotifier struct {
	newOrders []shopmodels.Order
}

func (n *recordingNotifier) NotifyNewOrder(order shopmodels.Order) {
	n.newOrders = append(n.newOrders, order)
}

func (n *recordingNotifier) NotifyNewUserMessage(order shopmodels.Order, text string) {}

// newOrderServiceFixture dựng OrderService trên fake store
func newOrderServiceFixture(store *fakeOrderStore, pricing *PricingService, notifier OrderNotifier) *OrderService {
	s := &OrderService{
		BaseServiceMongo: store,
		pricing:          pricing,
		notifier:         notifier,
	}
	s.generator = NewOrderNumberGenerator(s.orderNumberExists)
	return s
}

func TestBuildAppendMessageUpdate_UserSetsUnreadFlag(t *testing.T) {
	update := BuildAppendMessageUpdate(shopmodels.MessageSenderUser, "xin chào", 1000)

	// Tin của khách bật cờ chưa đọc
	assert.Equal(t, true, update.Set["hasUnreadUserMessage"])

	msg, ok := update.Push["messages"].(shopmodels.OrderMessage)
	require.True(t, ok, "push phải chứa OrderMessage")
	assert.Equal(t, shopmodels.MessageSenderUser, msg.Sender)
	assert.Equal(t, "xin chào", msg.Text)
	assert.Equal(t, int64(1000), msg.SentAt)
}

func TestBuildAppendMessageUpdate_AdminClearsUnreadFlag(t *testing.T) {
	update := BuildAppendMessageUpdate(shopmodels.MessageSenderAdmin, "đã xử lý", 2000)

	// Admin trả lời coi như đã đọc hết tin của khách
	assert.Equal(t, false, update.Set["hasUnreadUserMessage"])
}

func TestBuildListFilter(t *testing.T) {
	archived := true

	tests := []struct {
		name       string
		status     string
		isArchived *bool
		unreadOnly bool
		want       bson.M
	}{
		{"không filter", "", nil, false, bson.M{}},
		{"theo trạng thái", "pending", nil, false, bson.M{"status": "pending"}},
		{"đã lưu trữ", "", &archived, false, bson.M{"isArchived": true}},
		{"chỉ tin chưa đọc", "", nil, true, bson.M{"hasUnreadUserMessage": true}},
		{
			"kết hợp",
			"completed", &archived, true,
			bson.M{"status": "completed", "isArchived": true, "hasUnreadUserMessage": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildListFilter(tt.status, tt.isArchived, tt.unreadOnly))
		})
	}
}

func TestUnreadFirstSort(t *testing.T) {
	sort := unreadFirstSort()
	require.Len(t, sort, 2)
	assert.Equal(t, "hasUnreadUserMessage", sort[0].Key)
	assert.Equal(t, -1, sort[0].Value)
	assert.Equal(t, "createdAt", sort[1].Key)
	assert.Equal(t, -1, sort[1].Value)
}

func TestCanAppendTrackMessage(t *testing.T) {
	now := time.Now()

	t.Run("chưa có tin nhắn nào", func(t *testing.T) {
		assert.True(t, CanAppendTrackMessage(nil, now))
	})

	t.Run("chỉ có tin của admin", func(t *testing.T) {
		messages := []shopmodels.OrderMessage{
			{Sender: shopmodels.MessageSenderAdmin, SentAt: now.Add(-time.Hour).UnixMilli()},
		}
		assert.True(t, CanAppendTrackMessage(messages, now))
	})

	t.Run("tin khách trong cửa sổ 15 phút", func(t *testing.T) {
		messages := []shopmodels.OrderMessage{
			{Sender: shopmodels.MessageSenderUser, SentAt: now.Add(-10 * time.Minute).UnixMilli()},
		}
		assert.True(t, CanAppendTrackMessage(messages, now))
	})

	t.Run("tin khách đã quá 15 phút", func(t *testing.T) {
		messages := []shopmodels.OrderMessage{
			{Sender: shopmodels.MessageSenderUser, SentAt: now.Add(-16 * time.Minute).UnixMilli()},
		}
		assert.False(t, CanAppendTrackMessage(messages, now))
	})

	t.Run("tính theo tin khách mới nhất", func(t *testing.T) {
		messages := []shopmodels.OrderMessage{
			{Sender: shopmodels.MessageSenderUser, SentAt: now.Add(-time.Hour).UnixMilli()},
			{Sender: shopmodels.MessageSenderAdmin, SentAt: now.Add(-30 * time.Minute).UnixMilli()},
			{Sender: shopmodels.MessageSenderUser, SentAt: now.Add(-5 * time.Minute).UnixMilli()},
		}
		assert.True(t, CanAppendTrackMessage(messages, now))
	})
}

func TestRecentTrackMessages(t *testing.T) {
	now := time.Now()
	old := shopmodels.OrderMessage{Sender: shopmodels.MessageSenderAdmin, Text: "cũ", SentAt: now.Add(-time.Hour).UnixMilli()}
	fresh := shopmodels.OrderMessage{Sender: shopmodels.MessageSenderUser, Text: "mới", SentAt: now.Add(-5 * time.Minute).UnixMilli()}

	recent := RecentTrackMessages([]shopmodels.OrderMessage{old, fresh}, now)
	require.Len(t, recent, 1)
	assert.Equal(t, "mới", recent[0].Text)

	assert.Empty(t, RecentTrackMessages([]shopmodels.OrderMessage{old}, now))
	assert.Empty(t, RecentTrackMessages(nil, now))
}

func TestCheckout_CreatesOrderWithInitialMessage(t *testing.T) {
	pricing, productID, walletID := newPricingFixture()
	store := &fakeOrderStore{}
	notifier := &recordingNotifier{}
	svc := newOrderServiceFixture(store, pricing, notifier)

	created, err := svc.Checkout(context.Background(), productID, walletID, 2, 99, "tx-abc123", "giao giờ hành chính")
	require.NoError(t, err)

	assert.Equal(t, 1, store.insertCalls)
	assert.True(t, strings.HasPrefix(created.OrderNumber, shopmodels.OrderNumberPrefix))
	assert.Len(t, created.OrderNumber, len(shopmodels.OrderNumberPrefix)+8)
	assert.Equal(t, "4.000000 BTC", created.PaymentAmount)
	assert.Equal(t, "tx-abc123", created.TransactionID)
	assert.Equal(t, int64(99), created.CustomerChatID)
	assert.Equal(t, shopmodels.OrderStatusPending, created.Status)

	// Ghi chú của khách trở thành tin nhắn đầu tiên, bật cờ chưa đọc
	require.Len(t, created.Messages, 1)
	assert.Equal(t, shopmodels.MessageSenderUser, created.Messages[0].Sender)
	assert.Equal(t, "giao giờ hành chính", created.Messages[0].Text)
	assert.True(t, created.HasUnreadUserMessage)

	require.Len(t, notifier.newOrders, 1)
	assert.Equal(t, created.OrderNumber, notifier.newOrders[0].OrderNumber)
}

func TestCheckout_NoNoteLeavesMessagesEmpty(t *testing.T) {
	pricing, productID, walletID := newPricingFixture()
	store := &fakeOrderStore{}
	svc := newOrderServiceFixture(store, pricing, nil)

	created, err := svc.Checkout(context.Background(), productID, walletID, 1, 99, "tx-abc123", "")
	require.NoError(t, err)
	assert.Empty(t, created.Messages)
	assert.False(t, created.HasUnreadUserMessage)
}

func TestCheckout_FailureCreatesNoOrder(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(svc *OrderService)
		quantity      int
		transactionID string
		wantErr       error
	}{
		{
			name:          "thiếu mã giao dịch",
			quantity:      1,
			transactionID: "",
			wantErr:       common.ErrInvalidInput,
		},
		{
			name:          "số lượng không hợp lệ",
			quantity:      0,
			transactionID: "tx-abc123",
			wantErr:       common.ErrInvalidInput,
		},
		{
			name: "sản phẩm hết hàng",
			mutate: func(svc *OrderService) {
				finder := svc.pricing.products.(fakeProductFinder)
				finder.product.InStock = false
				svc.pricing.products = finder
			},
			quantity:      1,
			transactionID: "tx-abc123",
			wantErr:       common.ErrOutOfStock,
		},
		{
			name: "ví không tồn tại",
			mutate: func(svc *OrderService) {
				svc.pricing.wallets = fakeWalletFinder{err: common.ErrNotFound}
			},
			quantity:      1,
			transactionID: "tx-abc123",
			wantErr:       common.ErrInvalidPaymentMethod,
		},
		{
			name: "không có tỷ giá",
			mutate: func(svc *OrderService) {
				svc.pricing.rates = fakeRateProvider{}
			},
			quantity:      1,
			transactionID: "tx-abc123",
			wantErr:       common.ErrRateUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pricing, productID, walletID := newPricingFixture()
			store := &fakeOrderStore{}
			notifier := &recordingNotifier{}
			svc := newOrderServiceFixture(store, pricing, notifier)
			if tt.mutate != nil {
				tt.mutate(svc)
			}

			_, err := svc.Checkout(context.Background(), productID, walletID, tt.quantity, 99, tt.transactionID, "")
			assert.ErrorIs(t, err, tt.wantErr)

			// Báo giá thất bại thì không đơn nào được lưu, không thông báo nào được bắn
			assert.Equal(t, 0, store.insertCalls, "không được insert đơn khi checkout thất bại")
			assert.Empty(t, notifier.newOrders)
		})
	}
}

func TestDeleteArchived(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("xóa được đơn đã lưu trữ", func(t *testing.T) {
		archived := shopmodels.Order{OrderNumber: "EM-AABBCCDD", IsArchived: true}
		store := &fakeOrderStore{deleteResult: archived}
		svc := newOrderServiceFixture(store, nil, nil)

		deleted, err := svc.DeleteArchived(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "EM-AABBCCDD", deleted.OrderNumber)
	})

	t.Run("đơn tồn tại nhưng chưa lưu trữ", func(t *testing.T) {
		store := &fakeOrderStore{deleteErr: common.ErrNotFound, exists: true}
		svc := newOrderServiceFixture(store, nil, nil)

		_, err := svc.DeleteArchived(context.Background(), id)
		assert.ErrorIs(t, err, common.ErrNotArchived)
	})

	t.Run("đơn không tồn tại", func(t *testing.T) {
		store := &fakeOrderStore{deleteErr: common.ErrNotFound, exists: false}
		svc := newOrderServiceFixture(store, nil, nil)

		_, err := svc.DeleteArchived(context.Background(), id)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDeleteArchivedByNumber(t *testing.T) {
	t.Run("đơn tồn tại nhưng chưa lưu trữ", func(t *testing.T) {
		store := &fakeOrderStore{deleteErr: common.ErrNotFound, exists: true}
		svc := newOrderServiceFixture(store, nil, nil)

		_, err := svc.DeleteArchivedByNumber(context.Background(), "em-aabbccdd")
		assert.ErrorIs(t, err, common.ErrNotArchived)
	})

	t.Run("đơn không tồn tại", func(t *testing.T) {
		store := &fakeOrderStore{deleteErr: common.ErrNotFound, exists: false}
		svc := newOrderServiceFixture(store, nil, nil)

		_, err := svc.DeleteArchivedByNumber(context.Background(), "EM-AABBCCDD")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}
