package pricing

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
)

// DefaultCacheTTL thời gian một bảng giá được coi là còn tươi.
const DefaultCacheTTL = 120 * time.Minute

// RateStore lưu/đọc bảng giá đã persist (sống qua restart).
type RateStore interface {
	Load(ctx context.Context) (*shopmodels.PriceTable, error)
	Save(ctx context.Context, table *shopmodels.PriceTable) error
}

// RateFetcher lấy tỷ giá mới cho danh sách coin id.
type RateFetcher func(ctx context.Context, apiIDs []string) (map[string]float64, error)

// WalletSource trả về danh sách coin id cần lấy giá (từ các ví đang hoạt động).
type WalletSource func(ctx context.Context) ([]string, error)

// CacheService phục vụ bảng giá với chiến lược cache-aside có persist:
//   - bảng còn tươi (trong TTL) → trả ngay, không gọi API
//   - bảng hết hạn → gọi API, lưu lại và trả bảng mới
//   - API lỗi nhưng còn bảng cũ → trả bảng cũ (giá cũ vẫn hơn không có giá)
//   - API lỗi và không có gì → trả bảng rỗng
//
// GetTable không bao giờ trả lỗi cho caller: checkout chỉ thất bại ở bước
// tra tỷ giá từng coin, không thất bại vì hạ tầng giá.
type CacheService struct {
	store        RateStore
	fetch        RateFetcher
	walletSource WalletSource
	ttl          time.Duration
	now          func() time.Time

	mu sync.Mutex // tránh nhiều request cùng lúc đua nhau gọi API khi cache hết hạn
}

// NewCacheService tạo CacheService. ttl <= 0 dùng DefaultCacheTTL.
func NewCacheService(store RateStore, fetch RateFetcher, walletSource WalletSource, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheService{
		store:        store,
		fetch:        fetch,
		walletSource: walletSource,
		ttl:          ttl,
		now:          time.Now,
	}
}

// GetTable trả về bảng giá dùng được: bảng tươi, bảng mới fetch,
// bảng cũ (fallback) hoặc bảng rỗng. Không bao giờ trả nil.
func (s *CacheService) GetTable(ctx context.Context) *shopmodels.PriceTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, err := s.store.Load(ctx)
	if err != nil {
		logrus.WithError(err).Warn("💱 [PRICE] Không đọc được bảng giá từ cache")
		cached = nil
	}

	if cached != nil && s.isFresh(cached) {
		return cached
	}

	refreshed := s.refresh(ctx)
	if refreshed != nil {
		return refreshed
	}

	// Fetch thất bại: bảng cũ vẫn dùng được
	if cached != nil {
		logrus.Warn("💱 [PRICE] Dùng bảng giá cũ do không lấy được giá mới")
		return cached
	}

	logrus.Warn("💱 [PRICE] Không có bảng giá nào, trả bảng rỗng")
	return &shopmodels.PriceTable{
		ID:    shopmodels.PriceTableID,
		Rates: map[string]float64{},
	}
}

// RateFor trả về tỷ giá của một coin id (triển khai rate provider cho checkout)
func (s *CacheService) RateFor(ctx context.Context, apiID string) (float64, bool) {
	return s.GetTable(ctx).RateFor(apiID)
}

// Warm làm nóng cache lúc khởi động server
func (s *CacheService) Warm(ctx context.Context) {
	table := s.GetTable(ctx)
	logrus.Infof("💱 [PRICE] Cache giá sẵn sàng với %d coin", len(table.Rates))
}

// isFresh kiểm tra bảng giá còn trong TTL không
func (s *CacheService) isFresh(table *shopmodels.PriceTable) bool {
	if table.UpdatedAt <= 0 {
		return false
	}
	age := s.now().UnixMilli() - table.UpdatedAt
	return age < s.ttl.Milliseconds()
}

// refresh gọi API lấy giá mới và persist. Trả nil khi thất bại.
func (s *CacheService) refresh(ctx context.Context) *shopmodels.PriceTable {
	apiIDs, err := s.walletSource(ctx)
	if err != nil {
		logrus.WithError(err).Warn("💱 [PRICE] Không lấy được danh sách coin từ ví")
		return nil
	}

	rates, err := s.fetch(ctx, apiIDs)
	if err != nil {
		logrus.WithError(err).Warn("💱 [PRICE] Làm mới bảng giá thất bại")
		return nil
	}

	table := &shopmodels.PriceTable{
		ID:        shopmodels.PriceTableID,
		Rates:     rates,
		UpdatedAt: s.now().UnixMilli(),
	}

	if err := s.store.Save(ctx, table); err != nil {
		// Lưu thất bại không chặn việc dùng giá vừa lấy được
		logrus.WithError(err).Warn("💱 [PRICE] Không lưu được bảng giá vào cache")
	}

	return table
}
