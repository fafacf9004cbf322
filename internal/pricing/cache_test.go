// Package pricing - Test chiến lược cache bảng giá.
package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
)

// fakeStore là RateStore trong bộ nhớ cho test
type fakeStore struct {
	table     *shopmodels.PriceTable
	loadErr   error
	saveErr   error
	saveCalls int
}

func (s *fakeStore) Load(ctx context.Context) (*shopmodels.PriceTable, error) {
	return s.table, s.loadErr
}

func (s *fakeStore) Save(ctx context.Context, table *shopmodels.PriceTable) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.table = table
	return nil
}

// countingFetcher đếm số lần gọi API giá
type countingFetcher struct {
	rates map[string]float64
	err   error
	calls int
}

func (f *countingFetcher) fetch(ctx context.Context, apiIDs []string) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

func staticWallets(apiIDs ...string) WalletSource {
	return func(ctx context.Context) ([]string, error) {
		return apiIDs, nil
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGetTable_FreshCacheSkipsFetch(t *testing.T) {
	now := time.Now()
	store := &fakeStore{table: &shopmodels.PriceTable{
		ID:        shopmodels.PriceTableID,
		Rates:     map[string]float64{"bitcoin": 50},
		UpdatedAt: now.Add(-10 * time.Minute).UnixMilli(),
	}}
	fetcher := &countingFetcher{rates: map[string]float64{"bitcoin": 999}}

	svc := NewCacheService(store, fetcher.fetch, staticWallets("bitcoin"), 2*time.Hour)
	svc.now = fixedNow(now)

	table := svc.GetTable(context.Background())
	require.NotNil(t, table)
	assert.Equal(t, float64(50), table.Rates["bitcoin"])
	assert.Equal(t, 0, fetcher.calls, "bảng còn tươi thì không được gọi API")
}

func TestGetTable_StaleCacheTriggersRefresh(t *testing.T) {
	now := time.Now()
	store := &fakeStore{table: &shopmodels.PriceTable{
		ID:        shopmodels.PriceTableID,
		Rates:     map[string]float64{"bitcoin": 50},
		UpdatedAt: now.Add(-3 * time.Hour).UnixMilli(),
	}}
	fetcher := &countingFetcher{rates: map[string]float64{"bitcoin": 60, "ethereum": 3}}

	svc := NewCacheService(store, fetcher.fetch, staticWallets("bitcoin", "ethereum"), 2*time.Hour)
	svc.now = fixedNow(now)

	table := svc.GetTable(context.Background())
	require.NotNil(t, table)
	assert.Equal(t, float64(60), table.Rates["bitcoin"])
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 1, store.saveCalls, "bảng mới phải được persist")
	assert.Equal(t, now.UnixMilli(), table.UpdatedAt)
}

func TestGetTable_FetchFailureFallsBackToStale(t *testing.T) {
	now := time.Now()
	store := &fakeStore{table: &shopmodels.PriceTable{
		ID:        shopmodels.PriceTableID,
		Rates:     map[string]float64{"bitcoin": 50},
		UpdatedAt: now.Add(-3 * time.Hour).UnixMilli(),
	}}
	staleUpdatedAt := store.table.UpdatedAt
	fetcher := &countingFetcher{err: errors.New("upstream down")}

	svc := NewCacheService(store, fetcher.fetch, staticWallets("bitcoin"), 2*time.Hour)
	svc.now = fixedNow(now)

	// API lỗi: giá cũ vẫn hơn không có giá
	table := svc.GetTable(context.Background())
	require.NotNil(t, table)
	assert.Equal(t, float64(50), table.Rates["bitcoin"])

	// Fallback giữ nguyên bảng cũ: không persist lại, updatedAt không đổi
	assert.Equal(t, 0, store.saveCalls, "fallback không được ghi đè bảng đã persist")
	assert.Equal(t, staleUpdatedAt, table.UpdatedAt, "updatedAt phải giữ nguyên khi dùng bảng cũ")
}

func TestGetTable_NothingAvailableReturnsEmptyTable(t *testing.T) {
	store := &fakeStore{}
	fetcher := &countingFetcher{err: errors.New("upstream down")}

	svc := NewCacheService(store, fetcher.fetch, staticWallets("bitcoin"), 2*time.Hour)

	table := svc.GetTable(context.Background())
	require.NotNil(t, table, "GetTable không bao giờ trả nil")
	assert.Equal(t, shopmodels.PriceTableID, table.ID)
	assert.Empty(t, table.Rates)
}

func TestGetTable_LoadErrorStillRefreshes(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("mongo down")}
	fetcher := &countingFetcher{rates: map[string]float64{"bitcoin": 70}}

	svc := NewCacheService(store, fetcher.fetch, staticWallets("bitcoin"), 2*time.Hour)

	table := svc.GetTable(context.Background())
	require.NotNil(t, table)
	assert.Equal(t, float64(70), table.Rates["bitcoin"])
}

func TestGetTable_SaveErrorDoesNotBlockRates(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("mongo down")}
	fetcher := &countingFetcher{rates: map[string]float64{"bitcoin": 80}}

	svc := NewCacheService(store, fetcher.fetch, staticWallets("bitcoin"), 2*time.Hour)

	table := svc.GetTable(context.Background())
	require.NotNil(t, table)
	assert.Equal(t, float64(80), table.Rates["bitcoin"])
}

func TestRateFor(t *testing.T) {
	now := time.Now()
	store := &fakeStore{table: &shopmodels.PriceTable{
		ID:        shopmodels.PriceTableID,
		Rates:     map[string]float64{"bitcoin": 50},
		UpdatedAt: now.UnixMilli(),
	}}
	fetcher := &countingFetcher{}

	svc := NewCacheService(store, fetcher.fetch, staticWallets("bitcoin"), 2*time.Hour)
	svc.now = fixedNow(now)

	rate, ok := svc.RateFor(context.Background(), "bitcoin")
	assert.True(t, ok)
	assert.Equal(t, float64(50), rate)

	_, ok = svc.RateFor(context.Background(), "dogecoin")
	assert.False(t, ok, "coin không có trong bảng phải trả ok=false")
}

func TestNewCacheService_DefaultTTL(t *testing.T) {
	svc := NewCacheService(&fakeStore{}, (&countingFetcher{}).fetch, staticWallets(), 0)
	assert.Equal(t, DefaultCacheTTL, svc.ttl)
}
