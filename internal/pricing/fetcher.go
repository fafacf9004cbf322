package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/buggerbugsbunny/kriptopazar/internal/common"
)

// Fetcher gọi API giá (CoinGecko-compatible) để lấy tỷ giá crypto → tiền pháp định.
type Fetcher struct {
	BaseURL    string // vd: https://api.coingecko.com/api/v3
	VsCurrency string // mã tiền pháp định quy đổi, vd: "try", "usd"
	client     *http.Client
}

// NewFetcher tạo Fetcher với timeout 10 giây
func NewFetcher(baseURL, vsCurrency string) *Fetcher {
	return &Fetcher{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		VsCurrency: strings.ToLower(vsCurrency),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchRates lấy tỷ giá cho danh sách coin id.
// Trả về map coin id → giá theo VsCurrency. Coin không có giá bị bỏ qua.
func (f *Fetcher) FetchRates(ctx context.Context, apiIDs []string) (map[string]float64, error) {
	if len(apiIDs) == 0 {
		return map[string]float64{}, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(apiIDs, ","))
	query.Set("vs_currencies", f.VsCurrency)
	endpoint := fmt.Sprintf("%s/simple/price?%s", f.BaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodeUpstream, "Không thể tạo request tới API giá", common.StatusInternalServerError, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("💱 [PRICE] Gọi API giá thất bại")
		return nil, common.NewError(common.ErrCodeUpstream, "Gọi API giá thất bại", common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.Warnf("💱 [PRICE] API giá trả về status %d", resp.StatusCode)
		return nil, common.NewError(
			common.ErrCodeUpstream,
			fmt.Sprintf("API giá trả về status %d", resp.StatusCode),
			common.StatusBadGateway,
			nil,
		)
	}

	// Response dạng: {"bitcoin": {"try": 123.45}, "ethereum": {"try": 67.89}}
	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, common.NewError(common.ErrCodeUpstream, "Không thể parse response API giá", common.StatusBadGateway, err)
	}

	rates := make(map[string]float64, len(payload))
	for apiID, prices := range payload {
		if rate, ok := prices[f.VsCurrency]; ok && rate > 0 {
			rates[apiID] = rate
		}
	}

	logrus.Infof("💱 [PRICE] Đã lấy tỷ giá cho %d/%d coin", len(rates), len(apiIDs))
	return rates, nil
}
