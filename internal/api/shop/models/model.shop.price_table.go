// Package models - PriceTable thuộc domain shop (price_cache).
package models

// PriceTableID _id cố định của document bảng giá (singleton trong collection price_cache).
const PriceTableID = "all_prices"

// PriceTable bảng tỷ giá coin → tiền pháp định, cache trong MongoDB (price_cache).
// Rates map từ ApiID của ví (vd: "bitcoin") sang tỷ giá fiat trên 1 coin.
type PriceTable struct {
	ID        string             `json:"id" bson:"_id"`             // Luôn là "all_prices"
	Rates     map[string]float64 `json:"rates" bson:"rates"`        // apiId -> tỷ giá fiat
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"` // Thời gian fetch gần nhất (unix milli)
}

// RateFor trả về tỷ giá cho một apiId. ok = false khi chưa có tỷ giá.
func (p *PriceTable) RateFor(apiID string) (float64, bool) {
	if p == nil || p.Rates == nil {
		return 0, false
	}
	rate, ok := p.Rates[apiID]
	return rate, ok
}
