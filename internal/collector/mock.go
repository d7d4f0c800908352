package collector

import (
	"time"

	"LevelSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Series  map[string][]model.Candle // keyed by interval; generated when absent
	Symbols []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchKlines(_ string, interval string, limit int) ([]model.Candle, error) {
	if s, ok := m.Series[interval]; ok {
		return s, nil
	}
	return GenerateCandles(m.Price, limit), nil
}

func (m *MockFetcher) FetchTopSymbols(limit int) ([]string, error) {
	if limit < len(m.Symbols) {
		return m.Symbols[:limit], nil
	}
	return m.Symbols, nil
}

// GenerateCandles produces a gently drifting synthetic series around a
// base price.
func GenerateCandles(basePrice float64, count int) []model.Candle {
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		candles[i] = model.Candle{
			Time:   time.Now().UTC().Add(-time.Duration(count-i) * time.Minute),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return candles
}
