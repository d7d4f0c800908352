package collector

import "LevelSentinel/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchKlines(symbol, interval string, limit int) ([]model.Candle, error)
	FetchTopSymbols(limit int) ([]string, error)
	Name() string
}
