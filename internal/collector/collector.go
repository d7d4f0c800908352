package collector

import (
	"fmt"
	"time"

	"LevelSentinel/internal/model"
)

// Window sizes per timeframe. The 15m stats window is deliberately
// short; trendline fitting and swing detection use longer windows.
const (
	m1Limit     = 30
	m15Limit    = 20
	m15TrendLim = 50
	h1Limit     = 50
	h4Limit     = 50
	swingLimit  = 100
)

// Collector assembles the multi-timeframe candle set one evaluation needs.
type Collector struct {
	Fetcher       Fetcher
	SwingLookback int // 1h window for swing detection; 0 means the default
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches every candle series the pipeline consumes for one
// symbol. A failed fetch of any required series is an error; the caller
// degrades the symbol to a watch outcome.
func (c *Collector) Collect(symbol string) (*model.CandleSet, error) {
	set := &model.CandleSet{Symbol: symbol, FetchedAt: time.Now().UTC()}

	fetch := func(interval string, limit int, dst *[]model.Candle) error {
		candles, err := c.Fetcher.FetchKlines(symbol, interval, limit)
		if err != nil {
			return fmt.Errorf("fetch %s %s: %w", symbol, interval, err)
		}
		*dst = candles
		return nil
	}

	if err := fetch("1m", m1Limit, &set.M1); err != nil {
		return nil, err
	}
	if err := fetch("15m", m15Limit, &set.M15); err != nil {
		return nil, err
	}
	if err := fetch("15m", m15TrendLim, &set.M15Trend); err != nil {
		return nil, err
	}
	if err := fetch("1h", h1Limit, &set.H1); err != nil {
		return nil, err
	}
	if err := fetch("4h", h4Limit, &set.H4); err != nil {
		return nil, err
	}
	swingWindow := swingLimit
	if c.SwingLookback > 0 {
		swingWindow = c.SwingLookback
	}
	if err := fetch("1h", swingWindow, &set.H1Swing); err != nil {
		return nil, err
	}
	return set, nil
}
