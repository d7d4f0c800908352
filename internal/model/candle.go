package model

import "time"

// Candle represents a single OHLCV bar, ordered oldest to newest in a series.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Highs extracts the high prices from a candle series.
func Highs(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.High
	}
	return out
}

// Lows extracts the low prices from a candle series.
func Lows(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Low
	}
	return out
}

// Closes extracts the close prices from a candle series.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Volumes extracts the volumes from a candle series.
func Volumes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}
	return out
}

// CandleSet holds the multi-timeframe candle series one evaluation needs.
type CandleSet struct {
	Symbol    string
	M1        []Candle // short 1m window for the volatility guard
	M15       []Candle // recent 15m window for stats and volume profile
	M15Trend  []Candle // longer 15m window for trendline fitting
	H1        []Candle
	H4        []Candle
	H1Swing   []Candle // long 1h window for swing level detection
	FetchedAt time.Time
}
