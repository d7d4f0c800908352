package model

// Trend classifies price direction on a single timeframe.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// MarketMode classifies the overall market regime.
type MarketMode string

const (
	ModeTrend   MarketMode = "trend"
	ModeScalp   MarketMode = "scalp"
	ModeFlat    MarketMode = "flat"
	ModeNeutral MarketMode = "neutral"
)

// MACD holds the normalized MACD triple. Valid is false when there was
// not enough history to compute it; downstream treats that as a weak,
// non-confirming signal.
type MACD struct {
	MACD      float64
	Signal    float64
	Histogram float64
	Valid     bool
}

// VolumeProfile holds the point of control and low-volume price bins.
// POC is nil when fewer than 3 candles were available.
type VolumeProfile struct {
	POC            *float64
	LowVolumeNodes []float64
}

// CandleStats describes the most recent candle relative to ATR and
// trailing volume.
type CandleStats struct {
	Body        float64
	UpperWick   float64
	LowerWick   float64
	Volume      float64
	VolumeSpike bool
	StrongBody  bool
	Doji        bool
	WeakVolume  bool
}
