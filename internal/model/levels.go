package model

// SwingLevels holds the clustered support/resistance picture for one
// symbol. Next* levels are the secondary clusters beyond the primary
// ones and may be absent.
type SwingLevels struct {
	SwingHigh     float64
	SwingLow      float64
	SwingAge      int // bars since either primary level was last touched
	TestsHigh     int
	TestsLow      int
	NextSwingHigh *float64
	NextSwingLow  *float64
}

// TrendlinePoint is one anchor of a fitted trendline.
type TrendlinePoint struct {
	Index int
	Price float64
}

// Trendline is a two-point fitted line through price extremes.
type Trendline struct {
	Slope    float64
	Start    TrendlinePoint
	End      TrendlinePoint
	Touches  int
	Age      int     // bars since the later anchor
	PriceNow float64 // line value extrapolated to the present bar
}

// TrendlineSide distinguishes lines fitted through highs from lines
// fitted through lows.
type TrendlineSide string

const (
	TrendlineDown TrendlineSide = "down" // fitted through highs, sloping down
	TrendlineUp   TrendlineSide = "up"   // fitted through lows, sloping up
)

// TrendlineSet keys detected trendlines by timeframe and side. Absent
// entries mean no line satisfied the fit thresholds.
type TrendlineSet map[string]map[TrendlineSide]*Trendline
