package indicator

import (
	"math"

	"LevelSentinel/internal/model"
)

// CalculateATR computes the average true range over a sliding window of
// the requested period. Returns 0 when fewer than period+1 candles are
// available; callers treat that as "no volatility estimate" rather than
// an error.
func CalculateATR(candles []model.Candle, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		return 0
	}
	tr := trueRange(candles)
	sum := 0.0
	for i := len(tr) - period; i < len(tr); i++ {
		sum += tr[i]
	}
	return sum / float64(period)
}

// trueRange returns the per-candle true range series. The first entry
// uses its own close as the previous close.
func trueRange(candles []model.Candle) []float64 {
	tr := make([]float64, len(candles))
	for i, c := range candles {
		prevClose := c.Close
		if i > 0 {
			prevClose = candles[i-1].Close
		}
		tr[i] = math.Max(c.High-c.Low,
			math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
	}
	return tr
}
