package indicator

import "LevelSentinel/internal/model"

// CalculateTrend compares the latest close against the close five slots
// back using a 0.2×ATR threshold. Fewer than 6 closes yields flat.
func CalculateTrend(closes []float64, atr float64) model.Trend {
	n := len(closes)
	if n < 6 {
		return model.TrendFlat
	}
	last := closes[n-1]
	ref := closes[n-5]
	switch {
	case last > ref+0.2*atr:
		return model.TrendUp
	case last < ref-0.2*atr:
		return model.TrendDown
	default:
		return model.TrendFlat
	}
}
