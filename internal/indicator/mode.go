package indicator

import "LevelSentinel/internal/model"

// ClassifyMarketMode derives the market regime from the 1h trend, the
// fast/slow ATR ratio and a short-window volume spike. Needs at least
// 5 volume entries; otherwise the mode is neutral.
func ClassifyMarketMode(trend1h model.Trend, atrFast, atrSlow float64, volumes []float64) model.MarketMode {
	n := len(volumes)
	if n < 5 {
		return model.ModeNeutral
	}
	prevMax := volumes[n-5]
	for _, v := range volumes[n-4 : n-1] {
		if v > prevMax {
			prevMax = v
		}
	}
	spike := volumes[n-1] > prevMax

	switch {
	case trend1h == model.TrendFlat && atrFast < atrSlow*0.6:
		return model.ModeFlat
	case (trend1h == model.TrendUp || trend1h == model.TrendDown) && spike:
		return model.ModeTrend
	case atrFast > atrSlow*1.8:
		return model.ModeScalp
	default:
		return model.ModeNeutral
	}
}
