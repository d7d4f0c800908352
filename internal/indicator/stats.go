package indicator

import (
	"math"

	"LevelSentinel/internal/model"
)

// CalculateCandleStats compares the given candle's body and wick sizes
// against ATR fractions, and its volume against a 10-bar trailing average.
func CalculateCandleStats(candle model.Candle, atr float64, volumes []float64) model.CandleStats {
	body := math.Abs(candle.Close - candle.Open)
	upper := candle.High - math.Max(candle.Open, candle.Close)
	lower := math.Min(candle.Open, candle.Close) - candle.Low

	window := volumes
	if len(window) > 10 {
		window = window[len(window)-10:]
	}
	avg := 0.0
	if len(window) > 0 {
		sum := 0.0
		for _, v := range window {
			sum += v
		}
		avg = sum / float64(len(window))
	}

	return model.CandleStats{
		Body:        body,
		UpperWick:   upper,
		LowerWick:   lower,
		Volume:      candle.Volume,
		VolumeSpike: candle.Volume > avg*1.6,
		StrongBody:  body > atr*0.6,
		Doji:        body < atr*0.1 && upper > body && lower > body,
		WeakVolume:  candle.Volume < avg*0.8,
	}
}
