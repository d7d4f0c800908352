package indicator

import "LevelSentinel/internal/model"

// CalculateMACD computes the normalized MACD (EMA12−EMA26, EMA9 signal)
// from close prices. Needs at least 26 closes; otherwise returns an
// invalid MACD that downstream treats as "does not confirm".
func CalculateMACD(closes []float64) model.MACD {
	if len(closes) < 26 {
		return model.MACD{}
	}
	macdLine := make([]float64, len(closes))
	ema12 := ema(closes, 12)
	ema26 := ema(closes, 26)
	for i := range closes {
		macdLine[i] = ema12[i] - ema26[i]
	}
	signal := ema(macdLine, 9)
	last := len(closes) - 1
	return model.MACD{
		MACD:      macdLine[last],
		Signal:    signal[last],
		Histogram: macdLine[last] - signal[last],
		Valid:     true,
	}
}

// ema computes an exponential moving average seeded with the first value,
// so output length equals input length.
func ema(values []float64, period int) []float64 {
	alpha := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
