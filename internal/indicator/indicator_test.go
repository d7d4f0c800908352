package indicator

import (
	"math"
	"testing"

	"LevelSentinel/internal/model"
)

func flatCandles(n int, high, low, close float64) []model.Candle {
	out := make([]model.Candle, n)
	for i := range out {
		out[i] = model.Candle{Open: close, High: high, Low: low, Close: close, Volume: 1000}
	}
	return out
}

func TestCalculateATR_InsufficientHistory(t *testing.T) {
	candles := flatCandles(5, 102, 98, 100)
	if got := CalculateATR(candles, 5); got != 0 {
		t.Errorf("expected 0 for short history, got %f", got)
	}
	if got := CalculateATR(nil, 14); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
}

func TestCalculateATR_ConstantRange(t *testing.T) {
	// Constant 4-point range with flat closes: every true range is 4.
	candles := flatCandles(6, 102, 98, 100)
	got := CalculateATR(candles, 5)
	if math.Abs(got-4.0) > 1e-9 {
		t.Errorf("expected ATR 4.0, got %f", got)
	}
}

func TestCalculateTrend(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		atr    float64
		want   model.Trend
	}{
		{"up", []float64{100, 100, 100, 100, 100, 105}, 2, model.TrendUp},
		{"down", []float64{100, 100, 100, 100, 100, 95}, 2, model.TrendDown},
		{"inside threshold", []float64{100, 100, 100, 100, 100, 100.2}, 2, model.TrendFlat},
		{"short history", []float64{100, 101, 102}, 2, model.TrendFlat},
	}
	for _, tt := range tests {
		if got := CalculateTrend(tt.closes, tt.atr); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestCalculateMACD_InsufficientHistory(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}
	macd := CalculateMACD(closes)
	if macd.Valid {
		t.Error("expected invalid MACD for fewer than 26 closes")
	}
	if macd.MACD != 0 || macd.Signal != 0 || macd.Histogram != 0 {
		t.Error("invalid MACD must carry zero values")
	}
}

func TestCalculateMACD_RisingSeries(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	macd := CalculateMACD(closes)
	if !macd.Valid {
		t.Fatal("expected valid MACD")
	}
	if macd.MACD <= macd.Signal {
		t.Errorf("rising series should put MACD above signal: %f <= %f", macd.MACD, macd.Signal)
	}
	if macd.Histogram <= 0 {
		t.Errorf("expected positive histogram, got %f", macd.Histogram)
	}
}

func TestCalculateVolumeProfile_POC(t *testing.T) {
	// Two price clusters; the heavier one is the POC.
	candles := []model.Candle{
		{High: 100.5, Low: 99.5, Close: 100, Volume: 10},
		{High: 100.5, Low: 99.5, Close: 100, Volume: 10},
		{High: 100.5, Low: 99.5, Close: 100, Volume: 10},
		{High: 105.5, Low: 104.5, Close: 105, Volume: 5},
		{High: 105.5, Low: 104.5, Close: 100, Volume: 5},
	}
	vp := CalculateVolumeProfile(candles)
	if vp.POC == nil {
		t.Fatal("expected POC")
	}
	if math.Abs(*vp.POC-100) > 0.5 {
		t.Errorf("expected POC near 100, got %f", *vp.POC)
	}
}

func TestCalculateVolumeProfile_ShortHistory(t *testing.T) {
	vp := CalculateVolumeProfile(flatCandles(2, 101, 99, 100))
	if vp.POC != nil {
		t.Error("expected empty profile for fewer than 3 candles")
	}
}

func TestCalculateCandleStats(t *testing.T) {
	volumes := make([]float64, 10)
	for i := range volumes {
		volumes[i] = 10
	}

	strong := CalculateCandleStats(model.Candle{Open: 100, High: 100.9, Low: 99.9, Close: 100.8, Volume: 20}, 1, volumes)
	if !strong.StrongBody {
		t.Error("body 0.8 with ATR 1 should be strong")
	}
	if !strong.VolumeSpike {
		t.Error("volume 20 against average 10 should spike")
	}
	if strong.Doji || strong.WeakVolume {
		t.Error("strong candle misclassified")
	}

	doji := CalculateCandleStats(model.Candle{Open: 100, High: 100.5, Low: 99.6, Close: 100.05, Volume: 5}, 1, volumes)
	if !doji.Doji {
		t.Error("tiny body with dominant wicks should be a doji")
	}
	if !doji.WeakVolume {
		t.Error("volume 5 against average 10 should be weak")
	}
}

func TestClassifyMarketMode(t *testing.T) {
	steady := []float64{1, 1, 1, 1, 1}
	spiky := []float64{1, 1, 1, 1, 5}

	tests := []struct {
		name    string
		trend   model.Trend
		fast    float64
		slow    float64
		volumes []float64
		want    model.MarketMode
	}{
		{"short volumes", model.TrendUp, 1, 1, []float64{1, 1}, model.ModeNeutral},
		{"flat compression", model.TrendFlat, 0.5, 1.0, steady, model.ModeFlat},
		{"trend with spike", model.TrendUp, 1, 1, spiky, model.ModeTrend},
		{"volatility expansion", model.TrendUp, 2.0, 1.0, steady, model.ModeScalp},
		{"default", model.TrendUp, 1, 1, steady, model.ModeNeutral},
	}
	for _, tt := range tests {
		if got := ClassifyMarketMode(tt.trend, tt.fast, tt.slow, tt.volumes); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}
