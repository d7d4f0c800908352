package scenario

import (
	"testing"

	"LevelSentinel/internal/model"
)

func flatSeries(n int, price float64) []model.Candle {
	out := make([]model.Candle, n)
	for i := range out {
		out[i] = model.Candle{
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
	}
	return out
}

func TestEvaluate_InsufficientData(t *testing.T) {
	e := NewEvaluator(3.0, 1.5, model.DynamicAdjustment{})
	res := e.Evaluate(&model.CandleSet{}, &model.SwingLevels{SwingHigh: 100, SwingLow: 90})
	if res == nil {
		t.Fatal("Evaluate must never return nil")
	}
	if res.Status != model.StatusSkip {
		t.Errorf("expected skip, got %v", res.Status)
	}
}

func TestEvaluate_NoDirectionIsWatch(t *testing.T) {
	// Price pinned mid-range with featureless candles: no breakout, no
	// bounce, no direction.
	e := NewEvaluator(3.0, 1.5, model.DynamicAdjustment{})
	set := &model.CandleSet{
		Symbol:   "TESTUSDT",
		M15:      flatSeries(20, 95),
		M15Trend: flatSeries(50, 95),
		H1:       flatSeries(50, 95),
		H4:       flatSeries(50, 95),
		H1Swing:  flatSeries(100, 95),
	}
	swing := &model.SwingLevels{SwingHigh: 100, SwingLow: 90, SwingAge: 5}

	res := e.Evaluate(set, swing)
	if res.Status != model.StatusWatch {
		t.Fatalf("expected watch, got %v (%v)", res.Status, res.Reasons)
	}
	if len(res.Reasons) == 0 || res.Reasons[0] != "no direction" {
		t.Errorf("unexpected reasons: %v", res.Reasons)
	}
}

func TestEvaluate_NilSwingLevels(t *testing.T) {
	e := NewEvaluator(3.0, 1.5, model.DynamicAdjustment{})
	set := &model.CandleSet{
		M15: flatSeries(20, 95),
		H1:  flatSeries(50, 95),
		H4:  flatSeries(50, 95),
	}
	res := e.Evaluate(set, nil)
	if res.Status != model.StatusSkip {
		t.Errorf("expected skip for missing levels, got %v", res.Status)
	}
}
