package scenario

import (
	"math"
	"testing"

	"LevelSentinel/internal/model"
)

func containsReason(reasons []string, want string) bool {
	for _, r := range reasons {
		if r == want {
			return true
		}
	}
	return false
}

func TestAssessConfidence_AllConfirmations(t *testing.T) {
	macd := model.MACD{MACD: 1, Signal: 0.5, Histogram: 0.5, Valid: true}
	res := AssessConfidence(model.DirectionLong, []string{"Breakout up + volume + 1H trend"},
		5, model.TrendUp, model.VolumeProfile{}, macd, 100, 2)

	if res.Score != 4 {
		t.Errorf("expected score 4 (seed 1 + fresh + 4H + MACD), got %f", res.Score)
	}
	for _, want := range []string{"fresh level", "4H confirms", "MACD confirms"} {
		if !containsReason(res.Reasons, want) {
			t.Errorf("missing reason %q in %v", want, res.Reasons)
		}
	}
}

func TestAssessConfidence_SoftPenaltyAppliedOnce(t *testing.T) {
	// Two soft signals (flat 4H, weak MACD) against a score of 2: the
	// discount is a single −0.5 regardless of how many soft signals piled up.
	res := AssessConfidence(model.DirectionLong, []string{"Simple up breakout"},
		5, model.TrendFlat, model.VolumeProfile{}, model.MACD{}, 100, 2)

	if res.Score != 1.5 {
		t.Errorf("expected score 1.5, got %f", res.Score)
	}
	if !containsReason(res.Reasons, "4H flat") || !containsReason(res.Reasons, "MACD weak") {
		t.Errorf("soft reasons must surface once the penalty applies: %v", res.Reasons)
	}
}

func TestAssessConfidence_SoftPenaltySkippedWhenWeak(t *testing.T) {
	// Same soft signals but the running score stays below 2: no discount,
	// and the soft reasons stay hidden.
	res := AssessConfidence(model.DirectionLong, []string{"Simple up breakout"},
		60, model.TrendFlat, model.VolumeProfile{}, model.MACD{}, 100, 2)

	if res.Score != 0 {
		t.Errorf("expected score 0 (seed 1 − old level), got %f", res.Score)
	}
	if containsReason(res.Reasons, "4H flat") || containsReason(res.Reasons, "MACD weak") {
		t.Errorf("soft reasons must stay hidden without the penalty: %v", res.Reasons)
	}
}

func TestAssessConfidence_AbsentMACDIsSoft(t *testing.T) {
	// An invalid MACD must stay a soft signal no matter what values it
	// carries; it never adds or subtracts a full point.
	macd := model.MACD{MACD: 5, Signal: 1, Histogram: 4, Valid: false}
	res := AssessConfidence(model.DirectionLong, []string{"Simple up breakout"},
		5, model.TrendUp, model.VolumeProfile{}, macd, 100, 2)

	// seed 1 + fresh + 4H = 3, then the one-time soft discount.
	if res.Score != 2.5 {
		t.Errorf("expected score 2.5, got %f", res.Score)
	}
	if containsReason(res.Reasons, "MACD confirms") || containsReason(res.Reasons, "MACD does not confirm") {
		t.Errorf("invalid MACD must not produce a hard verdict: %v", res.Reasons)
	}
	if !containsReason(res.Reasons, "MACD weak") {
		t.Errorf("expected the soft MACD reason: %v", res.Reasons)
	}
}

func TestAssessConfidence_NearPOC(t *testing.T) {
	poc := 100.3
	vp := model.VolumeProfile{POC: &poc}
	res := AssessConfidence(model.DirectionLong, []string{"Simple up breakout"},
		5, model.TrendUp, vp, model.MACD{MACD: 1, Signal: 0.5, Histogram: 0.5, Valid: true}, 100, 2)

	// seed 1 + fresh + 4H + MACD − near POC = 3
	if res.Score != 3 {
		t.Errorf("expected score 3, got %f", res.Score)
	}
	if !containsReason(res.Reasons, "near POC") {
		t.Errorf("missing POC reason: %v", res.Reasons)
	}
}

func TestAssessConfidence_LowVolumeNodeBonus(t *testing.T) {
	poc := 110.0
	vp := model.VolumeProfile{POC: &poc, LowVolumeNodes: []float64{100}}
	res := AssessConfidence(model.DirectionLong, []string{"Simple up breakout"},
		60, model.TrendDown, vp, model.MACD{MACD: -1, Signal: -0.5, Histogram: -0.5, Valid: true}, 100, 2)

	// seed 1 − old − 4H + node − MACD = −1
	if res.Score != -1 {
		t.Errorf("expected score -1, got %f", res.Score)
	}
	if !containsReason(res.Reasons, "exit from low-volume area") {
		t.Errorf("missing low-volume reason: %v", res.Reasons)
	}
}

func TestAssessConfidence_HalfPointQuantization(t *testing.T) {
	cases := []struct {
		age   int
		trend model.Trend
		macd  model.MACD
	}{
		{5, model.TrendUp, model.MACD{MACD: 1, Signal: 0, Histogram: 1, Valid: true}},
		{30, model.TrendFlat, model.MACD{}},
		{60, model.TrendDown, model.MACD{MACD: -1, Signal: 0, Histogram: -1, Valid: true}},
	}
	for _, c := range cases {
		res := AssessConfidence(model.DirectionLong, []string{"Simple up breakout"},
			c.age, c.trend, model.VolumeProfile{}, c.macd, 100, 2)
		if r := math.Mod(res.Score*2, 1); r != 0 {
			t.Errorf("score %f is not a multiple of 0.5", res.Score)
		}
	}
}
