package scenario

import (
	"math"
	"strings"

	"LevelSentinel/internal/model"
)

// RetestInput carries everything the timing gate inspects for one
// evaluation.
type RetestInput struct {
	Direction    model.Direction
	CurrentPrice float64
	Closes15m    []float64
	SwingHigh    float64
	SwingLow     float64
	ATR          float64
	Stats        model.CandleStats
	Target       float64
	Limit        float64
	RR           float64
	Trend1h      model.Trend
	Trend4h      model.Trend
	MACDConfirms bool
	Confidence   float64
	RetestAge    int
	Reasons      []string
}

// CheckRetest is the stateless timing gate. A nil return means the
// scenario passes and the pipeline continues; a non-nil result overrides
// the verdict (skip, wait_retest, or an immediate valid confirmation).
//
// Breakout scenarios and exits from low-volume areas bypass the gate
// entirely; overheat checks only apply to level-relative entries.
func CheckRetest(in RetestInput) *model.ScenarioResult {
	joined := strings.ToLower(strings.Join(in.Reasons, " "))
	if strings.Contains(joined, "breakout") || strings.Contains(joined, "exit from low-volume area") {
		return nil
	}

	trendAgrees := func(t model.Trend) bool {
		return (in.Direction == model.DirectionLong && t == model.TrendUp) ||
			(in.Direction == model.DirectionShort && t == model.TrendDown)
	}
	confirm := in.Stats.StrongBody || in.Stats.VolumeSpike || in.MACDConfirms || trendAgrees(in.Trend1h)

	// A strong aligned trend with confirmation needs no overheat check.
	if trendAgrees(in.Trend1h) && trendAgrees(in.Trend4h) && confirm {
		return nil
	}

	// Body-stretch check over the last three closed candles.
	if in.RetestAge > 0 && len(in.Closes15m) >= 4 && !confirm {
		maxBody := 0.0
		for i := len(in.Closes15m) - 3; i < len(in.Closes15m); i++ {
			if b := math.Abs(in.Closes15m[i] - in.Closes15m[i-1]); b > maxBody {
				maxBody = b
			}
		}
		if maxBody > in.ATR*1.2 {
			return &model.ScenarioResult{
				Status:  model.StatusSkip,
				ATR:     in.ATR,
				Reasons: []string{"body stretch — evaluation too late"},
			}
		}
	}

	level := in.SwingHigh
	if in.Direction == model.DirectionShort {
		level = in.SwingLow
	}

	var impulse, overheated bool
	switch in.Direction {
	case model.DirectionLong:
		impulse = level < in.CurrentPrice && in.CurrentPrice <= level+in.ATR*0.3
		overheated = in.CurrentPrice > level+in.ATR*2.0
	case model.DirectionShort:
		impulse = level-in.ATR*0.3 <= in.CurrentPrice && in.CurrentPrice < level
		overheated = in.CurrentPrice < level-in.ATR*2.0
	default:
		return nil
	}
	retestZone := math.Abs(in.CurrentPrice-level) <= in.ATR*0.1

	if impulse {
		return nil
	}

	if overheated && in.Confidence < 2 {
		reason := "overheated long — price significantly above swing high"
		if in.Direction == model.DirectionShort {
			reason = "overheated short — price significantly below swing low"
		}
		return &model.ScenarioResult{
			Status:  model.StatusSkip,
			ATR:     in.ATR,
			Reasons: []string{reason},
		}
	}

	if retestZone {
		if confirm {
			reason := "validation after retest with confirmation (LONG)"
			if in.Direction == model.DirectionShort {
				reason = "validation after retest with confirmation (SHORT)"
			}
			return &model.ScenarioResult{
				Status:           model.StatusValid,
				Direction:        in.Direction,
				EvaluationPrice:  in.CurrentPrice,
				StructuralTarget: in.Target,
				StructuralLimit:  in.Limit,
				FullTarget:       in.Target,
				RR:               math.Round(in.RR*100) / 100,
				ATR:              in.ATR,
				Reasons:          []string{reason},
			}
		}
		reason := "waiting for confirmation after return to swing high (LONG)"
		if in.Direction == model.DirectionShort {
			reason = "waiting for confirmation after return to swing low (SHORT)"
		}
		return &model.ScenarioResult{
			Status:  model.StatusWaitRetest,
			ATR:     in.ATR,
			Reasons: []string{reason},
		}
	}

	return nil
}
