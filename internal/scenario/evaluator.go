package scenario

import (
	"errors"
	"math"
	"strings"

	"LevelSentinel/internal/indicator"
	"LevelSentinel/internal/levels"
	"LevelSentinel/internal/model"
)

// Evaluator chains indicator computation, direction resolution,
// structural level selection, confidence scoring and the retest gate
// into a single ScenarioResult. It is a pure function of its inputs and
// safe to run concurrently across symbols.
type Evaluator struct {
	Trendlines   *levels.TrendlineDetector
	TargetRatio  float64
	PartialRatio float64
	Dynamic      model.DynamicAdjustment
}

// NewEvaluator wires an evaluator with the given structural ratios.
func NewEvaluator(targetRatio, partialRatio float64, dyn model.DynamicAdjustment) *Evaluator {
	return &Evaluator{
		Trendlines:   levels.NewTrendlineDetector(),
		TargetRatio:  targetRatio,
		PartialRatio: partialRatio,
		Dynamic:      dyn,
	}
}

var trendlineTimeframes = []string{"15m", "1h"}

// Evaluate runs the full pipeline for one symbol. It never returns nil:
// insufficient data or a missing structural limit degrade to skip/watch
// verdicts rather than errors.
func (e *Evaluator) Evaluate(set *model.CandleSet, swing *model.SwingLevels) *model.ScenarioResult {
	if len(set.M15) == 0 || len(set.H1) == 0 || len(set.H4) == 0 || swing == nil {
		return &model.ScenarioResult{
			Status:  model.StatusSkip,
			Reasons: []string{"insufficient candle history"},
		}
	}

	closes15m := model.Closes(set.M15)
	volumes15m := model.Volumes(set.M15)
	closes1h := model.Closes(set.H1)
	closes4h := model.Closes(set.H4)
	currentPrice := closes15m[len(closes15m)-1]

	atr := indicator.CalculateATR(set.M15, 5)
	atrSlow := indicator.CalculateATR(set.M15, 15)
	atr1h := indicator.CalculateATR(set.H1, 14)
	trend1h := indicator.CalculateTrend(closes1h, atr1h)
	trend4h := indicator.CalculateTrend(closes4h, atr1h)
	marketMode := indicator.ClassifyMarketMode(trend1h, atr, atrSlow, volumes15m)
	stats := indicator.CalculateCandleStats(set.M15[len(set.M15)-1], atr, volumes15m)

	decision := EvaluateDirection(currentPrice, swing.SwingHigh, swing.SwingLow, trend1h, atr, stats)
	if decision.Direction == model.DirectionNone {
		return &model.ScenarioResult{
			Status:     model.StatusWatch,
			ATR:        atr,
			MarketMode: marketMode,
			Reasons:    []string{"no direction"},
		}
	}

	trendlines := e.Trendlines.DetectMulti(map[string][]model.Candle{
		"15m": set.M15Trend,
		"1h":  set.H1,
	})
	decision.Reasons = append(decision.Reasons,
		e.Trendlines.CheckBreakout(currentPrice, decision.Direction, trendlines, trendlineTimeframes)...)

	trendlineLimit, trendlineTarget := resolveTrendlineRefs(currentPrice, decision.Direction, trendlines)

	refs := StructuralRefs{
		SwingHigh:       swing.SwingHigh,
		SwingLow:        swing.SwingLow,
		NextSwingHigh:   swing.NextSwingHigh,
		NextSwingLow:    swing.NextSwingLow,
		TrendlineLimit:  trendlineLimit,
		TrendlineTarget: trendlineTarget,
	}

	limit, err := SelectStructuralLimit(currentPrice, atr, refs, decision.Direction)
	if err != nil {
		reason := "No valid structural limit found"
		if errors.Is(err, ErrInvalidATR) {
			reason = "no volatility estimate"
		}
		return &model.ScenarioResult{
			Status:     model.StatusSkip,
			ATR:        atr,
			MarketMode: marketMode,
			Reasons:    []string{reason},
		}
	}

	isBreakout := false
	for _, r := range decision.Reasons {
		lr := strings.ToLower(r)
		if strings.Contains(lr, "breakout") || strings.Contains(lr, "exit") {
			isBreakout = true
			break
		}
	}

	target, partial, dynamic := SelectStructuralTarget(
		currentPrice, limit, atr, refs, decision.Direction, isBreakout, e.TargetRatio, e.PartialRatio)
	rr := math.Abs(target-currentPrice) / math.Abs(currentPrice-limit)

	macd := indicator.CalculateMACD(closes1h)
	profile := indicator.CalculateVolumeProfile(set.M15)

	conf := AssessConfidence(decision.Direction, decision.Reasons, swing.SwingAge, trend4h, profile, macd, currentPrice, atr)

	macdConfirms := true
	for _, r := range conf.Reasons {
		if r == "MACD does not confirm" {
			macdConfirms = false
			break
		}
	}

	if retest := CheckRetest(RetestInput{
		Direction:    decision.Direction,
		CurrentPrice: currentPrice,
		Closes15m:    closes15m,
		SwingHigh:    swing.SwingHigh,
		SwingLow:     swing.SwingLow,
		ATR:          atr,
		Stats:        stats,
		Target:       target,
		Limit:        limit,
		RR:           rr,
		Trend1h:      trend1h,
		Trend4h:      trend4h,
		MACDConfirms: macdConfirms,
		Confidence:   conf.Score,
		Reasons:      decision.Reasons,
	}); retest != nil {
		retest.MarketMode = marketMode
		retest.Trend1h = trend1h
		retest.Trend4h = trend4h
		retest.Confidence = conf.Score
		return retest
	}

	weakCandle := decision.InMiddle || stats.Doji
	weakVolume := stats.WeakVolume && !stats.StrongBody
	isStrong := !weakCandle && stats.VolumeSpike && conf.Score >= 2

	var status model.ScenarioStatus
	finalTarget := target
	switch {
	case isStrong:
		status = model.StatusValid
	case conf.Score >= 1 && !(weakCandle && weakVolume):
		// Weak signals keep a shortened objective at 1.5× stop distance.
		status = model.StatusValidWeak
		if decision.Direction == model.DirectionLong {
			finalTarget = currentPrice + (currentPrice-limit)*1.5
		} else {
			finalTarget = currentPrice - (limit-currentPrice)*1.5
		}
	default:
		return &model.ScenarioResult{
			Status:     model.StatusIgnore,
			ATR:        atr,
			MarketMode: marketMode,
			Reasons:    []string{"Signal too weak"},
		}
	}

	return &model.ScenarioResult{
		Status:           status,
		Direction:        decision.Direction,
		EvaluationPrice:  currentPrice,
		StructuralLimit:  limit,
		StructuralTarget: finalTarget,
		FullTarget:       target,
		PartialTarget:    partial,
		DynamicTarget:    dynamic,
		RR:               rr,
		ATR:              atr,
		Confidence:       conf.Score,
		MarketMode:       marketMode,
		Trend1h:          trend1h,
		Trend4h:          trend4h,
		Reasons:          conf.Reasons,
	}
}

// resolveTrendlineRefs walks the timeframes in order and picks the
// broken trendline on the scenario side (limit reference) and the
// opposite line (target reference). Later timeframes win, matching the
// detection order.
func resolveTrendlineRefs(currentPrice float64, direction model.Direction, set model.TrendlineSet) (limit, target *float64) {
	for _, tf := range trendlineTimeframes {
		lines, ok := set[tf]
		if !ok {
			continue
		}
		switch direction {
		case model.DirectionLong:
			if up := lines[model.TrendlineUp]; up != nil && currentPrice > up.PriceNow {
				v := up.PriceNow
				limit = &v
			}
			if down := lines[model.TrendlineDown]; down != nil {
				v := down.PriceNow
				target = &v
			}
		case model.DirectionShort:
			if down := lines[model.TrendlineDown]; down != nil && currentPrice < down.PriceNow {
				v := down.PriceNow
				limit = &v
			}
			if up := lines[model.TrendlineUp]; up != nil {
				v := up.PriceNow
				target = &v
			}
		}
	}
	return limit, target
}
