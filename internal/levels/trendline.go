package levels

import (
	"fmt"
	"math"

	"LevelSentinel/internal/model"
)

// TrendlineDetector fits two-point trendlines per timeframe and side via
// exhaustive pair search with touch validation.
//
// The search accepts the FIRST pair satisfying the slope and touch
// thresholds rather than hunting for a globally best fit. That keeps
// results reproducible across runs and is intentional.
type TrendlineDetector struct {
	MinTouches   int
	MinSlope     float64
	TolerancePct float64
}

// NewTrendlineDetector returns a detector with the default thresholds.
func NewTrendlineDetector() *TrendlineDetector {
	return &TrendlineDetector{
		MinTouches:   2,
		MinSlope:     0.0002,
		TolerancePct: 0.01,
	}
}

// findTrendline enumerates ordered index pairs (i, j) with j ≥ i+3,
// rejects pairs whose slope does not satisfy the side's minimum
// steepness, counts intermediate points within the tolerance band of the
// interpolated line, and returns the first qualifying fit.
func (d *TrendlineDetector) findTrendline(prices []float64, side model.TrendlineSide) *model.Trendline {
	n := len(prices)
	for i := 0; i < n; i++ {
		for j := i + 3; j < n; j++ {
			slope := (prices[j] - prices[i]) / float64(j-i)

			// Down lines run through highs and must slope downward past
			// the threshold; up lines through lows must slope upward.
			if side == model.TrendlineDown && slope >= -d.MinSlope {
				continue
			}
			if side == model.TrendlineUp && slope <= d.MinSlope {
				continue
			}

			hits := 0
			for k := i + 1; k < j; k++ {
				lineVal := prices[i] + slope*float64(k-i)
				if math.Abs(prices[k]-lineVal)/lineVal < d.TolerancePct {
					hits++
				}
			}
			if hits >= d.MinTouches-2 {
				return &model.Trendline{
					Slope:    slope,
					Start:    model.TrendlinePoint{Index: i, Price: prices[i]},
					End:      model.TrendlinePoint{Index: j, Price: prices[j]},
					Touches:  hits + 2,
					Age:      n - j,
					PriceNow: prices[j] + slope*float64(n-j),
				}
			}
		}
	}
	return nil
}

// DetectTrendlines fits the down line from highs and the up line from
// lows of a single-timeframe candle series. Fewer than 10 candles yields
// no lines.
func (d *TrendlineDetector) DetectTrendlines(candles []model.Candle) map[model.TrendlineSide]*model.Trendline {
	out := map[model.TrendlineSide]*model.Trendline{}
	if len(candles) < 10 {
		return out
	}
	out[model.TrendlineDown] = d.findTrendline(model.Highs(candles), model.TrendlineDown)
	out[model.TrendlineUp] = d.findTrendline(model.Lows(candles), model.TrendlineUp)
	return out
}

// DetectMulti runs trendline detection for each supplied timeframe.
func (d *TrendlineDetector) DetectMulti(byTimeframe map[string][]model.Candle) model.TrendlineSet {
	out := model.TrendlineSet{}
	for tf, candles := range byTimeframe {
		out[tf] = d.DetectTrendlines(candles)
	}
	return out
}

// CheckBreakout compares the current price against each timeframe's
// extrapolated trendline value and reports a textual reason per crossed
// line. Timeframes are checked in the given order so reasons stay stable.
func (d *TrendlineDetector) CheckBreakout(currentPrice float64, direction model.Direction, set model.TrendlineSet, timeframes []string) []string {
	var reasons []string
	for _, tf := range timeframes {
		lines, ok := set[tf]
		if !ok {
			continue
		}
		switch direction {
		case model.DirectionLong:
			if up := lines[model.TrendlineUp]; up != nil && currentPrice > up.PriceNow {
				reasons = append(reasons, fmt.Sprintf("breakout of upward trendline %s", tf))
			}
		case model.DirectionShort:
			if down := lines[model.TrendlineDown]; down != nil && currentPrice < down.PriceNow {
				reasons = append(reasons, fmt.Sprintf("breakout of downward trendline %s", tf))
			}
		}
	}
	return reasons
}
