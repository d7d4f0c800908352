package levels

import (
	"math"

	"LevelSentinel/internal/model"
)

const exactTolerance = 1e-8

// DetectSwingLevels clusters recent extreme prices into primary swing
// high/low levels with test counts and age, plus secondary "next" levels
// beyond the primary ones. Returns nil when no candles are supplied.
func DetectSwingLevels(candles []model.Candle) *model.SwingLevels {
	if len(candles) == 0 {
		return nil
	}

	highs := model.Highs(candles)
	lows := model.Lows(candles)

	swingHigh, testsHigh, okHigh := clusterLevel(highs, 0.15)
	swingLow, testsLow, okLow := clusterLevel(lows, 0.15)
	if !okHigh || !okLow {
		return nil
	}

	// Secondary pass restricted to values beyond ±1% of the primary
	// level, with a tighter tolerance.
	var nextHighs, nextLows []float64
	for _, h := range highs {
		if h > swingHigh*1.01 {
			nextHighs = append(nextHighs, h)
		}
	}
	for _, l := range lows {
		if l < swingLow*0.99 {
			nextLows = append(nextLows, l)
		}
	}

	out := &model.SwingLevels{
		SwingHigh: swingHigh,
		SwingLow:  swingLow,
		TestsHigh: testsHigh,
		TestsLow:  testsLow,
	}
	if next, _, ok := clusterLevel(nextHighs, 0.10); ok {
		out.NextSwingHigh = &next
	}
	if next, _, ok := clusterLevel(nextLows, 0.10); ok {
		out.NextSwingLow = &next
	}

	ageHigh := levelAge(swingHigh, highs)
	ageLow := levelAge(swingLow, lows)
	out.SwingAge = ageHigh
	if ageLow < ageHigh {
		out.SwingAge = ageLow
	}
	return out
}

// clusterLevel buckets values by index = round(value/tol) with
// tol = spread × tolPct, and returns the mean of the most populous
// bucket along with its population. Ties resolve to the bucket seen
// first, keeping the result deterministic.
func clusterLevel(values []float64, tolPct float64) (level float64, tests int, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	tol := (maxV - minV) * tolPct
	if tol == 0 {
		tol = exactTolerance
	}

	counts := make(map[int64]int)
	var order []int64
	for _, v := range values {
		b := int64(math.Round(v / tol))
		if _, seen := counts[b]; !seen {
			order = append(order, b)
		}
		counts[b]++
	}
	best := order[0]
	for _, b := range order {
		if counts[b] > counts[best] {
			best = b
		}
	}

	sum, n := 0.0, 0
	for _, v := range values {
		if int64(math.Round(v/tol)) == best {
			sum += v
			n++
		}
	}
	return sum / float64(n), n, true
}

// levelAge is the bar distance from the most recent occurrence of the
// level in the series. If the level never matches within floating
// tolerance, the age defaults to the full window length.
func levelAge(level float64, series []float64) int {
	for i := len(series) - 1; i >= 0; i-- {
		if math.Abs(series[i]-level) < exactTolerance {
			return len(series) - i
		}
	}
	return len(series)
}
