package indicator

import (
	"math"

	"LevelSentinel/internal/model"
)

// CalculateVolumeProfile buckets candle midpoints into price bins and
// aggregates volume per bin. The bin size adapts to volatility: the
// larger of 0.1% of the latest close and 20% of the mean high-low range.
// Fewer than 3 candles yields an empty profile.
func CalculateVolumeProfile(candles []model.Candle) model.VolumeProfile {
	if len(candles) < 3 {
		return model.VolumeProfile{}
	}

	priceNow := candles[len(candles)-1].Close
	rangeSum := 0.0
	for _, c := range candles {
		rangeSum += c.High - c.Low
	}
	binSize := math.Max(priceNow*0.001, rangeSum/float64(len(candles))*0.2)
	binSize = math.Round(binSize*1e6) / 1e6
	if binSize == 0 {
		binSize = 1e-6
	}

	// Aggregate volume per bin, remembering first-seen order so the POC
	// pick is deterministic.
	volByBin := make(map[float64]float64)
	var order []float64
	for _, c := range candles {
		mid := (c.High + c.Low) / 2
		bin := math.Round(mid/binSize) * binSize
		if _, ok := volByBin[bin]; !ok {
			order = append(order, bin)
		}
		volByBin[bin] += c.Volume
	}

	poc := order[0]
	total := 0.0
	for _, bin := range order {
		v := volByBin[bin]
		total += v
		if v > volByBin[poc] {
			poc = bin
		}
	}
	avg := total / float64(len(order))

	var lowNodes []float64
	for _, bin := range order {
		if volByBin[bin] < avg*0.5 {
			lowNodes = append(lowNodes, bin)
		}
	}

	return model.VolumeProfile{POC: &poc, LowVolumeNodes: lowNodes}
}
