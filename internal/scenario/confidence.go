package scenario

import (
	"math"

	"LevelSentinel/internal/model"
)

// AssessConfidence aggregates discrete signals into a half-point
// quantized confidence score. The initial score equals the number of
// direction reasons already accumulated; level age, higher-timeframe
// trend, volume-profile position and MACD each adjust it by ±1. Soft
// (non-committal) signals are collected separately and discounted by a
// single −0.5 only when the running score is already ≥2.
func AssessConfidence(direction model.Direction, reasons []string, swingAge int, trend4h model.Trend, vp model.VolumeProfile, macd model.MACD, currentPrice, atr float64) model.ConfidenceResult {
	out := make([]string, len(reasons))
	copy(out, reasons)

	confidence := float64(len(reasons))
	var soft []string

	// Level age.
	if swingAge <= 10 {
		confidence++
		out = append(out, "fresh level")
	} else if swingAge > 50 {
		confidence--
		out = append(out, "very old level")
	}

	// Higher-timeframe trend. Flat is a soft signal, disagreement costs.
	switch {
	case direction == model.DirectionLong && trend4h == model.TrendUp,
		direction == model.DirectionShort && trend4h == model.TrendDown:
		confidence++
		out = append(out, "4H confirms")
	case trend4h == model.TrendFlat:
		soft = append(soft, "4H flat")
	default:
		confidence--
		out = append(out, "4H does not confirm")
	}

	// Volume profile: too close to the POC is a central, uninteresting
	// position; sitting on a low-volume node is a clean exit path.
	if vp.POC != nil {
		if math.Abs(currentPrice-*vp.POC) < 0.3*atr {
			confidence--
			out = append(out, "near POC")
		} else {
			for _, node := range vp.LowVolumeNodes {
				if math.Abs(currentPrice-node) < 1e-9 {
					confidence++
					out = append(out, "exit from low-volume area")
					break
				}
			}
		}
	}

	// MACD. An absent MACD is a soft, non-committal signal for either
	// direction.
	switch {
	case !macd.Valid:
		soft = append(soft, "MACD weak")
	case direction == model.DirectionLong:
		switch {
		case macd.MACD > macd.Signal && macd.Histogram > 0:
			confidence++
			out = append(out, "MACD confirms")
		case macd.Histogram > -0.002:
			soft = append(soft, "MACD weak")
		default:
			confidence--
			out = append(out, "MACD does not confirm")
		}
	case direction == model.DirectionShort:
		switch {
		case macd.MACD < macd.Signal && macd.Histogram < 0:
			confidence++
			out = append(out, "MACD confirms")
		case macd.Histogram < 0.002:
			soft = append(soft, "MACD weak")
		default:
			confidence--
			out = append(out, "MACD does not confirm")
		}
	}

	// One-time soft penalty: soft negativity only matters once the
	// scenario already looks strong enough to be worth discounting.
	if confidence >= 2 && len(soft) > 0 {
		confidence -= 0.5
		out = append(out, soft...)
	}

	return model.ConfidenceResult{
		Score:   math.Round(confidence*2) / 2,
		Reasons: out,
	}
}
