package scenario

import (
	"fmt"
	"math"

	"LevelSentinel/internal/model"
)

const (
	breakoutBufferATR = 0.1
	bounceRangeATR    = 1.8
	wickDominance     = 1.5
)

// EvaluateDirection resolves the directional bias from the swing levels,
// the 1h trend and the latest candle's statistics. Checks run in strict
// priority order and the first match wins:
//
//  1. confirmed breakout (beyond level by 0.1×ATR, strong body, volume
//     spike, trend agreement)
//  2. bounce off a level (dominant opposite wick, trend not opposing,
//     within 1.8×ATR of the level)
//  3. simple breakout (price beyond the level, no confirmation)
//  4. flat breakout with volume (strong body + spike, beyond by 0.1×ATR)
//
// Reasons accumulate in priority order and are never reordered later.
func EvaluateDirection(currentPrice, swingHigh, swingLow float64, trend1h model.Trend, atr float64, stats model.CandleStats) model.DirectionDecision {
	decision := model.DirectionDecision{
		Direction: model.DirectionNone,
		InMiddle:  swingLow < currentPrice && currentPrice < swingHigh,
	}

	breakoutUp := swingHigh > 0 && currentPrice > swingHigh+breakoutBufferATR*atr &&
		stats.StrongBody && stats.VolumeSpike && trend1h == model.TrendUp
	breakoutDown := swingLow > 0 && currentPrice < swingLow-breakoutBufferATR*atr &&
		stats.StrongBody && stats.VolumeSpike && trend1h == model.TrendDown

	bounceUp := swingLow > 0 && stats.LowerWick > stats.Body*wickDominance &&
		currentPrice > swingLow && trend1h != model.TrendDown
	bounceDown := swingHigh > 0 && stats.UpperWick > stats.Body*wickDominance &&
		currentPrice < swingHigh && trend1h != model.TrendUp

	switch {
	case breakoutUp:
		decision.Direction = model.DirectionLong
		decision.Reasons = append(decision.Reasons, "Breakout up + volume + 1H trend")
	case breakoutDown:
		decision.Direction = model.DirectionShort
		decision.Reasons = append(decision.Reasons, "Breakout down + volume + 1H trend")
	case bounceUp && math.Abs(currentPrice-swingLow) < bounceRangeATR*atr:
		decision.Direction = model.DirectionLong
		decision.Reasons = append(decision.Reasons, fmt.Sprintf("Bounce from swing-LOW within %.1f ATR", bounceRangeATR))
	case bounceDown && math.Abs(currentPrice-swingHigh) < bounceRangeATR*atr:
		decision.Direction = model.DirectionShort
		decision.Reasons = append(decision.Reasons, fmt.Sprintf("Bounce from swing-HIGH within %.1f ATR", bounceRangeATR))
	}

	// Simple breakout: price beyond the level with no further confirmation.
	if decision.Direction == model.DirectionNone {
		if swingHigh > 0 && currentPrice > swingHigh {
			decision.Direction = model.DirectionLong
			decision.Reasons = append(decision.Reasons, "Simple up breakout")
		} else if swingLow > 0 && currentPrice < swingLow {
			decision.Direction = model.DirectionShort
			decision.Reasons = append(decision.Reasons, "Simple down breakout")
		}
	}

	// Flat breakout with volume: strong body and spike even without trend
	// agreement.
	if decision.Direction == model.DirectionNone && stats.StrongBody && stats.VolumeSpike {
		if swingHigh > 0 && currentPrice > swingHigh+breakoutBufferATR*atr {
			decision.Direction = model.DirectionLong
			decision.Reasons = append(decision.Reasons, "Flat-breakout + volume")
		} else if swingLow > 0 && currentPrice < swingLow-breakoutBufferATR*atr {
			decision.Direction = model.DirectionShort
			decision.Reasons = append(decision.Reasons, "Flat-breakout + volume")
		}
	}

	return decision
}
