package scenario

import (
	"errors"
	"math"

	"LevelSentinel/internal/model"
)

// ErrInvalidATR is returned when ATR ≤ 0 reaches structural-level
// selection. That is a contract violation: without a volatility estimate
// there is no meaningful invalidation distance and the caller must not
// proceed with this evaluation.
var ErrInvalidATR = errors.New("ATR must be > 0")

// ErrNoStructuralLimit is returned when no priority source yields an
// acceptable invalidation level. The scenario degrades to skip.
var ErrNoStructuralLimit = errors.New("no valid structural limit found")

// StructuralRefs collects the optional structural references the
// selectors draw from. Nil pointers mean the reference is absent, which
// is distinct from a zero price.
type StructuralRefs struct {
	SwingHigh       float64
	SwingLow        float64
	NextSwingHigh   *float64
	NextSwingLow    *float64
	TrendlineLimit  *float64 // broken trendline's extrapolated price
	TrendlineTarget *float64 // opposite trendline's extrapolated price
	POC             *float64
	LowVolumeExit   *float64
}

const limitBufferATR = 0.25

// SelectStructuralLimit chooses the invalidation point from a
// priority-ordered set of structural references: trendline (within
// 6×ATR), swing level, POC, low-volume-zone exit (each within 3×ATR, on
// the unfavorable side of entry). The first acceptable candidate wins.
func SelectStructuralLimit(entry, atr float64, refs StructuralRefs, side model.Direction) (float64, error) {
	if atr <= 0 {
		return 0, ErrInvalidATR
	}
	buffer := limitBufferATR * atr

	// 1. Trendline-derived.
	if refs.TrendlineLimit != nil {
		raw := *refs.TrendlineLimit - buffer
		if side == model.DirectionShort {
			raw = *refs.TrendlineLimit + buffer
		}
		if math.Abs(entry-raw) < 6*atr && onUnfavorableSide(raw, entry, side) {
			return raw, nil
		}
	}

	// 2. Swing-level-derived.
	if side == model.DirectionLong && refs.SwingLow > 0 {
		raw := refs.SwingLow*0.997 - buffer
		if raw < entry && math.Abs(entry-raw) < 3*atr {
			return raw, nil
		}
	} else if side == model.DirectionShort && refs.SwingHigh > 0 {
		raw := refs.SwingHigh*1.003 + buffer
		if raw > entry && math.Abs(entry-raw) < 3*atr {
			return raw, nil
		}
	}

	// 3. POC-derived.
	if refs.POC != nil {
		raw := *refs.POC - buffer
		if side == model.DirectionShort {
			raw = *refs.POC + buffer
		}
		if onUnfavorableSide(raw, entry, side) && math.Abs(entry-raw) < 3*atr {
			return raw, nil
		}
	}

	// 4. Low-volume-zone exit.
	if refs.LowVolumeExit != nil {
		raw := *refs.LowVolumeExit - buffer
		if side == model.DirectionShort {
			raw = *refs.LowVolumeExit + buffer
		}
		if onUnfavorableSide(raw, entry, side) && math.Abs(entry-raw) < 3*atr {
			return raw, nil
		}
	}

	return 0, ErrNoStructuralLimit
}

// SelectStructuralTarget chooses the profit objective. Breakout
// scenarios prefer the next swing level beyond price (0.5% buffer),
// otherwise the immediate swing level; fallbacks run through POC,
// trendline target and low-volume exit, and finally a fixed ratio of
// the stop distance. When the resulting risk/reward exceeds targetRatio
// a partial target at partialRatio is computed and the advisory
// dynamic-adjustment flag is raised.
func SelectStructuralTarget(entry, limit, atr float64, refs StructuralRefs, side model.Direction, breakout bool, targetRatio, partialRatio float64) (target float64, partial *float64, dynamic bool) {
	stopDist := math.Abs(entry - limit)
	sign := 1.0
	if side == model.DirectionShort {
		sign = -1.0
	}

	var candidate *float64

	// 1. Swing targets.
	if breakout {
		if side == model.DirectionLong && refs.NextSwingHigh != nil {
			if c := *refs.NextSwingHigh * 0.995; c > entry {
				candidate = &c
			}
		} else if side == model.DirectionShort && refs.NextSwingLow != nil {
			if c := *refs.NextSwingLow * 1.005; c < entry {
				candidate = &c
			}
		}
	} else {
		if side == model.DirectionLong && refs.SwingHigh > 0 {
			if c := refs.SwingHigh * 0.995; c > entry {
				candidate = &c
			}
		} else if side == model.DirectionShort && refs.SwingLow > 0 {
			if c := refs.SwingLow * 1.005; c < entry {
				candidate = &c
			}
		}
	}

	// 2. POC.
	if candidate == nil && refs.POC != nil && onFavorableSide(*refs.POC, entry, side) {
		candidate = refs.POC
	}

	// 3. Trendline target.
	if candidate == nil && refs.TrendlineTarget != nil && onFavorableSide(*refs.TrendlineTarget, entry, side) {
		candidate = refs.TrendlineTarget
	}

	// 4. Low-volume-zone exit.
	if candidate == nil && refs.LowVolumeExit != nil && onFavorableSide(*refs.LowVolumeExit, entry, side) {
		candidate = refs.LowVolumeExit
	}

	// 5. Fallback by structural ratio.
	if candidate == nil {
		c := entry + stopDist*targetRatio*sign
		candidate = &c
	}
	target = *candidate

	if stopDist > 0 && math.Abs(target-entry)/stopDist > targetRatio {
		p := entry + stopDist*partialRatio*sign
		partial = &p
		dynamic = true
	}
	return target, partial, dynamic
}

func onUnfavorableSide(level, entry float64, side model.Direction) bool {
	if side == model.DirectionLong {
		return level < entry
	}
	return level > entry
}

func onFavorableSide(level, entry float64, side model.Direction) bool {
	if side == model.DirectionLong {
		return level > entry
	}
	return level < entry
}
