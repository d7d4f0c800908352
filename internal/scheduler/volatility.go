package scheduler

import (
	"sync"
	"time"
)

// VolatilityGuard pauses evaluation when the 1-minute volatility spikes
// far above its trailing hourly average. It keeps the last 60 one-minute
// ATR readings and triggers when the newest reading exceeds the hourly
// mean by maxFactor. Safe for concurrent use; overlapping scan cycles
// may push readings for the same symbol.
type VolatilityGuard struct {
	maxFactor float64
	coolOff   time.Duration
	now       func() time.Time

	mu          sync.Mutex
	lastTrigger time.Time
	window      []float64
}

// NewVolatilityGuard creates a guard with the given spike factor and
// cool-off period.
func NewVolatilityGuard(maxFactor float64, coolOff time.Duration) *VolatilityGuard {
	return &VolatilityGuard{
		maxFactor: maxFactor,
		coolOff:   coolOff,
		now:       time.Now,
	}
}

// Push records one 1-minute ATR reading and reports whether it spikes
// above the hourly mean. Returns false until a full hour of readings has
// accumulated.
func (g *VolatilityGuard) Push(atr1m float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.window = append(g.window, atr1m)
	if len(g.window) > 60 {
		g.window = g.window[len(g.window)-60:]
	}
	if len(g.window) < 60 {
		return false
	}
	var sum float64
	for _, v := range g.window {
		sum += v
	}
	hourly := sum / 60
	if atr1m > hourly*g.maxFactor {
		g.lastTrigger = g.now()
		return true
	}
	return false
}

// InCoolOff reports whether the guard triggered within the cool-off
// window.
func (g *VolatilityGuard) InCoolOff() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.now().Sub(g.lastTrigger) < g.coolOff
}
