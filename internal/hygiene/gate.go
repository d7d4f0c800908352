package hygiene

import (
	"fmt"
	"log"
	"sync"
	"time"

	"LevelSentinel/internal/model"
)

// EventStore persists the append-only rejection log and replays a single
// UTC day of it. Implementations must serialize appends.
type EventStore interface {
	AppendEvent(ev model.HygieneEvent) error
	LoadDay(date string) ([]model.HygieneEvent, error)
}

// Gate tracks daily and consecutive rejection counters scoped to the
// current UTC calendar day. Counters survive restarts by replaying
// today's persisted events; the midnight rollover is detected by date
// comparison on every access, not by a timer.
type Gate struct {
	store            EventStore
	symbol           string // empty means global scope
	dailyLimit       int
	consecutiveLimit int
	now              func() time.Time

	mu          sync.Mutex
	day         string
	daily       int
	consecutive int
}

// NewGate builds a gate seeded from today's persisted events. Events
// from prior days are historical and ignored. A non-empty symbol scopes
// the gate to that symbol's events only; an empty symbol makes it
// global.
func NewGate(store EventStore, symbol string, dailyLimit, consecutiveLimit int) (*Gate, error) {
	g := &Gate{
		store:            store,
		symbol:           symbol,
		dailyLimit:       dailyLimit,
		consecutiveLimit: consecutiveLimit,
		now:              time.Now,
	}
	g.day = g.today()
	events, err := store.LoadDay(g.day)
	if err != nil {
		return nil, fmt.Errorf("replay hygiene events: %w", err)
	}
	for _, ev := range events {
		if g.symbol != "" && ev.Symbol != g.symbol {
			continue
		}
		g.apply(ev.Outcome)
	}
	return g, nil
}

func (g *Gate) today() string {
	return g.now().UTC().Format("2006-01-02")
}

// rollover resets both counters when the UTC date has changed since the
// last access. Caller must hold the mutex.
func (g *Gate) rollover() {
	if today := g.today(); today != g.day {
		log.Printf("[INFO] hygiene counters reset for new UTC day %s", today)
		g.day = today
		g.daily = 0
		g.consecutive = 0
	}
}

func (g *Gate) apply(outcome model.ScenarioOutcome) {
	switch outcome {
	case model.OutcomeRejected:
		g.daily++
		g.consecutive++
	case model.OutcomeAccepted:
		g.consecutive = 0
	}
}

// Record appends the outcome to the persisted log and updates today's
// counters.
func (g *Gate) Record(symbol string, outcome model.ScenarioOutcome) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rollover()

	ev := model.HygieneEvent{Date: g.day, Symbol: symbol, Outcome: outcome}
	if err := g.store.AppendEvent(ev); err != nil {
		return fmt.Errorf("append hygiene event: %w", err)
	}
	g.apply(outcome)
	return nil
}

// DailyLimitReached reports whether today's rejection count is at or
// above the configured maximum.
func (g *Gate) DailyLimitReached() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rollover()
	return g.daily >= g.dailyLimit
}

// ConsecutiveLimitReached reports whether the consecutive rejection
// count is at or above the configured maximum.
func (g *Gate) ConsecutiveLimitReached() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rollover()
	return g.consecutive >= g.consecutiveLimit
}

// Counters returns today's daily and consecutive rejection counts.
func (g *Gate) Counters() (daily, consecutive int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rollover()
	return g.daily, g.consecutive
}

// OutcomeForStatus maps a scenario status to its hygiene outcome.
// Valid scenarios count as accepted, skip and ignore as rejected;
// watch and wait_retest are neutral and produce no event.
func OutcomeForStatus(status model.ScenarioStatus) (model.ScenarioOutcome, bool) {
	switch status {
	case model.StatusValid, model.StatusValidWeak:
		return model.OutcomeAccepted, true
	case model.StatusSkip, model.StatusIgnore:
		return model.OutcomeRejected, true
	default:
		return "", false
	}
}
