package hygiene

import (
	"testing"
	"time"

	"LevelSentinel/internal/model"
)

// memStore is an in-memory EventStore for tests.
type memStore struct {
	events []model.HygieneEvent
}

func (m *memStore) AppendEvent(ev model.HygieneEvent) error {
	m.events = append(m.events, ev)
	return nil
}

func (m *memStore) LoadDay(date string) ([]model.HygieneEvent, error) {
	var out []model.HygieneEvent
	for _, ev := range m.events {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	return out, nil
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func TestNewGate_ReplaysTodayOnly(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	store := &memStore{events: []model.HygieneEvent{
		{Date: yesterday, Symbol: "BTCUSDT", Outcome: model.OutcomeRejected},
		{Date: today(), Symbol: "BTCUSDT", Outcome: model.OutcomeRejected},
		{Date: today(), Symbol: "BTCUSDT", Outcome: model.OutcomeRejected},
		{Date: today(), Symbol: "BTCUSDT", Outcome: model.OutcomeRejected},
	}}

	g, err := NewGate(store, "", 10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	daily, consecutive := g.Counters()
	if daily != 3 || consecutive != 3 {
		t.Errorf("expected counters 3/3 after replay, got %d/%d", daily, consecutive)
	}
	if !g.ConsecutiveLimitReached() {
		t.Error("three consecutive rejections must hit the limit of 3")
	}
	if g.DailyLimitReached() {
		t.Error("three rejections must not hit a daily limit of 10")
	}
}

func TestGate_AcceptedResetsConsecutiveOnly(t *testing.T) {
	store := &memStore{}
	g, err := NewGate(store, "", 10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := g.Record("BTCUSDT", model.OutcomeRejected); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := g.Record("BTCUSDT", model.OutcomeAccepted); err != nil {
		t.Fatalf("record: %v", err)
	}

	daily, consecutive := g.Counters()
	if daily != 2 {
		t.Errorf("accepted must leave the daily count at 2, got %d", daily)
	}
	if consecutive != 0 {
		t.Errorf("accepted must reset the consecutive count, got %d", consecutive)
	}

	// Counters must be reconstructable from the persisted log alone.
	replayed, err := NewGate(store, "", 10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d2, c2 := replayed.Counters()
	if d2 != daily || c2 != consecutive {
		t.Errorf("replayed counters %d/%d differ from live %d/%d", d2, c2, daily, consecutive)
	}
}

func TestGate_MidnightRollover(t *testing.T) {
	store := &memStore{}
	g, err := NewGate(store, "", 10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day1 := time.Date(2026, 8, 25, 23, 59, 0, 0, time.UTC)
	g.now = func() time.Time { return day1 }
	g.Counters() // adopt day1

	if err := g.Record("BTCUSDT", model.OutcomeRejected); err != nil {
		t.Fatalf("record: %v", err)
	}
	if daily, _ := g.Counters(); daily != 1 {
		t.Fatalf("expected daily 1 before rollover, got %d", daily)
	}

	g.now = func() time.Time { return day1.Add(2 * time.Minute) } // past midnight UTC
	daily, consecutive := g.Counters()
	if daily != 0 || consecutive != 0 {
		t.Errorf("expected counters reset after UTC midnight, got %d/%d", daily, consecutive)
	}
}

func TestGate_SymbolScope(t *testing.T) {
	store := &memStore{events: []model.HygieneEvent{
		{Date: today(), Symbol: "BTCUSDT", Outcome: model.OutcomeRejected},
		{Date: today(), Symbol: "ETHUSDT", Outcome: model.OutcomeRejected},
		{Date: today(), Symbol: "ETHUSDT", Outcome: model.OutcomeRejected},
	}}

	g, err := NewGate(store, "ETHUSDT", 10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	daily, _ := g.Counters()
	if daily != 2 {
		t.Errorf("scoped gate must count only its symbol, got %d", daily)
	}
}

func TestOutcomeForStatus(t *testing.T) {
	tests := []struct {
		status  model.ScenarioStatus
		outcome model.ScenarioOutcome
		ok      bool
	}{
		{model.StatusValid, model.OutcomeAccepted, true},
		{model.StatusValidWeak, model.OutcomeAccepted, true},
		{model.StatusSkip, model.OutcomeRejected, true},
		{model.StatusIgnore, model.OutcomeRejected, true},
		{model.StatusWatch, "", false},
		{model.StatusWaitRetest, "", false},
	}
	for _, tt := range tests {
		outcome, ok := OutcomeForStatus(tt.status)
		if ok != tt.ok || outcome != tt.outcome {
			t.Errorf("%s: expected (%q, %v), got (%q, %v)", tt.status, tt.outcome, tt.ok, outcome, ok)
		}
	}
}
