package collector

import (
	"testing"
)

func TestCollect_AssemblesAllTimeframes(t *testing.T) {
	col := NewCollector(&MockFetcher{Price: 100})
	set, err := col.Collect("BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Symbol != "BTCUSDT" {
		t.Errorf("unexpected symbol %q", set.Symbol)
	}
	if len(set.M1) != m1Limit {
		t.Errorf("expected %d 1m candles, got %d", m1Limit, len(set.M1))
	}
	if len(set.M15) != m15Limit || len(set.M15Trend) != m15TrendLim {
		t.Errorf("unexpected 15m windows: %d / %d", len(set.M15), len(set.M15Trend))
	}
	if len(set.H1) != h1Limit || len(set.H4) != h4Limit || len(set.H1Swing) != swingLimit {
		t.Errorf("unexpected higher timeframe windows: %d / %d / %d",
			len(set.H1), len(set.H4), len(set.H1Swing))
	}
	if set.FetchedAt.IsZero() {
		t.Error("expected a fetch timestamp")
	}
}

func TestMockFetcher_TopSymbols(t *testing.T) {
	m := &MockFetcher{Symbols: []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}}
	got, err := m.FetchTopSymbols(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 symbols, got %v", got)
	}
}
