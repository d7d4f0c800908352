package recorder

import "LevelSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not
// configured. It replays no history, so hygiene counters start at zero.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScenario(_ string, _ float64, _ *model.ScenarioResult) error {
	return nil
}
func (n *NoopRecorder) AppendEvent(_ model.HygieneEvent) error { return nil }
func (n *NoopRecorder) LoadDay(_ string) ([]model.HygieneEvent, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }
