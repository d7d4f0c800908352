package recorder

import "LevelSentinel/internal/model"

// Recorder persists evaluation output for later analysis. It also acts
// as the hygiene gate's event store: the rejection log and the scenario
// log share one database.
type Recorder interface {
	RecordScenario(symbol string, entry float64, res *model.ScenarioResult) error
	AppendEvent(ev model.HygieneEvent) error
	LoadDay(date string) ([]model.HygieneEvent, error)
	Close() error
}
