package model

// ScenarioOutcome is the hygiene classification of one evaluation.
type ScenarioOutcome string

const (
	OutcomeAccepted ScenarioOutcome = "ACCEPTED"
	OutcomeRejected ScenarioOutcome = "REJECTED"
)

// HygieneEvent is one append-only row of the persisted rejection log.
type HygieneEvent struct {
	Date    string // UTC calendar day, YYYY-MM-DD
	Symbol  string
	Outcome ScenarioOutcome
}
