package model

// Direction is the resolved scenario bias. Empty means no direction.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
	DirectionNone  Direction = ""
)

// ScenarioStatus is the terminal classification of one evaluation.
type ScenarioStatus string

const (
	StatusValid      ScenarioStatus = "valid"
	StatusValidWeak  ScenarioStatus = "valid_weak"
	StatusWatch      ScenarioStatus = "watch"
	StatusSkip       ScenarioStatus = "skip"
	StatusIgnore     ScenarioStatus = "ignore"
	StatusWaitRetest ScenarioStatus = "wait_retest"
)

// DirectionDecision is the output of direction evaluation. Reasons
// accumulate in priority order and are never reordered downstream.
type DirectionDecision struct {
	Direction Direction
	Reasons   []string
	InMiddle  bool // price sits strictly between swing low and swing high
}

// DynamicAdjustment carries the configured adjustment parameters through
// the pipeline. The values are surfaced in output but no logic in this
// engine applies them.
type DynamicAdjustment struct {
	Mode       string
	TriggerATR float64
	TriggerPct float64
	StepATR    float64
	StepPct    float64
}

// StructuralLevels holds the selected invalidation point and profit
// objective. PartialTarget is set only when the raw risk/reward exceeded
// the configured maximum ratio.
type StructuralLevels struct {
	Limit             float64
	Target            float64
	PartialTarget     *float64
	DynamicAdjustment bool
}

// ConfidenceResult is the quantized confidence aggregate.
type ConfidenceResult struct {
	Score   float64 // always a multiple of 0.5
	Reasons []string
}

// ScenarioResult is the terminal verdict for one symbol evaluation.
// Immutable once created; consumed by logging and the hygiene gate.
type ScenarioResult struct {
	Status           ScenarioStatus
	Direction        Direction
	EvaluationPrice  float64
	StructuralLimit  float64
	StructuralTarget float64
	FullTarget       float64 // structural target before weak-signal demotion
	PartialTarget    *float64
	DynamicTarget    bool
	RR               float64
	ATR              float64
	Confidence       float64
	MarketMode       MarketMode
	Trend1h          Trend
	Trend4h          Trend
	Reasons          []string
}

// Reason returns the joined reason string for display and persistence.
func (r *ScenarioResult) Reason() string {
	out := ""
	for i, s := range r.Reasons {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
