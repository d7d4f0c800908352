package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"LevelSentinel/internal/collector"
	"LevelSentinel/internal/config"
	"LevelSentinel/internal/hygiene"
	"LevelSentinel/internal/indicator"
	"LevelSentinel/internal/levels"
	"LevelSentinel/internal/model"
	"LevelSentinel/internal/notifier"
	"LevelSentinel/internal/recorder"
	"LevelSentinel/internal/scenario"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the periodic scan over the symbol universe and the
// symbol list refresh.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Evaluator *scenario.Evaluator
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Precision *collector.ExchangeInfo // optional, rounds reported levels
	Cfg       *config.Config
	Ctx       context.Context

	mu      sync.Mutex
	symbols []string
	gates   map[string]*hygiene.Gate
	guards  map[string]*VolatilityGuard
}

// NewScheduler creates a new Scheduler. The static symbol list from the
// config is used as-is; when empty, the list is populated from the top
// liquid pairs on the first scan and kept fresh by the refresh task.
func NewScheduler(ctx context.Context, cfg *config.Config, col *collector.Collector, eval *scenario.Evaluator, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Evaluator: eval,
		Notifier:  tn,
		Recorder:  rec,
		Cfg:       cfg,
		Ctx:       ctx,
		symbols:   append([]string(nil), cfg.DataSource.Symbols...),
		gates:     map[string]*hygiene.Gate{},
		guards:    map[string]*VolatilityGuard{},
	}
}

// RegisterAll registers the scan and refresh tasks.
func (s *Scheduler) RegisterAll(scanCron, refreshCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if len(s.Cfg.DataSource.Symbols) == 0 {
		if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
			return fmt.Errorf("register refresh task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes one scan cycle immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	symbols := s.currentSymbols()
	if len(symbols) == 0 {
		s.refreshTask()
		symbols = s.currentSymbols()
	}
	if len(symbols) == 0 {
		log.Println("[WARN] no symbols to analyze")
		return
	}

	log.Printf("[INFO] scan cycle started, %d symbols", len(symbols))
	for _, symbol := range symbols {
		select {
		case <-s.Ctx.Done():
			return
		default:
		}
		s.analyzeSymbol(symbol)
	}
	log.Println("[INFO] scan cycle complete")
}

func (s *Scheduler) refreshTask() {
	if len(s.Cfg.DataSource.Symbols) > 0 {
		return
	}
	symbols, err := s.Collector.Fetcher.FetchTopSymbols(s.Cfg.DataSource.UniverseSize)
	if err != nil {
		log.Printf("[ERROR] refresh symbol list: %v", err)
		return
	}
	s.mu.Lock()
	s.symbols = symbols
	s.mu.Unlock()
	log.Printf("[INFO] active symbols updated: %v", symbols)
}

func (s *Scheduler) currentSymbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.symbols...)
}

// gateFor returns the per-symbol hygiene gate, creating and replaying it
// on first use.
func (s *Scheduler) gateFor(symbol string) (*hygiene.Gate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.gates[symbol]; ok {
		return g, nil
	}
	g, err := hygiene.NewGate(s.Recorder, symbol,
		s.Cfg.Hygiene.DailyRejectionLimit, s.Cfg.Hygiene.MaxConsecutiveRejections)
	if err != nil {
		return nil, err
	}
	s.gates[symbol] = g
	return g, nil
}

func (s *Scheduler) guardFor(symbol string) *VolatilityGuard {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guards[symbol]
	if !ok {
		g = NewVolatilityGuard(4, 5*time.Minute)
		s.guards[symbol] = g
	}
	return g
}

func (s *Scheduler) analyzeSymbol(symbol string) {
	gate, err := s.gateFor(symbol)
	if err != nil {
		log.Printf("[ERROR] %s: hygiene gate: %v", symbol, err)
		return
	}
	if gate.DailyLimitReached() {
		log.Printf("[WARN] %s: daily rejection limit reached, skipping", symbol)
		return
	}
	if gate.ConsecutiveLimitReached() {
		log.Printf("[WARN] %s: consecutive rejection limit reached, skipping", symbol)
		return
	}

	set, err := s.Collector.Collect(symbol)
	if err != nil {
		log.Printf("[ERROR] %s: collect: %v", symbol, err)
		return
	}

	swing := levels.DetectSwingLevels(set.H1Swing)
	if swing == nil {
		log.Printf("[WARN] %s: not enough history for swing levels", symbol)
		return
	}

	res := s.Evaluator.Evaluate(set, swing)

	atr1m := indicator.CalculateATR(set.M1, 14)
	if s.guardFor(symbol).Push(atr1m) && !strongSignal(res) {
		log.Printf("[WARN] %s: high volatility detected, evaluation paused", symbol)
		return
	}

	if res.Status != model.StatusIgnore && res.Confidence > 0 {
		if err := s.Recorder.RecordScenario(symbol, res.EvaluationPrice, res); err != nil {
			log.Printf("[ERROR] %s: record scenario: %v", symbol, err)
		}
	}

	if outcome, ok := hygiene.OutcomeForStatus(res.Status); ok {
		if err := gate.Record(symbol, outcome); err != nil {
			log.Printf("[ERROR] %s: record hygiene event: %v", symbol, err)
		}
	}

	switch res.Status {
	case model.StatusValid, model.StatusValidWeak:
		log.Printf("[INFO] %s: %s %s | RR %.2f | confidence %.1f | %s",
			symbol, res.Status, res.Direction, res.RR, res.Confidence, res.Reason())
		s.trySend(notifier.FormatScenarioReport(symbol, s.roundedForReport(symbol, res)))
	default:
		log.Printf("[INFO] %s: %s | %s", symbol, res.Status, res.Reason())
	}
}

// roundedForReport snaps the price levels to the symbol's quote
// precision for display. The persisted record keeps full precision.
func (s *Scheduler) roundedForReport(symbol string, res *model.ScenarioResult) *model.ScenarioResult {
	if s.Precision == nil {
		return res
	}
	round := func(v float64) float64 {
		r, err := s.Precision.RoundPrice(symbol, v)
		if err != nil {
			return v
		}
		return r
	}
	out := *res
	out.EvaluationPrice = round(res.EvaluationPrice)
	out.StructuralLimit = round(res.StructuralLimit)
	out.StructuralTarget = round(res.StructuralTarget)
	if res.PartialTarget != nil {
		p := round(*res.PartialTarget)
		out.PartialTarget = &p
	}
	return &out
}

// strongSignal reports whether a verdict is confident enough to override
// the volatility pause: both higher-timeframe trends agree with the
// bias and confidence is at least 2.
func strongSignal(res *model.ScenarioResult) bool {
	if res == nil || res.Direction == model.DirectionNone || res.Confidence < 2 {
		return false
	}
	return trendAgrees(res.Trend1h, res.Direction) && trendAgrees(res.Trend4h, res.Direction)
}

func trendAgrees(trend model.Trend, direction model.Direction) bool {
	switch direction {
	case model.DirectionLong:
		return trend == model.TrendUp
	case model.DirectionShort:
		return trend == model.TrendDown
	}
	return false
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		go s.scanTask()
		return "Scan started"
	case "/status":
		symbols := s.currentSymbols()
		if len(symbols) == 0 {
			return "No active symbols"
		}
		var b strings.Builder
		b.WriteString("<b>Hygiene counters</b>\n")
		for _, symbol := range symbols {
			gate, err := s.gateFor(symbol)
			if err != nil {
				continue
			}
			daily, consecutive := gate.Counters()
			b.WriteString(notifier.FormatGateStatus(symbol, daily, consecutive,
				s.Cfg.Hygiene.DailyRejectionLimit, s.Cfg.Hygiene.MaxConsecutiveRejections))
			b.WriteString("\n")
		}
		return b.String()
	case "/symbols":
		symbols := s.currentSymbols()
		if len(symbols) == 0 {
			return "No active symbols"
		}
		return "Active symbols: " + strings.Join(symbols, ", ")
	default:
		return "Commands:\n• /scan\n• /status\n• /symbols"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
