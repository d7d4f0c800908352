package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"LevelSentinel/internal/model"
)

// SQLiteRecorder persists scenario verdicts and hygiene events to a
// SQLite database. A single mutex serializes all writes, which is the
// only serialization point the pipeline needs.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the engine writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scenarios (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			symbol           TEXT NOT NULL,
			status           TEXT,
			direction        TEXT,
			entry            REAL,
			structural_limit REAL,
			structural_target REAL,
			full_target      REAL,
			partial_target   REAL,
			rr               REAL,
			atr              REAL,
			confidence       REAL,
			market_mode      TEXT,
			trend_1h         TEXT,
			trend_4h         TEXT,
			reason           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scenarios_ts ON scenarios(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_scenarios_symbol ON scenarios(symbol)`,

		`CREATE TABLE IF NOT EXISTS hygiene_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			date      TEXT NOT NULL,
			symbol    TEXT NOT NULL,
			outcome   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hygiene_date ON hygiene_events(date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScenario inserts one scenario verdict.
func (r *SQLiteRecorder) RecordScenario(symbol string, entry float64, res *model.ScenarioResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var partial sql.NullFloat64
	if res.PartialTarget != nil {
		partial = sql.NullFloat64{Float64: *res.PartialTarget, Valid: true}
	}

	_, err := r.db.Exec(`INSERT INTO scenarios
		(timestamp, symbol, status, direction, entry,
		 structural_limit, structural_target, full_target, partial_target,
		 rr, atr, confidence, market_mode, trend_1h, trend_4h, reason)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), symbol, string(res.Status), string(res.Direction), entry,
		res.StructuralLimit, res.StructuralTarget, res.FullTarget, partial,
		res.RR, res.ATR, res.Confidence, string(res.MarketMode),
		string(res.Trend1h), string(res.Trend4h), res.Reason(),
	)
	return err
}

// AppendEvent appends one row to the hygiene event log.
func (r *SQLiteRecorder) AppendEvent(ev model.HygieneEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO hygiene_events (timestamp, date, symbol, outcome)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), ev.Date, ev.Symbol, string(ev.Outcome),
	)
	return err
}

// LoadDay returns the hygiene events recorded on the given UTC date, in
// insertion order.
func (r *SQLiteRecorder) LoadDay(date string) ([]model.HygieneEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(
		`SELECT date, symbol, outcome FROM hygiene_events WHERE date = ? ORDER BY id`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.HygieneEvent
	for rows.Next() {
		var ev model.HygieneEvent
		var outcome string
		if err := rows.Scan(&ev.Date, &ev.Symbol, &outcome); err != nil {
			return nil, err
		}
		ev.Outcome = model.ScenarioOutcome(outcome)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
