package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.BaseURL == "" {
		t.Error("expected default data source base URL")
	}
	if cfg.Schedule.ScanCron == "" || cfg.Schedule.RefreshCron == "" {
		t.Error("expected default cron expressions")
	}
	if cfg.Scenario.StructuralTargetRatio != 3.0 || cfg.Scenario.PartialTargetRatio != 1.5 {
		t.Errorf("unexpected default ratios: %f / %f",
			cfg.Scenario.StructuralTargetRatio, cfg.Scenario.PartialTargetRatio)
	}
	if cfg.Hygiene.DailyRejectionLimit != 10 || cfg.Hygiene.MaxConsecutiveRejections != 3 {
		t.Errorf("unexpected hygiene defaults: %d / %d",
			cfg.Hygiene.DailyRejectionLimit, cfg.Hygiene.MaxConsecutiveRejections)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
data_source:
  symbols: ["BTCUSDT", "ETHUSDT"]
scenario:
  structural_target_ratio: 4.0
hygiene:
  daily_rejection_limit: 5
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DAILY_REJECTION_LIMIT", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.DataSource.Symbols) != 2 {
		t.Errorf("expected 2 static symbols, got %v", cfg.DataSource.Symbols)
	}
	if cfg.Scenario.StructuralTargetRatio != 4.0 {
		t.Errorf("expected ratio 4.0 from file, got %f", cfg.Scenario.StructuralTargetRatio)
	}
	if cfg.Hygiene.DailyRejectionLimit != 7 {
		t.Errorf("env must override the file value, got %d", cfg.Hygiene.DailyRejectionLimit)
	}
}

func TestValidate_Rejections(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return cfg
	}

	cfg := base()
	cfg.Scenario.PartialTargetRatio = 5.0
	if err := cfg.Validate(); err == nil {
		t.Error("partial ratio above the structural ratio must fail validation")
	}

	cfg = base()
	cfg.Scenario.EntryConfirmation = "always"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown entry confirmation mode must fail validation")
	}

	cfg = base()
	cfg.Dynamic.Mode = "turbo"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown dynamic mode must fail validation")
	}

	cfg = base()
	cfg.Scenario.RRMax = 1.0
	if err := cfg.Validate(); err == nil {
		t.Error("rr_max below rr_min must fail validation")
	}
}
