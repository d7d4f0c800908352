package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL      string   `yaml:"base_url"`
		Symbols      []string `yaml:"symbols"`       // static symbol list; empty means use the liquid universe
		UniverseSize int      `yaml:"universe_size"` // top liquid pairs to analyze when Symbols is empty
	} `yaml:"data_source"`
	Schedule struct {
		ScanCron    string `yaml:"scan_cron"`
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Analysis struct {
		SwingLookback         int     `yaml:"swing_lookback"`
		VolumeProfileLookback int     `yaml:"volume_profile_lookback"`
		EMAPeriod             int     `yaml:"ema_period"`
		ADXTrendThreshold     float64 `yaml:"adx_trend_threshold"`
		ADXFlatThreshold      float64 `yaml:"adx_flat_threshold"`
		VolumeSpikeMultiplier float64 `yaml:"volume_spike_multiplier"`
		ATRPeriod             int     `yaml:"atr_period"`
	} `yaml:"analysis"`
	Scenario struct {
		StructuralTargetRatio float64 `yaml:"structural_target_ratio"`
		PartialTargetRatio    float64 `yaml:"partial_target_ratio"`
		RRMin                 float64 `yaml:"rr_min"`
		RRMax                 float64 `yaml:"rr_max"`
		EntryConfirmation     string  `yaml:"entry_confirmation"` // trend, flex, off, or auto
		RequireVolumeSpike    bool    `yaml:"require_volume_spike"`
	} `yaml:"scenario"`
	// Dynamic adjustment parameters are accepted and surfaced in output
	// but no logic in this engine applies them.
	Dynamic struct {
		Mode       string  `yaml:"mode"` // volatility, momentum, or off
		TriggerATR float64 `yaml:"trigger_atr"`
		TriggerPct float64 `yaml:"trigger_pct"`
		StepATR    float64 `yaml:"step_atr"`
		StepPct    float64 `yaml:"step_pct"`
	} `yaml:"dynamic"`
	Hygiene struct {
		DailyRejectionLimit      int `yaml:"daily_rejection_limit"`
		MaxConsecutiveRejections int `yaml:"max_consecutive_rejections"`
	} `yaml:"hygiene"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DAILY_REJECTION_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Hygiene.DailyRejectionLimit = n
		}
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://api.binance.com"
	}
	if cfg.DataSource.UniverseSize == 0 {
		cfg.DataSource.UniverseSize = 20
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 * * * * *" // every minute
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 */2 * * *" // every 2 hours
	}
	if cfg.Analysis.SwingLookback == 0 {
		cfg.Analysis.SwingLookback = 100
	}
	if cfg.Analysis.VolumeProfileLookback == 0 {
		cfg.Analysis.VolumeProfileLookback = 100
	}
	if cfg.Analysis.EMAPeriod == 0 {
		cfg.Analysis.EMAPeriod = 50
	}
	if cfg.Analysis.ADXTrendThreshold == 0 {
		cfg.Analysis.ADXTrendThreshold = 20
	}
	if cfg.Analysis.ADXFlatThreshold == 0 {
		cfg.Analysis.ADXFlatThreshold = 15
	}
	if cfg.Analysis.VolumeSpikeMultiplier == 0 {
		cfg.Analysis.VolumeSpikeMultiplier = 1.2
	}
	if cfg.Analysis.ATRPeriod == 0 {
		cfg.Analysis.ATRPeriod = 14
	}
	if cfg.Scenario.StructuralTargetRatio == 0 {
		cfg.Scenario.StructuralTargetRatio = 3.0
	}
	if cfg.Scenario.PartialTargetRatio == 0 {
		cfg.Scenario.PartialTargetRatio = 1.5
	}
	if cfg.Scenario.RRMin == 0 {
		cfg.Scenario.RRMin = 3.0
	}
	if cfg.Scenario.RRMax == 0 {
		cfg.Scenario.RRMax = 10.0
	}
	if cfg.Scenario.EntryConfirmation == "" {
		cfg.Scenario.EntryConfirmation = "auto"
	}
	if cfg.Dynamic.Mode == "" {
		cfg.Dynamic.Mode = "volatility"
	}
	if cfg.Dynamic.TriggerATR == 0 {
		cfg.Dynamic.TriggerATR = 1.0
	}
	if cfg.Dynamic.TriggerPct == 0 {
		cfg.Dynamic.TriggerPct = 2.0
	}
	if cfg.Dynamic.StepATR == 0 {
		cfg.Dynamic.StepATR = 0.5
	}
	if cfg.Dynamic.StepPct == 0 {
		cfg.Dynamic.StepPct = 1.0
	}
	if cfg.Hygiene.DailyRejectionLimit == 0 {
		cfg.Hygiene.DailyRejectionLimit = 10
	}
	if cfg.Hygiene.MaxConsecutiveRejections == 0 {
		cfg.Hygiene.MaxConsecutiveRejections = 3
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/level_sentinel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent. Telegram is
// optional: with no token configured, notifications are silently skipped.
func (c *Config) Validate() error {
	if c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required")
	}
	if c.Scenario.StructuralTargetRatio <= 0 {
		return fmt.Errorf("scenario.structural_target_ratio must be positive")
	}
	if c.Scenario.PartialTargetRatio <= 0 {
		return fmt.Errorf("scenario.partial_target_ratio must be positive")
	}
	if c.Scenario.PartialTargetRatio > c.Scenario.StructuralTargetRatio {
		return fmt.Errorf("scenario.partial_target_ratio must not exceed structural_target_ratio")
	}
	if c.Scenario.RRMax < c.Scenario.RRMin {
		return fmt.Errorf("scenario.rr_max must be >= rr_min")
	}
	switch c.Scenario.EntryConfirmation {
	case "trend", "flex", "off", "auto":
	default:
		return fmt.Errorf("scenario.entry_confirmation must be trend, flex, off, or auto")
	}
	switch c.Dynamic.Mode {
	case "volatility", "momentum", "off":
	default:
		return fmt.Errorf("dynamic.mode must be volatility, momentum, or off")
	}
	if c.Hygiene.DailyRejectionLimit <= 0 {
		return fmt.Errorf("hygiene.daily_rejection_limit must be positive")
	}
	if c.Hygiene.MaxConsecutiveRejections <= 0 {
		return fmt.Errorf("hygiene.max_consecutive_rejections must be positive")
	}
	return nil
}
