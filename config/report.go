package config

import (
	"os"
	"path/filepath"
	"time"
)

// ReportConfig contains configuration for the report pipeline itself.
type ReportConfig struct {
	// LogsDir is the directory of rotated process log files. Empty or
	// missing directory degrades log enrichment to a placeholder; it never
	// blocks report generation.
	LogsDir string `env:"LOGS_DIR"`
	// LogSuffix is the fixed source tag embedded in log file names.
	LogSuffix string `env:"LOG_SUFFIX" envDefault:"perception_api"`
	// OutputDir receives per-run artifacts (extracted failed-process logs,
	// previews). Defaults to ~/daily_reports/<YYYYMMDD>.
	OutputDir string `env:"OUTPUT_DIR"`
	// Recipient is the notification address. Empty means the authenticated
	// sender's own address.
	Recipient string `env:"RECIPIENT" envDefault:""`
	// SkipFile lists tenant API keys to exclude, one per line, '#' comments
	// ignored.
	SkipFile string `env:"SKIP_FILE" envDefault:"folders_2_skip.txt"`
	// MaxSummaryLines bounds each failed-process error summary.
	MaxSummaryLines int `env:"MAX_SUMMARY_LINES" envDefault:"50"`
	// Lookback is the reporting window for the process query.
	Lookback time.Duration `env:"LOOKBACK" envDefault:"24h"`
}

// Sanitize applies guardrails to configuration values loaded from env.
func (c *ReportConfig) Sanitize() {
	if c.MaxSummaryLines <= 0 {
		c.MaxSummaryLines = 50
	}
	if c.Lookback <= 0 {
		c.Lookback = 24 * time.Hour
	}
	if c.SkipFile == "" {
		c.SkipFile = "folders_2_skip.txt"
	}
	if c.OutputDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.OutputDir = filepath.Join(home, "daily_reports", time.Now().Format("20060102"))
	}
}
