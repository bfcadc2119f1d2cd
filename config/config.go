package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: Database configuration
//   - graph.go: Microsoft Graph (drive + mail) configuration
//   - report.go: Report pipeline configuration
type AppConfig struct {
	// Database configuration
	Postgres DBConfig `envPrefix:"DB_"`

	// Microsoft Graph configuration
	Graph GraphConfig `envPrefix:"GRAPH_"`

	// Report pipeline configuration
	Report ReportConfig `envPrefix:"REPORT_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Graph.Sanitize()
	c.Report.Sanitize()
}
