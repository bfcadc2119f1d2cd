package config

import (
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "perception", cfg.Postgres.User)
	assert.Equal(t, "perception", cfg.Postgres.Name)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)

	assert.Equal(t, "process_outputs", cfg.Graph.DriveRoot)
	assert.Equal(t, "https://graph.microsoft.com/v1.0", cfg.Graph.BaseURL)
	assert.True(t, strings.HasSuffix(cfg.Graph.TokenCachePath, "token.json"))

	assert.Equal(t, "perception_api", cfg.Report.LogSuffix)
	assert.Equal(t, "folders_2_skip.txt", cfg.Report.SkipFile)
	assert.Equal(t, 50, cfg.Report.MaxSummaryLines)
	assert.Equal(t, 24*time.Hour, cfg.Report.Lookback)
	assert.NotEmpty(t, cfg.Report.OutputDir)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("GRAPH_CLIENT_ID", "client-123")
	t.Setenv("GRAPH_TENANT_ID", "tenant-456")
	t.Setenv("REPORT_RECIPIENT", "ops@perceptionlabs.example")
	t.Setenv("REPORT_LOOKBACK", "48h")
	t.Setenv("REPORT_MAX_SUMMARY_LINES", "25")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 6432, cfg.Postgres.Port)
	assert.Equal(t, "client-123", cfg.Graph.ClientID)
	assert.Equal(t, "tenant-456", cfg.Graph.TenantID)
	assert.Equal(t, "ops@perceptionlabs.example", cfg.Report.Recipient)
	assert.Equal(t, 48*time.Hour, cfg.Report.Lookback)
	assert.Equal(t, 25, cfg.Report.MaxSummaryLines)
}

func TestReportConfig_SanitizeGuardrails(t *testing.T) {
	t.Parallel()

	cfg := ReportConfig{MaxSummaryLines: -5, Lookback: -time.Hour}
	cfg.Sanitize()

	assert.Equal(t, 50, cfg.MaxSummaryLines)
	assert.Equal(t, 24*time.Hour, cfg.Lookback)
	assert.Equal(t, "folders_2_skip.txt", cfg.SkipFile)
	assert.NotEmpty(t, cfg.OutputDir)
}

func TestGraphConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     GraphConfig
		wantErr string
	}{
		{
			name: "valid",
			cfg:  GraphConfig{ClientID: "c", TenantID: "t"},
		},
		{
			name:    "missing client id",
			cfg:     GraphConfig{TenantID: "t"},
			wantErr: "GRAPH_CLIENT_ID",
		},
		{
			name:    "missing tenant id",
			cfg:     GraphConfig{ClientID: "c"},
			wantErr: "GRAPH_TENANT_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGraphConfig_Endpoint(t *testing.T) {
	t.Parallel()

	ep := GraphConfig{TenantID: "tenant-456"}.Endpoint()

	assert.Equal(t, "https://login.microsoftonline.com/tenant-456/oauth2/v2.0/authorize", ep.AuthURL)
	assert.Equal(t, "https://login.microsoftonline.com/tenant-456/oauth2/v2.0/token", ep.TokenURL)
	assert.Equal(t, "https://login.microsoftonline.com/tenant-456/oauth2/v2.0/devicecode", ep.DeviceAuthURL)
}
