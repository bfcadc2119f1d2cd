package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perceptionlabs/procreport/internal/domain/model"
)

var renderNow = time.Date(2026, 2, 6, 7, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func ptrFloat(v float64) *float64 { return &v }

func sampleBuckets() model.Buckets {
	start := renderNow.Add(-5 * time.Hour)
	return model.Buckets{
		Finished: []model.ProcessRecord{{
			Name:        "Acme Corp",
			APIKey:      "acme-key",
			StatusName:  "Finished",
			StartTime:   start,
			StopTime:    ptrTime(start.Add(42 * time.Minute)),
			ElapsedMin:  ptrFloat(42.0),
			SourceAlias: "front-door-cam",
			ProcessUUID: "finished-uuid",
		}},
		Failed: []model.ProcessRecord{{
			Name:        "Globex",
			APIKey:      "globex-key",
			StatusName:  "Failed with error",
			StartTime:   start,
			SourceAlias: "warehouse-cam",
			ProcessUUID: "failed-uuid",
		}},
		Running: []model.ProcessRecord{{
			Name:        "Initech",
			StatusName:  "Running",
			StartTime:   start,
			ElapsedMin:  ptrFloat(301.5),
			ProcessUUID: "running-uuid",
		}},
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	require.NoError(t, err)

	failedLogs := map[string]model.LogMatchResult{
		"failed-uuid": {
			Found:     true,
			LogFile:   "/var/log/2026-02-06T01-00-00_perception_api.log",
			LineCount: 12,
			Summary:   "=== Error Summary (2 error lines found) ===\n\nERROR decode <frame> failed\nFATAL giving up\n",
			SavedPath: "/home/ops/daily_reports/20260206/failed_logs/failed-uuid_20260206_070000.log",
		},
	}
	finishedData := map[string]model.VideoLookupResult{
		"finished-uuid": {
			ClientName: "Acme Corp",
			APIKey:     "acme-key",
			VideoLink:  "https://1drv/acme/session.mp4",
		},
	}

	report, err := r.Render(sampleBuckets(), failedLogs, finishedData, renderNow)
	require.NoError(t, err)

	assert.Equal(t, "Daily Client Process Report - 2026-02-06", report.Subject)

	html := report.HTMLBody
	assert.Contains(t, html, "Daily Client Process Report")
	assert.Contains(t, html, "Acme Corp")
	assert.Contains(t, html, "Globex")
	assert.Contains(t, html, "Initech")
	assert.Contains(t, html, "failed-uuid")
	assert.Contains(t, html, "42.0 min")
	assert.Contains(t, html, "301.5 min")
	assert.Contains(t, html, `<a href="https://1drv/acme/session.mp4">View in OneDrive</a>`)

	// The summary is escaped and newline-converted before insertion.
	assert.Contains(t, html, "ERROR decode &lt;frame&gt; failed<br>")
	assert.Contains(t, html, "Error Summary (2 error lines found)")
	assert.NotContains(t, html, "ERROR decode <frame> failed")

	text := report.TextBody
	assert.Contains(t, text, "DAILY CLIENT PROCESS REPORT")
	assert.Contains(t, text, "Total Processes: 3")
	assert.Contains(t, text, "Client: Globex")
	assert.Contains(t, text, "Video: https://1drv/acme/session.mp4")
}

func TestRenderer_Render_AbsentEnrichment(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	require.NoError(t, err)

	report, err := r.Render(sampleBuckets(),
		map[string]model.LogMatchResult{
			"failed-uuid": {Found: false, Summary: SummaryNotConfigured},
		},
		map[string]model.VideoLookupResult{
			"finished-uuid": {ClientName: "Acme Corp", APIKey: "acme-key"},
		},
		renderNow,
	)
	require.NoError(t, err)

	assert.Contains(t, report.HTMLBody, displayLogNotFound)
	assert.Contains(t, report.HTMLBody, displayVideoNotFound)
	assert.NotContains(t, report.HTMLBody, "View in OneDrive")
}

func TestRenderer_Render_EmptyBuckets(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	require.NoError(t, err)

	report, err := r.Render(model.Buckets{}, nil, nil, renderNow)
	require.NoError(t, err)

	assert.Contains(t, report.HTMLBody, "Daily Client Process Report")
	assert.NotContains(t, report.HTMLBody, "Failed Processes")
	assert.NotContains(t, report.HTMLBody, "Finished Processes")
	assert.NotContains(t, report.HTMLBody, "Running Processes")
	assert.Contains(t, report.TextBody, "Total Processes: 0")
}

func TestSummaryAsHTML(t *testing.T) {
	t.Parallel()

	got := summaryAsHTML("line one\n<script>alert(1)</script>\n")

	assert.Equal(t,
		"line one<br>&lt;script&gt;alert(1)&lt;/script&gt;<br>",
		string(got),
	)
}
