package service

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/perceptionlabs/procreport/internal/domain/model"
	"github.com/perceptionlabs/procreport/internal/util"
)

// Display strings for absent enrichment results. Kept as constants because
// tests and operators grep for them.
const (
	displayLogNotFound   = "Log file not found"
	displayVideoNotFound = "Not found in OneDrive"
)

// Renderer builds the HTML and plain-text report bodies from the enriched
// buckets.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the report template. The template is a compile-time
// constant, so failure here is a programming error surfaced at startup.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// reportData is the payload handed to the HTML template.
type reportData struct {
	GeneratedAt   string
	Total         int
	FinishedCount int
	FailedCount   int
	RunningCount  int
	Failed        []failedEntry
	Finished      []finishedEntry
	Running       []runningEntry
}

type failedEntry struct {
	Name        string
	ProcessUUID string
	StatusName  string
	StartTime   string
	SourceAlias string
	LogFound    bool
	// SummaryHTML is the escaped error summary with newlines as <br>.
	SummaryHTML template.HTML
	SavedPath   string
}

type finishedEntry struct {
	Name        string
	ProcessUUID string
	StatusName  string
	StartTime   string
	StopTime    string
	Duration    string
	SourceAlias string
	VideoLink   string
}

type runningEntry struct {
	Name        string
	ProcessUUID string
	StatusName  string
	StartTime   string
	Elapsed     string
}

// Render produces the complete report: subject, HTML body and plain-text
// fallback body.
func (r *Renderer) Render(
	buckets model.Buckets,
	failedLogs map[string]model.LogMatchResult,
	finishedData map[string]model.VideoLookupResult,
	now time.Time,
) (model.Report, error) {
	data := buildReportData(buckets, failedLogs, finishedData, now)

	var html strings.Builder
	if err := r.tmpl.Execute(&html, data); err != nil {
		return model.Report{}, fmt.Errorf("render html report: %w", err)
	}

	return model.Report{
		Subject:  fmt.Sprintf("Daily Client Process Report - %s", now.Format("2006-01-02")),
		HTMLBody: html.String(),
		TextBody: renderText(buckets, failedLogs, finishedData, now),
	}, nil
}

func buildReportData(
	buckets model.Buckets,
	failedLogs map[string]model.LogMatchResult,
	finishedData map[string]model.VideoLookupResult,
	now time.Time,
) reportData {
	data := reportData{
		GeneratedAt:   util.FormatTimeValue(now),
		Total:         buckets.Total(),
		FinishedCount: len(buckets.Finished),
		FailedCount:   len(buckets.Failed),
		RunningCount:  len(buckets.Running),
	}

	for _, proc := range buckets.Failed {
		entry := failedEntry{
			Name:        proc.Name,
			ProcessUUID: proc.ProcessUUID,
			StatusName:  proc.StatusName,
			StartTime:   util.FormatTimeValue(proc.StartTime),
			SourceAlias: util.OrNA(proc.SourceAlias),
		}
		if logInfo, ok := failedLogs[proc.ProcessUUID]; ok && logInfo.Found {
			entry.LogFound = true
			entry.SummaryHTML = summaryAsHTML(logInfo.Summary)
			entry.SavedPath = util.OrNA(logInfo.SavedPath)
		}
		data.Failed = append(data.Failed, entry)
	}

	for _, proc := range buckets.Finished {
		entry := finishedEntry{
			Name:        proc.Name,
			ProcessUUID: proc.ProcessUUID,
			StatusName:  proc.StatusName,
			StartTime:   util.FormatTimeValue(proc.StartTime),
			StopTime:    util.FormatTime(proc.StopTime),
			Duration:    util.FormatMinutes(proc.ElapsedMin),
			SourceAlias: util.OrNA(proc.SourceAlias),
		}
		if lookup, ok := finishedData[proc.ProcessUUID]; ok {
			entry.VideoLink = lookup.VideoLink
		}
		data.Finished = append(data.Finished, entry)
	}

	for _, proc := range buckets.Running {
		data.Running = append(data.Running, runningEntry{
			Name:        proc.Name,
			ProcessUUID: proc.ProcessUUID,
			StatusName:  proc.StatusName,
			StartTime:   util.FormatTimeValue(proc.StartTime),
			Elapsed:     util.FormatMinutes(proc.ElapsedMin),
		})
	}

	return data
}

// summaryAsHTML escapes the summary text and converts newlines to <br> so
// the pre-formatted log excerpt reads correctly inside the snippet div.
func summaryAsHTML(summary string) template.HTML {
	escaped := template.HTMLEscapeString(summary)
	//nolint:gosec // input is escaped above; only <br> tags are injected
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// renderText builds the plain-text fallback body.
func renderText(
	buckets model.Buckets,
	failedLogs map[string]model.LogMatchResult,
	finishedData map[string]model.VideoLookupResult,
	now time.Time,
) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	subRule := strings.Repeat("-", 80)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "DAILY CLIENT PROCESS REPORT")
	fmt.Fprintf(&b, "Generated: %s\n", util.FormatTimeValue(now))
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Total Processes: %d\n", buckets.Total())
	fmt.Fprintf(&b, "  Finished: %d\n", len(buckets.Finished))
	fmt.Fprintf(&b, "  Failed: %d\n", len(buckets.Failed))
	fmt.Fprintf(&b, "  Running: %d\n", len(buckets.Running))
	fmt.Fprintln(&b)

	if len(buckets.Failed) > 0 {
		fmt.Fprintln(&b, subRule)
		fmt.Fprintln(&b, "FAILED PROCESSES")
		fmt.Fprintln(&b, subRule)
		for _, proc := range buckets.Failed {
			fmt.Fprintf(&b, "\nClient: %s\n", proc.Name)
			fmt.Fprintf(&b, "UUID: %s\n", proc.ProcessUUID)
			fmt.Fprintf(&b, "Status: %s\n", proc.StatusName)
			fmt.Fprintf(&b, "Start: %s\n", util.FormatTimeValue(proc.StartTime))
			if logInfo, ok := failedLogs[proc.ProcessUUID]; ok && logInfo.Found {
				fmt.Fprintf(&b, "Log: %s\n", util.OrNA(logInfo.SavedPath))
			}
		}
		fmt.Fprintln(&b)
	}

	if len(buckets.Finished) > 0 {
		fmt.Fprintln(&b, subRule)
		fmt.Fprintln(&b, "FINISHED PROCESSES")
		fmt.Fprintln(&b, subRule)
		for _, proc := range buckets.Finished {
			fmt.Fprintf(&b, "\nClient: %s\n", proc.Name)
			fmt.Fprintf(&b, "UUID: %s\n", proc.ProcessUUID)
			fmt.Fprintf(&b, "Duration: %s\n", util.FormatMinutes(proc.ElapsedMin))
			if lookup, ok := finishedData[proc.ProcessUUID]; ok && lookup.VideoLink != "" {
				fmt.Fprintf(&b, "Video: %s\n", lookup.VideoLink)
			}
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}
