package core

import (
	"context"
	"time"

	"github.com/perceptionlabs/procreport/internal/domain/model"
)

// This file contains the collaborator interface definitions for the report
// pipeline (ports in hexagonal architecture). The report service depends on
// these interfaces, not on the concrete database/Graph/filesystem adapters.

// ProcessRepository defines the read-only interface to the process store.
type ProcessRepository interface {
	// ListRecent returns client processes started within the given lookback
	// window, ordered by start time descending.
	ListRecent(ctx context.Context, window time.Duration) ([]model.ProcessRecord, error)
	// ClientNamesByAPIKey returns the api_key -> client name mapping for
	// active client accounts.
	ClientNamesByAPIKey(ctx context.Context) (map[string]string, error)
}

// LogRetriever defines the interface for correlating failed processes with
// their log excerpts.
type LogRetriever interface {
	// FailedProcessLogs returns a LogMatchResult per process UUID. It is
	// best-effort: a process with no locatable log yields a not-found result,
	// never an error.
	FailedProcessLogs(ctx context.Context, procs []model.ProcessRecord, outputDir string) map[string]model.LogMatchResult
}

// VideoFinder defines the interface for locating a finished process's video
// artifact in cloud storage.
type VideoFinder interface {
	// FindProcessVideo returns the shareable link of the first video file
	// under {apiKey}/{processUUID}, or empty string when none exists.
	FindProcessVideo(ctx context.Context, apiKey, processUUID string) (string, error)
}

// MailSender defines the interface for delivering the rendered report.
type MailSender interface {
	// Send delivers the report to recipient. An empty recipient means the
	// authenticated sender's own address.
	Send(ctx context.Context, report model.Report, recipient string) error
}
