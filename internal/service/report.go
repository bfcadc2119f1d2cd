// Package service contains the report pipeline orchestration and rendering.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/perceptionlabs/procreport/config"
	"github.com/perceptionlabs/procreport/internal/core"
	"github.com/perceptionlabs/procreport/internal/domain/model"
)

// SummaryNotConfigured is the per-process placeholder used when no log
// source is configured at all.
const SummaryNotConfigured = "Log retrieval not configured"

// failedLogsSubdir is the per-run directory receiving extracted excerpts.
const failedLogsSubdir = "failed_logs"

// ReportService runs the daily pipeline: fetch, filter, classify, enrich,
// render, send. Strictly sequential; enrichment steps are best-effort and
// never prevent the report from going out, while the initial fetch and the
// final delivery are fatal.
type ReportService struct {
	repo     core.ProcessRepository
	logs     core.LogRetriever
	videos   core.VideoFinder
	mail     core.MailSender
	renderer *Renderer
	cfg      config.ReportConfig
	skip     core.SkipSet
	logger   *slog.Logger
	now      func() time.Time
}

// ReportServiceOptions holds the dependencies for creating a ReportService.
type ReportServiceOptions struct {
	Repo core.ProcessRepository
	// Logs may be nil when no log directory is configured; failed processes
	// then carry a placeholder result.
	Logs core.LogRetriever
	// Videos may be nil; finished processes then skip the artifact lookup.
	Videos core.VideoFinder
	// Mail may be nil only when the service is used for previews.
	Mail   core.MailSender
	Config config.ReportConfig
	Skip   core.SkipSet
	Logger *slog.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewReportService creates a ReportService.
func NewReportService(opts ReportServiceOptions) (*ReportService, error) {
	if opts.Repo == nil {
		return nil, errors.New("process repository is required")
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		repo:     opts.Repo,
		logs:     opts.Logs,
		videos:   opts.Videos,
		mail:     opts.Mail,
		renderer: renderer,
		cfg:      opts.Config,
		skip:     opts.Skip,
		logger:   logger,
		now:      now,
	}, nil
}

// Run generates the report and delivers it. Returns an error when the fetch
// or the send fails; enrichment trouble only degrades content.
func (s *ReportService) Run(ctx context.Context) error {
	report, err := s.Generate(ctx)
	if err != nil {
		return err
	}
	if s.mail == nil {
		return errors.New("mail sender is not configured")
	}
	if sendErr := s.mail.Send(ctx, report, s.cfg.Recipient); sendErr != nil {
		return fmt.Errorf("deliver report: %w", sendErr)
	}
	return nil
}

// Generate runs the pipeline up to rendering, without sending.
func (s *ReportService) Generate(ctx context.Context) (model.Report, error) {
	records, err := s.repo.ListRecent(ctx, s.cfg.Lookback)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetch processes: %w", err)
	}

	kept, dropped := core.FilterSkipped(records, s.skip)
	if dropped > 0 {
		s.logger.Info("filtered skipped tenants", "dropped", dropped, "kept", len(kept))
	}

	buckets := core.Classify(kept)
	s.logger.Info("classified processes",
		"total", buckets.Total(),
		"finished", len(buckets.Finished),
		"failed", len(buckets.Failed),
		"running", len(buckets.Running),
		"other", len(buckets.Other),
	)

	failedLogs := s.enrichFailed(ctx, buckets.Failed)
	finishedData := s.enrichFinished(ctx, buckets.Finished)

	report, err := s.renderer.Render(buckets, failedLogs, finishedData, s.now())
	if err != nil {
		return model.Report{}, err
	}
	return report, nil
}

// enrichFailed attaches log excerpts to failed processes. Without a
// configured log source every process gets the placeholder result; report
// generation is never blocked.
func (s *ReportService) enrichFailed(
	ctx context.Context,
	failed []model.ProcessRecord,
) map[string]model.LogMatchResult {
	if len(failed) == 0 {
		return map[string]model.LogMatchResult{}
	}

	if s.logs == nil {
		s.logger.Info("log retrieval not configured, reporting basic info only",
			"failed", len(failed))
		results := make(map[string]model.LogMatchResult, len(failed))
		for _, proc := range failed {
			results[proc.ProcessUUID] = model.LogMatchResult{
				Found:   false,
				Summary: SummaryNotConfigured,
			}
		}
		return results
	}

	outputDir := filepath.Join(s.cfg.OutputDir, failedLogsSubdir)
	return s.logs.FailedProcessLogs(ctx, failed, outputDir)
}

// enrichFinished resolves video artifact links for finished processes.
// Lookup failures and absent artifacts both degrade to an empty link; a
// process without an API key skips the lookup entirely and is flagged.
func (s *ReportService) enrichFinished(
	ctx context.Context,
	finished []model.ProcessRecord,
) map[string]model.VideoLookupResult {
	results := make(map[string]model.VideoLookupResult, len(finished))
	for _, proc := range finished {
		result := model.VideoLookupResult{
			ClientName: proc.Name,
			APIKey:     proc.APIKey,
		}

		switch {
		case proc.APIKey == "":
			s.logger.Warn("no api key for client, skipping video lookup",
				"client", proc.Name,
				"process_uuid", proc.ProcessUUID,
			)
			result.Skipped = true
		case s.videos == nil:
			result.Skipped = true
		default:
			link, err := s.videos.FindProcessVideo(ctx, proc.APIKey, proc.ProcessUUID)
			if err != nil {
				s.logger.Warn("video lookup failed",
					"process_uuid", proc.ProcessUUID,
					"error", err,
				)
			}
			result.VideoLink = link
		}
		results[proc.ProcessUUID] = result
	}
	return results
}
