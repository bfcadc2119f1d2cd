package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/perceptionlabs/procreport/config"
	"github.com/perceptionlabs/procreport/internal/core"
	"github.com/perceptionlabs/procreport/internal/data"
	"github.com/perceptionlabs/procreport/internal/graph"
	"github.com/perceptionlabs/procreport/internal/logs"
	"github.com/perceptionlabs/procreport/internal/service"
)

// Collaborators bundles the wired external dependencies of one report run.
// Close disposes the Graph session state.
type Collaborators struct {
	Repo    *data.ProcessRepo
	Logs    core.LogRetriever
	Session *graph.Session
	Drive   *graph.DriveClient
	Mail    *graph.MailClient
	Skip    core.SkipSet
}

// Close releases collaborator state (persists the Graph token cache).
func (c *Collaborators) Close() error {
	if c == nil {
		return nil
	}
	return c.Session.Close()
}

// BuildCollaborators wires the database, log-source and Graph collaborators
// per configuration. Degradable pieces (log directory, skip file) log and
// continue; the Graph session is required when withGraph is true.
func BuildCollaborators(
	ctx context.Context,
	cfg config.AppConfig,
	db *sql.DB,
	logger *slog.Logger,
	withGraph bool,
) (*Collaborators, error) {
	collab := &Collaborators{
		Repo: data.NewProcessRepo(db, logger),
	}

	// Log source is optional: a misconfigured directory degrades enrichment,
	// never the report.
	if cfg.Report.LogsDir != "" {
		retriever, err := logs.NewRetriever(logs.RetrieverOptions{
			Dir:             cfg.Report.LogsDir,
			Suffix:          cfg.Report.LogSuffix,
			MaxSummaryLines: cfg.Report.MaxSummaryLines,
			Logger:          logger,
		})
		if err != nil {
			logger.Warn("log retriever unavailable, failed-process logs will be omitted",
				"logs_dir", cfg.Report.LogsDir,
				"error", err,
			)
		} else {
			collab.Logs = retriever
			logger.Info("log retriever configured", "logs_dir", cfg.Report.LogsDir)
		}
	} else {
		logger.Info("LOGS_DIR not configured, failed-process logs will be omitted")
	}

	skip, err := core.LoadSkipList(cfg.Report.SkipFile)
	if err != nil {
		return nil, fmt.Errorf("load skip list: %w", err)
	}
	if len(skip) > 0 {
		logger.Info("loaded tenant skip list", "file", cfg.Report.SkipFile, "entries", len(skip))
	}
	collab.Skip = skip

	if withGraph {
		session, err := graph.NewSession(ctx, graph.SessionOptions{
			Config: cfg.Graph,
			Logger: logger,
		})
		if err != nil {
			return nil, fmt.Errorf("graph session: %w", err)
		}
		collab.Session = session
		collab.Drive = graph.NewDriveClient(graph.DriveClientOptions{
			BaseURL:    cfg.Graph.BaseURL,
			Root:       cfg.Graph.DriveRoot,
			HTTPClient: session.Client(),
			Logger:     logger,
		})
		collab.Mail = graph.NewMailClient(graph.MailClientOptions{
			BaseURL:    cfg.Graph.BaseURL,
			HTTPClient: session.Client(),
			Sender:     session,
			Logger:     logger,
		})
	}

	return collab, nil
}

// NewReportService assembles the pipeline service from wired collaborators.
func NewReportService(
	cfg config.AppConfig,
	collab *Collaborators,
	logger *slog.Logger,
) (*service.ReportService, error) {
	opts := service.ReportServiceOptions{
		Repo:   collab.Repo,
		Logs:   collab.Logs,
		Config: cfg.Report,
		Skip:   collab.Skip,
		Logger: logger,
	}
	// Interface-typed fields must stay nil unless a concrete client exists.
	if collab.Drive != nil {
		opts.Videos = collab.Drive
	}
	if collab.Mail != nil {
		opts.Mail = collab.Mail
	}
	return service.NewReportService(opts)
}
