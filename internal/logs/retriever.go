package logs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/perceptionlabs/procreport/internal/domain/model"
)

// SummaryLogFileNotFound is the per-process summary used when no candidate
// log file contained the process UUID.
const SummaryLogFileNotFound = "Log file not found"

// Retriever wires Index, Correlator and Extractor into the per-run flow for
// failed processes. It implements core.LogRetriever.
type Retriever struct {
	index      *Index
	correlator *Correlator
	extractor  *Extractor
	maxLines   int
	logger     *slog.Logger
}

// RetrieverOptions holds the dependencies for creating a Retriever.
type RetrieverOptions struct {
	// Dir is the log directory. It must exist.
	Dir string
	// Suffix overrides the log file source tag (optional).
	Suffix string
	// MaxSummaryLines bounds each summary (default 50).
	MaxSummaryLines int
	Logger          *slog.Logger
}

// NewRetriever creates a Retriever over the configured log directory. A
// missing directory is an error here so the caller can degrade to the
// "log retrieval not configured" placeholder instead of failing mid-run.
func NewRetriever(opts RetrieverOptions) (*Retriever, error) {
	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("logs directory %s: %w", opts.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("logs directory %s: not a directory", opts.Dir)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxLines := opts.MaxSummaryLines
	if maxLines <= 0 {
		maxLines = DefaultMaxSummaryLines
	}
	return &Retriever{
		index:      NewIndex(IndexOptions{Dir: opts.Dir, Suffix: opts.Suffix, Logger: logger}),
		correlator: NewCorrelator(logger),
		extractor:  NewExtractor(logger),
		maxLines:   maxLines,
		logger:     logger,
	}, nil
}

// FailedProcessLogs correlates each failed process with its log file and
// returns a LogMatchResult per process UUID. Best-effort throughout: a
// process whose log cannot be found or read yields a not-found result, and
// one process's trouble never blocks the others.
func (r *Retriever) FailedProcessLogs(
	ctx context.Context,
	procs []model.ProcessRecord,
	outputDir string,
) map[string]model.LogMatchResult {
	results := make(map[string]model.LogMatchResult, len(procs))
	for _, proc := range procs {
		if ctx.Err() != nil {
			break
		}
		results[proc.ProcessUUID] = r.retrieveOne(proc, outputDir)
	}
	return results
}

func (r *Retriever) retrieveOne(proc model.ProcessRecord, outputDir string) model.LogMatchResult {
	// The UUID ends up interpolated into file names; refuse anything that is
	// not a well-formed UUID.
	if _, err := uuid.Parse(proc.ProcessUUID); err != nil {
		r.logger.Warn("malformed process uuid, skipping log retrieval",
			"process_uuid", proc.ProcessUUID,
			"error", err,
		)
		return model.LogMatchResult{Found: false, Summary: SummaryLogFileNotFound}
	}

	candidates, err := r.index.ListCandidates(proc.StartTime)
	if err != nil {
		r.logger.Warn("log candidate discovery failed",
			"process_uuid", proc.ProcessUUID,
			"error", err,
		)
		return model.LogMatchResult{Found: false, Summary: SummaryLogFileNotFound}
	}

	match, found := r.correlator.Resolve(proc.ProcessUUID, proc.StartTime, candidates)
	if !found {
		r.logger.Info("no log file found for process", "process_uuid", proc.ProcessUUID)
		return model.LogMatchResult{Found: false, Summary: SummaryLogFileNotFound}
	}

	lines, err := r.extractor.ExtractLines(match.Path, proc.ProcessUUID)
	if err != nil {
		// Keep whatever was read before the error; partial context beats none.
		r.logger.Warn("log extraction error",
			"process_uuid", proc.ProcessUUID,
			"file", match.Path,
			"error", err,
		)
	}

	result := model.LogMatchResult{
		Found:     true,
		LogFile:   match.Path,
		LineCount: len(lines),
		Summary:   r.extractor.Summarize(lines, r.maxLines),
	}

	savedPath, saveErr := r.extractor.SaveExcerpt(proc.ProcessUUID, strings.Join(lines, ""), outputDir)
	if saveErr != nil {
		r.logger.Warn("could not persist log excerpt",
			"process_uuid", proc.ProcessUUID,
			"error", saveErr,
		)
	} else {
		result.SavedPath = savedPath
	}
	return result
}
