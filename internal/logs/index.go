// Package logs implements the log correlation subsystem: discovering rotated
// log files for a day, matching a process UUID to the single file containing
// its trace, and reducing the matched lines to a bounded error summary.
package logs

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// filenameTimeLayout is the timestamp embedded in rotated log file names,
// e.g. 2026-02-06T03-08-14_perception_api.log.
const filenameTimeLayout = "2006-01-02T15-04-05"

// gzSuffix marks gzip-compressed rotations.
const gzSuffix = ".gz"

// Candidate is a discovered log file plus the moment the file began, parsed
// from its name. A zero StartedAt means the name did not parse; such
// candidates stay in play (fail-open) and bypass any time-window check.
type Candidate struct {
	Path      string
	StartedAt time.Time
}

// Index discovers candidate log files in a directory by filename only; no
// file content is read at this stage.
type Index struct {
	dir    string
	suffix string
	logger *slog.Logger
}

// IndexOptions holds the dependencies for creating an Index.
type IndexOptions struct {
	// Dir is the log directory to scan.
	Dir string
	// Suffix is the fixed source tag in log file names ("perception_api"
	// unless overridden).
	Suffix string
	Logger *slog.Logger
}

// defaultLogSuffix matches the production log naming convention.
const defaultLogSuffix = "perception_api"

// NewIndex creates an Index over the given directory.
func NewIndex(opts IndexOptions) *Index {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = defaultLogSuffix
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{dir: opts.Dir, suffix: suffix, logger: logger}
}

// ListCandidates returns the log files whose embedded date component equals
// the requested day, sorted ascending by filename so later correlation is
// deterministic when several files tie. Timestamp parse failures are logged
// as warnings and the file is kept with an unknown start time rather than
// discarded.
func (ix *Index) ListCandidates(day time.Time) ([]Candidate, error) {
	dateStr := day.Format("2006-01-02")

	var names []string
	for _, pattern := range []string{
		fmt.Sprintf("%sT*_%s.log", dateStr, ix.suffix),
		fmt.Sprintf("%sT*_%s.log%s", dateStr, ix.suffix, gzSuffix),
	} {
		matches, err := filepath.Glob(filepath.Join(ix.dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		names = append(names, matches...)
	}
	sort.Strings(names)

	candidates := make([]Candidate, 0, len(names))
	for _, name := range names {
		started, err := parseFilenameTime(name)
		if err != nil {
			// Fail-open: naming-convention drift must not silently lose logs.
			ix.logger.Warn("could not parse log file timestamp",
				"file", filepath.Base(name),
				"error", err,
			)
		}
		candidates = append(candidates, Candidate{Path: name, StartedAt: started})
	}
	return candidates, nil
}

// parseFilenameTime extracts the embedded creation timestamp from a log file
// name. Returns the zero time with an error when the name does not follow the
// convention.
func parseFilenameTime(path string) (time.Time, error) {
	stem := filepath.Base(path)
	stem = strings.TrimSuffix(stem, gzSuffix)
	stem = strings.TrimSuffix(stem, ".log")

	timestampStr, _, found := strings.Cut(stem, "_")
	if !found {
		return time.Time{}, fmt.Errorf("no source tag separator in %q", filepath.Base(path))
	}
	t, err := time.Parse(filenameTimeLayout, timestampStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", timestampStr, err)
	}
	return t, nil
}
