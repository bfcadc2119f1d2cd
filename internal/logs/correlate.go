package logs

import (
	"bufio"
	"compress/gzip"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Admissibility window around the process start time. A candidate whose
// embedded timestamp lies outside [start - windowBefore, start + windowAfter]
// cannot contain the process's trace and is skipped without being opened.
const (
	windowBefore = time.Hour
	windowAfter  = 24 * time.Hour
)

// Correlator matches a process UUID to the single log file containing it.
type Correlator struct {
	logger *slog.Logger
}

// NewCorrelator creates a Correlator.
func NewCorrelator(logger *slog.Logger) *Correlator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Correlator{logger: logger}
}

// Resolve walks candidates in order and returns the first admissible one
// whose content mentions processUUID. The scan short-circuits: once a file
// matches, no further candidate is opened. An empty result is a normal
// outcome (the process produced no log entry, or logs were rotated away),
// not an error.
func (c *Correlator) Resolve(processUUID string, approxStart time.Time, candidates []Candidate) (Candidate, bool) {
	for _, cand := range candidates {
		if !admissible(cand, approxStart) {
			continue
		}
		if c.containsUUID(cand.Path, processUUID) {
			return cand, true
		}
	}
	return Candidate{}, false
}

// admissible applies the time-window check. Candidates with an unknown
// (unparseable) timestamp are always admissible, mirroring the fail-open
// rule in the index.
func admissible(cand Candidate, approxStart time.Time) bool {
	if cand.StartedAt.IsZero() {
		return true
	}
	if cand.StartedAt.Before(approxStart.Add(-windowAfter)) {
		return false
	}
	return !cand.StartedAt.After(approxStart.Add(windowBefore))
}

// containsUUID performs a linear scan of the file's lines for the literal
// UUID substring, decompressing transparently. Read errors are logged and
// treated as "not found" so one unreadable file never aborts correlation of
// the remaining candidates.
func (c *Correlator) containsUUID(path, processUUID string) bool {
	r, closeFn, err := openLogFile(path)
	if err != nil {
		c.logger.Warn("could not read log file", "file", path, "error", err)
		return false
	}
	defer closeFn()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), processUUID) {
			return true
		}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		c.logger.Warn("error scanning log file", "file", path, "error", scanErr)
	}
	return false
}

// maxLineBytes bounds single log lines; anything longer is a corrupt file.
const maxLineBytes = 4 * 1024 * 1024

// openLogFile opens a plain or gzip-compressed log file for reading. The
// returned close function releases both the decompressor and the file.
func openLogFile(path string) (io.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(path, gzSuffix) {
		return f, func() { _ = f.Close() }, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return zr, func() {
		_ = zr.Close()
		_ = f.Close()
	}, nil
}
