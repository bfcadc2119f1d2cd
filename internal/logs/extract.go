package logs

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// NoLogDataSentinel is the fixed summary used when extraction produced no
// lines at all. Callers compare against it verbatim.
const NoLogDataSentinel = "No log data available"

// DefaultMaxSummaryLines bounds the summary window when the caller passes a
// non-positive limit.
const DefaultMaxSummaryLines = 50

// severityMarkers identify causally relevant lines in verbose logs. Matching
// is case-insensitive substring containment.
var severityMarkers = []string{
	"ERROR",
	"EXCEPTION",
	"TRACEBACK",
	"CRITICAL",
	"FATAL",
	"Failed",
	"Exception:",
}

// Extractor pulls a process's lines out of a chosen log file and reduces them
// to a bounded summary.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// ExtractLines returns every line of the file containing the literal
// processUUID substring, in original order with original content including
// the trailing newline. Read errors yield the lines collected so far plus
// the error.
func (e *Extractor) ExtractLines(path, processUUID string) ([]string, error) {
	r, closeFn, err := openLogFile(path)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	defer closeFn()

	var lines []string
	br := bufio.NewReader(r)
	for {
		line, readErr := br.ReadString('\n')
		if line != "" && strings.Contains(line, processUUID) {
			lines = append(lines, line)
		}
		if readErr != nil {
			if readErr == io.EOF {
				return lines, nil
			}
			return lines, fmt.Errorf("read log file %s: %w", path, readErr)
		}
	}
}

// Summarize reduces extracted lines to a bounded, human-readable error
// summary. Lines matching any severity marker take precedence; when none
// match, the tail of the full extraction is used as a fallback window so
// silent hangs and non-standard error formatting still produce something
// useful. Zero extracted lines yield the fixed sentinel with no header.
func (e *Extractor) Summarize(lines []string, maxLines int) string {
	if len(lines) == 0 {
		return NoLogDataSentinel
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxSummaryLines
	}

	var important []string
	for _, line := range lines {
		if matchesSeverityMarker(line) {
			important = append(important, line)
		}
	}

	var header string
	var kept []string
	if len(important) > 0 {
		kept = tail(important, maxLines)
		header = fmt.Sprintf("=== Error Summary (%d error lines found) ===\n\n", len(important))
	} else {
		kept = tail(lines, maxLines)
		header = fmt.Sprintf("=== Last %d log lines ===\n\n", len(kept))
	}
	return header + strings.Join(kept, "")
}

func matchesSeverityMarker(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range severityMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// tail returns the last n elements, preserving chronological order within the
// kept window.
func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

// SaveExcerpt persists the full (unsummarized) extraction for a process to
// outputDir, creating the directory as needed. The file name embeds the
// generation timestamp: <uuid>_<YYYYMMDD_HHMMSS>.log. This is audit/debug
// material referenced by path in the report, not inlined into it.
func (e *Extractor) SaveExcerpt(processUUID, content, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", outputDir, err)
	}
	name := fmt.Sprintf("%s_%s.log", processUUID, time.Now().Format("20060102_150405"))
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write excerpt %s: %w", path, err)
	}
	e.logger.Info("saved process log excerpt", "process_uuid", processUUID, "path", path)
	return path, nil
}
