package core

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/perceptionlabs/procreport/internal/domain/model"
)

// SkipSet is the set of tenant API keys excluded from reporting
// (test/internal accounts).
type SkipSet map[string]struct{}

// Contains reports whether the API key is in the skip set.
func (s SkipSet) Contains(apiKey string) bool {
	_, ok := s[apiKey]
	return ok
}

// LoadSkipList reads a skip file with one API key per line. Blank lines and
// lines starting with '#' are ignored. A missing file yields an empty set,
// not an error: skipping is optional configuration.
func LoadSkipList(path string) (SkipSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SkipSet{}, nil
		}
		return nil, fmt.Errorf("open skip file %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	set := SkipSet{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[line] = struct{}{}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("read skip file %s: %w", path, scanErr)
	}
	return set, nil
}

// FilterSkipped drops records whose API key is in the skip set. It returns
// the kept records (input order preserved) and the number dropped. This runs
// once, before classification, so skipped tenants never reach any bucket.
func FilterSkipped(records []model.ProcessRecord, skip SkipSet) ([]model.ProcessRecord, int) {
	if len(skip) == 0 {
		return records, 0
	}
	kept := make([]model.ProcessRecord, 0, len(records))
	for _, rec := range records {
		if skip.Contains(rec.APIKey) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, len(records) - len(kept)
}
