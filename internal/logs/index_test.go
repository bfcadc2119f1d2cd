package logs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o600))
	return path
}

func TestIndex_ListCandidates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	day := time.Date(2026, 2, 6, 14, 30, 0, 0, time.UTC)

	early := touch(t, dir, "2026-02-06T03-08-14_perception_api.log")
	late := touch(t, dir, "2026-02-06T18-45-00_perception_api.log")
	gzipped := touch(t, dir, "2026-02-06T09-00-00_perception_api.log.gz")
	touch(t, dir, "2026-02-05T23-59-59_perception_api.log") // previous day
	touch(t, dir, "2026-02-06T10-00-00_other_service.log")  // different source tag
	touch(t, dir, "notes.txt")

	ix := NewIndex(IndexOptions{Dir: dir, Logger: testLogger()})
	candidates, err := ix.ListCandidates(day)

	require.NoError(t, err)
	require.Len(t, candidates, 3)

	paths := []string{candidates[0].Path, candidates[1].Path, candidates[2].Path}
	assert.Contains(t, paths, early)
	assert.Contains(t, paths, late)
	assert.Contains(t, paths, gzipped)

	for _, c := range candidates {
		assert.False(t, c.StartedAt.IsZero(), "timestamp should parse for %s", c.Path)
	}
	assert.Equal(t, time.Date(2026, 2, 6, 3, 8, 14, 0, time.UTC),
		candidateByPath(t, candidates, early).StartedAt)
}

func TestIndex_ListCandidates_KeepsUnparseableTimestamps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	day := time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)

	bad := touch(t, dir, "2026-02-06Tgarbage_perception_api.log")

	ix := NewIndex(IndexOptions{Dir: dir, Logger: testLogger()})
	candidates, err := ix.ListCandidates(day)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, bad, candidates[0].Path)
	assert.True(t, candidates[0].StartedAt.IsZero())
}

func TestIndex_ListCandidates_EmptyDirectory(t *testing.T) {
	t.Parallel()

	ix := NewIndex(IndexOptions{Dir: t.TempDir(), Logger: testLogger()})
	candidates, err := ix.ListCandidates(time.Now())

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestParseFilenameTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		want    time.Time
		wantErr bool
	}{
		{
			name: "plain log",
			file: "/var/log/2026-02-06T03-08-14_perception_api.log",
			want: time.Date(2026, 2, 6, 3, 8, 14, 0, time.UTC),
		},
		{
			name: "gzipped log",
			file: "2026-02-06T23-59-59_perception_api.log.gz",
			want: time.Date(2026, 2, 6, 23, 59, 59, 0, time.UTC),
		},
		{
			name:    "no separator",
			file:    "20260206.log",
			wantErr: true,
		},
		{
			name:    "malformed timestamp",
			file:    "yesterday_perception_api.log",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseFilenameTime(tt.file)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func candidateByPath(t *testing.T, candidates []Candidate, path string) Candidate {
	t.Helper()
	for _, c := range candidates {
		if c.Path == path {
			return c
		}
	}
	t.Fatalf("candidate %s not found", path)
	return Candidate{}
}
