package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perceptionlabs/procreport/internal/domain/model"
)

func writeSkipFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folders_2_skip.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSkipList(t *testing.T) {
	t.Parallel()

	t.Run("parses keys and ignores comments and blanks", func(t *testing.T) {
		t.Parallel()
		path := writeSkipFile(t, "# internal accounts\nkey-alpha\n\n  key-beta  \n# trailing comment\n")

		set, err := LoadSkipList(path)

		require.NoError(t, err)
		assert.Len(t, set, 2)
		assert.True(t, set.Contains("key-alpha"))
		assert.True(t, set.Contains("key-beta"))
		assert.False(t, set.Contains("# internal accounts"))
	})

	t.Run("missing file yields empty set", func(t *testing.T) {
		t.Parallel()
		set, err := LoadSkipList(filepath.Join(t.TempDir(), "nope.txt"))

		require.NoError(t, err)
		assert.Empty(t, set)
	})

	t.Run("empty file yields empty set", func(t *testing.T) {
		t.Parallel()
		set, err := LoadSkipList(writeSkipFile(t, ""))

		require.NoError(t, err)
		assert.Empty(t, set)
	})
}

func TestFilterSkipped(t *testing.T) {
	t.Parallel()

	records := []model.ProcessRecord{
		{Name: "acme", APIKey: "keep-1"},
		{Name: "test-tenant", APIKey: "skip-me"},
		{Name: "globex", APIKey: "keep-2"},
		{Name: "test-tenant", APIKey: "skip-me"},
	}

	kept, dropped := FilterSkipped(records, SkipSet{"skip-me": {}})

	assert.Equal(t, 2, dropped)
	require.Len(t, kept, 2)
	assert.Equal(t, "keep-1", kept[0].APIKey)
	assert.Equal(t, "keep-2", kept[1].APIKey)
}

func TestFilterSkipped_EmptySetKeepsEverything(t *testing.T) {
	t.Parallel()

	records := []model.ProcessRecord{{APIKey: "a"}, {APIKey: "b"}}

	kept, dropped := FilterSkipped(records, SkipSet{})

	assert.Zero(t, dropped)
	assert.Len(t, kept, len(records))
}
