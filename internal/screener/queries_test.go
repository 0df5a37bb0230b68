package screener

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadQueries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "queries.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queries:\n  - \"A股 利好\"\n  - \"  \"\n  - 并购重组\n"), 0o644))

	got, err := LoadQueries(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A股 利好", "并购重组"}, got)
}

func TestLoadQueries_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadQueries(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("queries: [unclosed"), 0o644))
	_, err = LoadQueries(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("queries: []\n"), 0o644))
	_, err = LoadQueries(empty)
	assert.Error(t, err)
}

func TestDefaultQueries(t *testing.T) {
	t.Parallel()

	assert.Contains(t, DefaultQueries, "A股 利好 今日")
	assert.Contains(t, DefaultQueries, "site:xueqiu.com A股 利好")
}
