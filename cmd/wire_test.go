//go:build !integration

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screener-cli/internal/config"
	"github.com/sells-group/screener-cli/internal/model"
)

const boardHTML = `<html><body>
<a href="/news,600519,1.html">茅台获北向资金大幅加仓</a>
<a href="/news,300750,2.html">宁德时代新品发布</a>
<a href="/news,999999,3.html">invalid</a>
</body></html>`

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	chdirTemp(t)
	c, err := config.Load()
	require.NoError(t, err)
	return c
}

func TestBuildProviders_Order(t *testing.T) {
	c := loadTestConfig(t)
	c.Search.Providers = []string{"firecrawl", "jina", "bing", "google"}

	providers := buildProviders(c)
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"firecrawl", "jina", "google"}, names)
}

func TestBuildProviders_UnavailableWithoutKeys(t *testing.T) {
	c := loadTestConfig(t)
	c.Jina.Key = "jina-key"
	c.Google.Key = "google-key" // no cx

	for _, p := range buildProviders(c) {
		assert.Equal(t, p.Name() == "jina", p.Available(), p.Name())
	}
}

func TestInitScreener_InvalidConfig(t *testing.T) {
	c := loadTestConfig(t)
	c.LLM.Provider = "bard"

	_, err := initScreener(context.Background(), c, "screen", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.provider")
}

func TestInitScreener_QueriesFile(t *testing.T) {
	c := loadTestConfig(t)

	_, err := initScreener(context.Background(), c, "screen", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "queries.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queries:\n  - A股 回购\n"), 0o644))
	env, err := initScreener(context.Background(), c, "screen", path)
	require.NoError(t, err)
	env.Close()
}

func TestInitScreener_BoardEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(boardHTML))
	}))
	defer srv.Close()

	c := loadTestConfig(t)
	c.Board.Pages = []string{srv.URL + "/"}
	c.Board.RatePerSec = 100

	env, err := initScreener(context.Background(), c, "screen", "")
	require.NoError(t, err)
	defer env.Close()

	got := env.Screener.ScreenFromSupplementary(context.Background(), 10)
	assert.Equal(t, []string{"600519", "300750"}, model.Codes(got))

	families, err := env.Registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["screener_run_duration_seconds"])
	assert.True(t, names["screener_signals_total"])
}

func TestInitScreener_NewsWithoutKeysIsEmpty(t *testing.T) {
	c := loadTestConfig(t)

	env, err := initScreener(context.Background(), c, "screen", "")
	require.NoError(t, err)
	defer env.Close()

	assert.Empty(t, env.Screener.ScreenFromNews(context.Background(), 5, "A股 利好"))
}
