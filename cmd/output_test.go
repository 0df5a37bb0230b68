//go:build !integration

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screener-cli/internal/model"
)

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, nil))
	assert.Contains(t, buf.String(), "No stocks found.")
}

func TestWriteTable_Rows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, sampleSignals))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3, "header plus one line per signal")
	assert.Contains(t, lines[0], "Code")
	assert.Contains(t, lines[0], "Reason")

	assert.Contains(t, lines[1], "600519")
	assert.Contains(t, lines[1], "SH")
	assert.Contains(t, lines[1], "贵州茅台")
	assert.Contains(t, lines[1], "positive")
	assert.Contains(t, lines[1], "0.90")

	assert.Contains(t, lines[2], "300750")
	assert.Contains(t, lines[2], "SZ")
	assert.Contains(t, lines[2], "discussion-board")
}

func TestWriteTable_LongReasonStaysOnOneLine(t *testing.T) {
	sig := model.StockSignal{
		Code:   "000001",
		Name:   "平安银行",
		Type:   model.SignalNegative,
		Reason: strings.Repeat("监管处罚 ", 40) + "\n第二行",
	}
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, []model.StockSignal{sig}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.NotContains(t, buf.String(), "第二行")
}

func TestWriteJSON_KeepsUnicode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleSignals[:1]))

	assert.Contains(t, buf.String(), "贵州茅台")
	var got []model.StockSignal
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleSignals[:1], got)
}

func TestWriteCodes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCodes(&buf, []string{"600519", "300750"}, false))
	assert.Equal(t, "600519\n300750\n", buf.String())

	buf.Reset()
	require.NoError(t, writeCodes(&buf, []string{"600519"}, true))
	var codes []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &codes))
	assert.Equal(t, []string{"600519"}, codes)
}
