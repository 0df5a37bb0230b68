package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screener-cli/internal/model"
)

var testResults = []model.SearchResult{
	{Title: "Liquor makers rally", Source: "finance.example.com", Snippet: "..."},
	{Title: "Second headline", Source: "other.example.com", Snippet: "..."},
}

func TestSignals_FencedBlock(t *testing.T) {
	t.Parallel()

	text := "Analysis follows.\n```json\n" +
		`{"stocks":[{"code":"600519","name":"X","signal":"positive","confidence":0.8,"reason":"r"}]}` +
		"\n```"

	got := Signals(text, testResults)
	require.Len(t, got, 1)
	assert.Equal(t, model.StockSignal{
		Code:       "600519",
		Name:       "X",
		Type:       model.SignalPositive,
		Reason:     "r",
		Source:     "finance.example.com",
		Confidence: 0.8,
		NewsTitle:  "Liquor makers rally",
	}, got[0])
}

func TestSignals_NoStructure(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		got := Signals("The news mentions no listed companies today.", testResults)
		assert.Empty(t, got)
	})
}

func TestSignals_DropsInvalidCodesKeepsSiblings(t *testing.T) {
	t.Parallel()

	text := `{"stocks":[
		{"code":"12345","name":"short","signal":"positive","confidence":0.9},
		{"code":" 300750 ","name":"CATL","signal":"negative","confidence":0.7},
		{"code":"900901","name":"B share","signal":"positive"},
		{"code":"000001","name":"PAB","signal":"positive","confidence":0.6}
	]}`

	got := Signals(text, testResults)
	require.Len(t, got, 2)
	assert.Equal(t, "300750", got[0].Code)
	assert.Equal(t, model.SignalNegative, got[0].Type)
	assert.Equal(t, "000001", got[1].Code)
}

func TestSignals_Defaults(t *testing.T) {
	t.Parallel()

	got := Signals(`{"stocks":[{"code":"688981"}]}`, nil)
	require.Len(t, got, 1)
	s := got[0]
	assert.Equal(t, model.UnknownName, s.Name)
	assert.Equal(t, model.SignalNeutral, s.Type)
	assert.Equal(t, "", s.Reason)
	assert.Equal(t, 0.5, s.Confidence)
	assert.Equal(t, "", s.Source)
	assert.Equal(t, "", s.NewsTitle)
}

func TestSignals_SignalLabelMapping(t *testing.T) {
	t.Parallel()

	text := `{"stocks":[
		{"code":"600000","signal":"POSITIVE"},
		{"code":"600001","signal":"Negative"},
		{"code":"600002","signal":"mixed"},
		{"code":"600003","signal":42}
	]}`

	got := Signals(text, testResults)
	require.Len(t, got, 4)
	assert.Equal(t, model.SignalPositive, got[0].Type)
	assert.Equal(t, model.SignalNegative, got[1].Type)
	assert.Equal(t, model.SignalNeutral, got[2].Type)
	assert.Equal(t, model.SignalNeutral, got[3].Type)
}

func TestSignals_ConfidenceCoercion(t *testing.T) {
	t.Parallel()

	text := `{"stocks":[
		{"code":"600000","confidence":"0.7"},
		{"code":"600001","confidence":"85%"},
		{"code":"600002","confidence":"high"},
		{"code":"600003","confidence":null},
		{"code":"600004","confidence":90},
		{"code":"600005","confidence":-0.2},
		{"code":"600006","confidence":250},
		{"code":"600007","confidence":1.2},
		{"code":"600008","confidence":"1.5"},
		{"code":"600009","confidence":"120%"}
	]}`

	got := Signals(text, testResults)
	require.Len(t, got, 10)
	assert.InDelta(t, 0.7, got[0].Confidence, 1e-9)
	assert.InDelta(t, 0.85, got[1].Confidence, 1e-9)
	assert.Equal(t, 0.5, got[2].Confidence)
	assert.Equal(t, 0.5, got[3].Confidence)
	assert.Equal(t, 1.0, got[4].Confidence)
	assert.Equal(t, 0.0, got[5].Confidence)
	assert.Equal(t, 1.0, got[6].Confidence)
	assert.Equal(t, 1.0, got[7].Confidence)
	assert.Equal(t, 1.0, got[8].Confidence)
	assert.Equal(t, 1.0, got[9].Confidence)
}

func TestToConfidence_MonotonicForBareNumbers(t *testing.T) {
	t.Parallel()

	inputs := []float64{-5, 0, 0.3, 0.99, 1, 1.01, 1.2, 2, 9, 50, 100, 250}
	prev := -1.0
	for _, in := range inputs {
		got, ok := toConfidence(in)
		require.True(t, ok, "%v", in)
		assert.GreaterOrEqual(t, got, prev, "confidence for %v dropped below a smaller input", in)
		assert.True(t, got >= 0 && got <= 1, "%v out of range: %v", in, got)
		prev = got
	}
}

func TestSignals_NumericCode(t *testing.T) {
	t.Parallel()

	got := Signals(`{"stocks":[{"code":600519,"name":"X"},{"code":600.5}]}`, testResults)
	require.Len(t, got, 1)
	assert.Equal(t, "600519", got[0].Code)
}

func TestSignals_EmptyStocks(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Signals("```json\n{\"stocks\": []}\n```", testResults))
	assert.Empty(t, Signals(`{"answer": "nothing notable"}`, testResults))
}

func TestSignals_MalformedPayload(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Signals("```json\n{\"stocks\": [oops]}\n```", testResults))
	assert.Empty(t, Signals(`{"stocks": "not a list"}`, testResults))
}

func TestSignals_TruncatedReply(t *testing.T) {
	t.Parallel()

	text := `{"stocks":[{"code":"600519","name":"X","signal":"positive","confidence":0.8},{"code":"300750","name":"CAT`
	got := Signals(text, testResults)
	require.Len(t, got, 2)
	assert.Equal(t, "600519", got[0].Code)
	assert.Equal(t, "300750", got[1].Code)
	assert.Equal(t, "CAT", got[1].Name)
}

func TestSignals_SharedAttribution(t *testing.T) {
	t.Parallel()

	got := Signals(`{"stocks":[{"code":"600519"},{"code":"000858"}]}`, testResults)
	require.Len(t, got, 2)
	for _, s := range got {
		assert.Equal(t, "finance.example.com", s.Source)
		assert.Equal(t, "Liquor makers rally", s.NewsTitle)
	}
}

func TestRepairTruncatedJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{`{"a":[1,2,`, `{"a":[1,2]}`},
		{`{"a":"unterminated`, `{"a":"unterminated"}`},
		{`{"a":"esc\"aped`, `{"a":"esc\"aped"}`},
		{`{"a":{"b":[{"c":1}`, `{"a":{"b":[{"c":1}]}}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, repairTruncatedJSON(tt.in), tt.in)
	}
}
