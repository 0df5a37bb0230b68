package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSignalType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want SignalType
	}{
		{"positive", SignalPositive},
		{"POSITIVE", SignalPositive},
		{" Positive ", SignalPositive},
		{"negative", SignalNegative},
		{"Negative", SignalNegative},
		{"neutral", SignalNeutral},
		{"", SignalNeutral},
		{"bullish", SignalNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseSignalType(tt.in))
		})
	}
}

func TestStockSignal_String(t *testing.T) {
	t.Parallel()

	s := StockSignal{Code: "600519", Name: "Kweichow Moutai", Type: SignalPositive, Confidence: 0.85}
	assert.Equal(t, "600519 Kweichow Moutai [positive] 85%", s.String())
}

func TestStockSignal_IsPositive(t *testing.T) {
	t.Parallel()

	assert.True(t, StockSignal{Type: SignalPositive}.IsPositive())
	assert.False(t, StockSignal{Type: SignalNegative}.IsPositive())
	assert.False(t, StockSignal{Type: SignalNeutral}.IsPositive())
}

func TestCodes(t *testing.T) {
	t.Parallel()

	signals := []StockSignal{{Code: "600519"}, {Code: "300750"}, {Code: "000001"}}
	assert.Equal(t, []string{"600519", "300750", "000001"}, Codes(signals))
	assert.Empty(t, Codes(nil))
}

func TestSearchResponse_Usable(t *testing.T) {
	t.Parallel()

	var nilResp *SearchResponse
	assert.False(t, nilResp.Usable())
	assert.False(t, (&SearchResponse{Success: true}).Usable())
	assert.False(t, (&SearchResponse{Results: []SearchResult{{Title: "a"}}}).Usable())
	assert.True(t, (&SearchResponse{Success: true, Results: []SearchResult{{Title: "a"}}}).Usable())
}
