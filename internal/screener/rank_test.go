package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/screener-cli/internal/model"
)

func sig(code string, typ model.SignalType, conf float64) model.StockSignal {
	return model.StockSignal{Code: code, Name: code, Type: typ, Confidence: conf}
}

func TestRank(t *testing.T) {
	t.Parallel()

	in := []model.StockSignal{
		sig("000001", model.SignalNeutral, 0.99),
		sig("600519", model.SignalPositive, 0.6),
		sig("300750", model.SignalNegative, 0.9),
		sig("601318", model.SignalPositive, 0.8),
		sig("002594", model.SignalPositive, 0.6),
	}
	Rank(in)

	assert.Equal(t, []string{"601318", "600519", "002594", "000001", "300750"}, model.Codes(in))
}

func TestRank_Empty(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { Rank(nil) })
}

func TestCombine_TierOrder(t *testing.T) {
	t.Parallel()

	n1 := sig("600519", model.SignalPositive, 0.9)
	n2 := sig("300750", model.SignalNegative, 0.8)
	s1 := sig("000001", model.SignalNeutral, 0.5)

	got := Combine([]model.StockSignal{n1, n2}, []model.StockSignal{s1}, 10)
	assert.Equal(t, []model.StockSignal{n1, s1, n2}, got)
}

func TestCombine_DedupAcrossTiers(t *testing.T) {
	t.Parallel()

	news := []model.StockSignal{
		sig("600519", model.SignalPositive, 0.9),
		sig("300750", model.SignalNeutral, 0.7),
	}
	board := []model.StockSignal{
		sig("600519", model.SignalNeutral, 0.5),
		sig("300750", model.SignalNeutral, 0.5),
		sig("688981", model.SignalNeutral, 0.5),
	}

	got := Combine(news, board, 0)
	assert.Equal(t, []string{"600519", "300750", "688981"}, model.Codes(got))
	assert.Equal(t, model.SignalPositive, got[0].Type, "news signal wins over board duplicate")
	assert.Equal(t, 0.5, got[1].Confidence, "board signal precedes non-positive news")
}

func TestCombine_Truncates(t *testing.T) {
	t.Parallel()

	news := []model.StockSignal{
		sig("600519", model.SignalPositive, 0.9),
		sig("601318", model.SignalPositive, 0.8),
	}
	board := []model.StockSignal{sig("000001", model.SignalNeutral, 0.5)}

	got := Combine(news, board, 2)
	assert.Equal(t, []string{"600519", "601318"}, model.Codes(got))
}

func TestCombine_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Combine(nil, nil, 5))
}

func TestDedup_FirstSeenWins(t *testing.T) {
	t.Parallel()

	first := sig("600519", model.SignalNegative, 0.3)
	got := dedup([]model.StockSignal{first, sig("600519", model.SignalPositive, 0.9), sig("000001", model.SignalNeutral, 0.5)})
	assert.Equal(t, []string{"600519", "000001"}, model.Codes(got))
	assert.Equal(t, first, got[0])
}
