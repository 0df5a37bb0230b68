package screener

import (
	"cmp"
	"slices"

	"github.com/sells-group/screener-cli/internal/model"
)

// Rank sorts signals in place: positive signals first, then by confidence
// descending. Ties keep their input order.
func Rank(signals []model.StockSignal) {
	slices.SortStableFunc(signals, func(a, b model.StockSignal) int {
		if a.IsPositive() != b.IsPositive() {
			if a.IsPositive() {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Confidence, a.Confidence)
	})
}

// Combine merges news and board signals: positive news first, then board
// signals, then the remaining news, each code appearing once. The result
// is truncated to topN when topN > 0.
func Combine(news, board []model.StockSignal, topN int) []model.StockSignal {
	seen := make(map[string]struct{}, len(news)+len(board))
	out := make([]model.StockSignal, 0, len(news)+len(board))

	add := func(s model.StockSignal) {
		if _, dup := seen[s.Code]; dup {
			return
		}
		seen[s.Code] = struct{}{}
		out = append(out, s)
	}

	for _, s := range news {
		if s.IsPositive() {
			add(s)
		}
	}
	for _, s := range board {
		add(s)
	}
	for _, s := range news {
		add(s)
	}

	return truncate(out, topN)
}

// dedup keeps the first signal for each code.
func dedup(signals []model.StockSignal) []model.StockSignal {
	seen := make(map[string]struct{}, len(signals))
	out := signals[:0:0]
	for _, s := range signals {
		if _, dup := seen[s.Code]; dup {
			continue
		}
		seen[s.Code] = struct{}{}
		out = append(out, s)
	}
	return out
}

func truncate(signals []model.StockSignal, n int) []model.StockSignal {
	if n > 0 && len(signals) > n {
		return signals[:n]
	}
	return signals
}
