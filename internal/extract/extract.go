package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/internal/resilience"
	"github.com/sells-group/screener-cli/internal/ticker"
)

// document is the shape the extraction prompt asks the model for.
type document struct {
	Stocks []map[string]any `json:"stocks"`
}

// Signals parses a model reply into validated stock signals. Every signal
// is attributed to the first search result, since the whole batch came from
// one merged news blob. It never fails: an unparseable reply is logged and
// yields no signals.
func Signals(text string, results []model.SearchResult) []model.StockSignal {
	return resilience.Absorb("extract", func() ([]model.StockSignal, error) {
		return parse(text, results)
	})
}

func parse(text string, results []model.SearchResult) ([]model.StockSignal, error) {
	payload := Locate(text)
	if !payload.Found {
		return nil, nil
	}

	doc, err := decode(payload.Text)
	if err != nil {
		return nil, err
	}

	var source, title string
	if len(results) > 0 {
		source, title = results[0].Source, results[0].Title
	}

	signals := make([]model.StockSignal, 0, len(doc.Stocks))
	for _, entry := range doc.Stocks {
		code := codeField(entry["code"])
		if !ticker.IsValid(code) {
			continue
		}
		name, ok := entry["name"].(string)
		if !ok {
			name = model.UnknownName
		}
		label, _ := entry["signal"].(string)
		reason, _ := entry["reason"].(string)
		confidence, ok := toConfidence(entry["confidence"])
		if !ok {
			confidence = model.DefaultConfidence
		}
		signals = append(signals, model.StockSignal{
			Code:       code,
			Name:       name,
			Type:       model.ParseSignalType(label),
			Reason:     reason,
			Source:     source,
			Confidence: confidence,
			NewsTitle:  title,
		})
	}
	return signals, nil
}

func decode(payload string) (document, error) {
	var doc document
	err := json.Unmarshal([]byte(payload), &doc)
	if err == nil {
		return doc, nil
	}

	repaired := repairTruncatedJSON(payload)
	if repaired != payload {
		var fixed document
		if rerr := json.Unmarshal([]byte(repaired), &fixed); rerr == nil {
			zap.L().Debug("extract: decoded payload after closing truncated json",
				zap.Int("payload_len", len(payload)),
			)
			return fixed, nil
		}
	}
	return document{}, eris.Wrap(err, "extract: decode stocks payload")
}

// codeField reads a ticker that the model may have emitted as a string or
// a bare number.
func codeField(v any) string {
	switch c := v.(type) {
	case string:
		return strings.TrimSpace(c)
	case float64:
		if c >= 0 && c == float64(int64(c)) {
			return strconv.FormatInt(int64(c), 10)
		}
	}
	return ""
}

// toConfidence coerces a number, a numeric string or a percentage string
// into [0,1]. Only a "%" suffix scales the value; everything else is clamped.
func toConfidence(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		s := strings.TrimSpace(n)
		pct := strings.HasSuffix(s, "%")
		s = strings.TrimSuffix(s, "%")
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
		if pct {
			f /= 100
		}
	default:
		return 0, false
	}
	if f != f { // NaN
		return 0, false
	}
	return min(max(f, 0), 1), true
}

// repairTruncatedJSON closes any string, array or object left open by a
// reply that was cut off mid-payload.
func repairTruncatedJSON(text string) string {
	var stack []byte
	inString, escape := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escape:
				escape = false
			case c == '\\':
				escape = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if inString {
		text += `"`
	}
	for i := len(stack) - 1; i >= 0; i-- {
		text = strings.TrimRight(text, " \t\r\n,:")
		text += string(stack[i])
	}
	return text
}
