package pipeline

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"

	"github.com/sells-group/screener-cli/internal/model"
)

// blockSeparator sits between formatted news blocks.
const blockSeparator = "\n---\n"

var extractTmpl = template.Must(template.New("extract").Parse(`You are an analyst covering China A-share equities (Shanghai, Shenzhen and Beijing exchanges).
Read the financial news below and list every A-share company it mentions.

For each company:
- give its 6-digit ticker code and its name;
- judge whether the news is "positive", "negative" or "neutral" for the stock;
- give a confidence between 0 and 1;
- give a one-sentence reason.

Weigh policy support, earnings beats, major contracts, mergers and restructurings, and institutional research visits.
Skip pure price-action recaps and news with no substance.

Reply with JSON only, in this shape:
` + "```json" + `
{"stocks": [{"code": "600519", "name": "Kweichow Moutai", "signal": "positive", "confidence": 0.85, "reason": "announced a 10% price increase"}]}
` + "```" + `

If no stock is worth attention, reply with {"stocks": []}.

---
News:
{{.News}}
`))

// FormatResults renders search results as numbered news blocks for the model.
func FormatResults(results []model.SearchResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("[News %d] %s\nSource: %s\nSummary: %s\n", i+1, r.Title, r.Source, r.Snippet)
	}
	return strings.Join(blocks, blockSeparator)
}

// BuildPrompt substitutes the formatted news into the extraction prompt.
func BuildPrompt(news string) (string, error) {
	var b strings.Builder
	if err := extractTmpl.Execute(&b, struct{ News string }{news}); err != nil {
		return "", eris.Wrap(err, "pipeline: render prompt")
	}
	return b.String(), nil
}
