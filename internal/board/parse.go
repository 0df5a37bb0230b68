package board

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/internal/ticker"
)

// SourceName labels every signal produced from the board.
const SourceName = "discussion-board"

const maxReasonRunes = 100

// postLinkRe matches post links such as /news,600519,1234567890.html.
var postLinkRe = regexp.MustCompile(`/news,(\d{6}),`)

// ParseLinks extracts one neutral signal per unique valid ticker found in
// post links, in page order. seen is shared across pages of a run and may
// be nil.
func ParseLinks(html []byte, seen map[string]struct{}) ([]model.StockSignal, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "board: parse html")
	}
	if seen == nil {
		seen = make(map[string]struct{})
	}

	var out []model.StockSignal
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := postLinkRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		code := m[1]
		if !ticker.IsValid(code) {
			return
		}
		if _, dup := seen[code]; dup {
			return
		}
		seen[code] = struct{}{}

		text := strings.TrimSpace(a.Text())
		out = append(out, model.StockSignal{
			Code:       code,
			Name:       model.UnknownName,
			Type:       model.SignalNeutral,
			Reason:     truncateRunes(text, maxReasonRunes),
			Source:     SourceName,
			Confidence: model.DefaultConfidence,
			NewsTitle:  text,
		})
	})
	return out, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
