package fetcher

import (
	"bytes"
	"io"
	"mime"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// metaCharsetRe finds <meta charset=...> or the charset in an http-equiv
// content attribute within the head of a page.
var metaCharsetRe = regexp.MustCompile(`(?i)<meta[^>]+charset\s*=\s*["']?\s*([A-Za-z0-9_.:-]+)`)

// sniffLen bounds how much of the page is searched for a meta charset.
const sniffLen = 2048

// DecodeHTML converts raw to UTF-8. The charset comes from contentType when
// it names one, otherwise from a meta tag. Unknown or absent charsets leave
// the bytes untouched.
func DecodeHTML(raw []byte, contentType string) ([]byte, error) {
	name := charsetOf(raw, contentType)
	if name == "" {
		return raw, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return raw, nil
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return raw, nil
	}

	out, err := io.ReadAll(enc.NewDecoder().Reader(bytes.NewReader(raw)))
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: decode %s body", name)
	}
	return out, nil
}

func charsetOf(raw []byte, contentType string) string {
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			if cs := strings.TrimSpace(params["charset"]); cs != "" {
				return cs
			}
		}
	}
	head := raw[:min(len(raw), sniffLen)]
	if m := metaCharsetRe.FindSubmatch(head); m != nil {
		return string(m[1])
	}
	return ""
}
