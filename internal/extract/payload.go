// Package extract pulls stock signals out of free-text model replies.
//
// Locating the JSON payload is done in three tiers, tried in order: a fenced
// ```json block, the smallest object carrying a "stocks" array, and finally
// the first outer-most object in the text.
package extract

import (
	"regexp"
	"strings"
)

// Payload is the tagged outcome of a locate step.
type Payload struct {
	Text  string
	Found bool
}

func found(text string) Payload { return Payload{Text: text, Found: true} }

var (
	fenceRe     = regexp.MustCompile("(?s)```[ \\t]*([A-Za-z0-9_-]*)[ \\t]*\\r?\\n?(.*?)```")
	stocksKeyRe = regexp.MustCompile(`"stocks"\s*:\s*\[`)
)

// Locate applies the three tiers in order and returns the first hit.
func Locate(text string) Payload {
	for _, tier := range []func(string) Payload{FencedBlock, KeyedObject, OuterObject} {
		if p := tier(text); p.Found {
			return p
		}
	}
	return Payload{}
}

// FencedBlock returns the body of the first non-empty fence tagged json.
// An untagged fence whose body opens with a brace also qualifies.
func FencedBlock(text string) Payload {
	for _, m := range fenceRe.FindAllStringSubmatch(text, -1) {
		lang := strings.ToLower(m[1])
		body := strings.TrimSpace(m[2])
		if body == "" {
			continue
		}
		if lang == "json" || (lang == "" && strings.HasPrefix(body, "{")) {
			return found(body)
		}
	}
	return Payload{}
}

// KeyedObject returns the smallest balanced object whose text contains a
// "stocks" key followed by an array.
func KeyedObject(text string) Payload {
	spans, _ := scanObjects(text)
	best := -1
	for i, s := range spans {
		if !stocksKeyRe.MatchString(text[s.start:s.end]) {
			continue
		}
		if best < 0 || s.len() < spans[best].len() {
			best = i
		}
	}
	if best < 0 {
		return Payload{}
	}
	return found(text[spans[best].start:spans[best].end])
}

// OuterObject returns the first outer-most balanced object. When a brace is
// opened but never closed (a cut-off reply) the tail from that brace is
// returned so the decoder can attempt a repair.
func OuterObject(text string) Payload {
	spans, openAt := scanObjects(text)
	for _, s := range spans {
		if s.depth == 0 {
			return found(text[s.start:s.end])
		}
	}
	if openAt >= 0 {
		return found(strings.TrimSpace(text[openAt:]))
	}
	return Payload{}
}

type span struct {
	start, end int
	depth      int
}

func (s span) len() int { return s.end - s.start }

// scanObjects records every balanced {...} span in text. Quotes are only
// honoured inside an object, so prose around the payload cannot desync the
// scan. openAt is the position of the outer-most brace left unclosed, or -1.
func scanObjects(text string) (spans []span, openAt int) {
	var stack []int
	inString, escape := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if len(stack) == 0 {
			if c == '{' {
				stack = append(stack, i)
			}
			continue
		}
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
			stack = append(stack, i)
		case '}':
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			spans = append(spans, span{start: start, end: i + 1, depth: len(stack)})
		}
	}
	openAt = -1
	if len(stack) > 0 {
		openAt = stack[0]
	}
	return spans, openAt
}
