package cms

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
)

// excerptLimit is the rough character budget for meta descriptions.
const excerptLimit = 160

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()
)

// renderMarkdown converts markdown to sanitized HTML.
func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// excerpt flattens rendered HTML into plain text, truncated near limit
// runes on a word boundary.
func excerpt(rendered string, limit int) string {
	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(rendered))
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.TextToken {
			continue
		}
		text := strings.TrimSpace(string(tok.Text()))
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
		if b.Len() > limit*4 { // utf-8 worst case, enough collected
			break
		}
	}
	return truncate(b.String(), limit)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := limit
	// back up to a space when one is near, so words stay whole
	for i := limit; i > limit-20 && i > 0; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "…"
}
