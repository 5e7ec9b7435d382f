// Package markdown renders blog content for outward representations.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// Render converts markdown source to HTML. On a conversion failure the raw
// source is returned so a bad document never blanks a response.
func Render(src string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return src
	}
	return buf.String()
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Excerpt derives a plain-text excerpt from markdown content: render, strip
// tags, collapse whitespace, truncate to max runes on a rune boundary.
func Excerpt(src string, max int) string {
	text := tagPattern.ReplaceAllString(Render(src), " ")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
