package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	html := Render("# Title\n\nSome **bold** text.")
	assert.Contains(t, html, "<h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRenderPlainText(t *testing.T) {
	html := Render("just a sentence")
	assert.Contains(t, html, "just a sentence")
}

func TestExcerpt(t *testing.T) {
	got := Excerpt("# Heading\n\nFirst paragraph with **markup**.", 200)
	assert.Equal(t, "Heading First paragraph with markup.", got)
}

func TestExcerptTruncates(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := Excerpt(long, 50)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), 53)
}

func TestExcerptShortInputUntouched(t *testing.T) {
	got := Excerpt("short", 200)
	assert.Equal(t, "short", got)
}
