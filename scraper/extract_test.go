package scraper_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"roastedin/scraper"
)

func TestExtractTextSkipsScriptsAndStyles(t *testing.T) {
	htmlStr := `<html><head>
		<title>Jane Doe - Staff Engineer | LinkedIn</title>
		<style>body { color: red; }</style>
	</head><body>
		<script>window.__data = {"secret": true};</script>
		<h1>Jane Doe</h1>
		<p>Staff Engineer at Acme. Passionate thought leader. Synergy evangelist.</p>
		<noscript>enable javascript</noscript>
	</body></html>`

	text := scraper.ExtractText(htmlStr)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Synergy evangelist")
	assert.NotContains(t, text, "__data")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "enable javascript")
}

func TestExtractTextLongDocument(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><article>")
	for i := 0; i < 40; i++ {
		b.WriteString("<p>Experienced professional driving cross-functional alignment and scalable growth initiatives across global teams.</p>")
	}
	b.WriteString("</article></body></html>")

	text := scraper.ExtractText(b.String())
	assert.Contains(t, text, "cross-functional alignment")
	assert.Greater(t, len([]rune(text)), 200)
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Jane Doe - Staff Engineer | LinkedIn",
		scraper.PageTitle(`<html><head><title>Jane Doe - Staff Engineer | LinkedIn</title></head><body></body></html>`))
	assert.Equal(t, "", scraper.PageTitle(`<html><body><p>no title</p></body></html>`))
}

func TestSplitProfileTitle(t *testing.T) {
	name, headline := scraper.SplitProfileTitle("Jane Doe - Staff Engineer at Acme | LinkedIn")
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "Staff Engineer at Acme", headline)

	name, headline = scraper.SplitProfileTitle("Jane Doe | LinkedIn")
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "", headline)

	name, headline = scraper.SplitProfileTitle("")
	assert.Equal(t, "", name)
	assert.Equal(t, "", headline)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "가나다", scraper.TruncateRunes("가나다라마", 3))
	assert.Equal(t, "abc", scraper.TruncateRunes("abc", 10))
	assert.Equal(t, "abc", scraper.TruncateRunes("abc", 0))
	assert.Equal(t, "abc", scraper.TruncateRunes("abc", -1))
}
