package scraper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roastedin/scraper"
)

func TestCanonicalProfileURL(t *testing.T) {
	cases := []struct {
		in        string
		canonical string
		slug      string
	}{
		{"https://www.linkedin.com/in/jane-doe/", "https://www.linkedin.com/in/jane-doe/", "jane-doe"},
		{"https://www.linkedin.com/in/jane-doe", "https://www.linkedin.com/in/jane-doe/", "jane-doe"},
		{"https://linkedin.com/in/jane-doe?trk=share", "https://www.linkedin.com/in/jane-doe/", "jane-doe"},
		{"https://kr.linkedin.com/in/jane-doe/en", "https://www.linkedin.com/in/jane-doe/", "jane-doe"},
		{"linkedin.com/in/jane-doe", "https://www.linkedin.com/in/jane-doe/", "jane-doe"},
		{"jane-doe", "https://www.linkedin.com/in/jane-doe/", "jane-doe"},
		{"  jane-doe  ", "https://www.linkedin.com/in/jane-doe/", "jane-doe"},
		// 점이 들어간 slug 도 실제로 존재한다
		{"john.smith", "https://www.linkedin.com/in/john.smith/", "john.smith"},
		{"https://www.linkedin.com/in/john.smith/", "https://www.linkedin.com/in/john.smith/", "john.smith"},
	}

	for _, c := range cases {
		canonical, slug, err := scraper.CanonicalProfileURL(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.canonical, canonical, c.in)
		assert.Equal(t, c.slug, slug, c.in)
	}
}

func TestCanonicalProfileURLRejects(t *testing.T) {
	bad := []string{
		"",
		"linkedin.com",
		"www.linkedin.com",
		"https://www.linkedin.com/feed/",
		"https://www.linkedin.com/company/acme/",
		"https://www.linkedin.com/in/",
		"https://evil.example.com/in/jane-doe",
		"https://notlinkedin.com/in/jane-doe",
	}
	for _, in := range bad {
		_, _, err := scraper.CanonicalProfileURL(in)
		assert.ErrorIs(t, err, scraper.ErrNotProfileURL, in)
	}
}
