package scraper

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ExtractText 는 렌더링된 HTML 에서 보이는 텍스트를 추출한다.
// readability 를 기본으로 쓰고, 실패하거나 결과가 빈약하면 trafilatura,
// 마지막으로 원시 텍스트 노드 순회로 폴백한다.
// 프로필 페이지는 기사형 문서가 아니라 추출기가 내용을 버리는 경우가 있어
// 폴백 체인이 실질적으로 동작한다.
func ExtractText(htmlStr string) string {
	const minUseful = 200 // runes

	if text, err := extractWithReadability(htmlStr); err == nil && len([]rune(text)) >= minUseful {
		return text
	}
	if text, err := extractWithTrafilatura(htmlStr); err == nil && len([]rune(text)) >= minUseful {
		return text
	}
	return extractPlainText(htmlStr)
}

func extractWithReadability(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	article, err := readability.FromDocument(doc, nil)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

func extractWithTrafilatura(htmlStr string) (string, error) {
	opts := trafilatura.Options{}

	article, err := trafilatura.Extract(strings.NewReader(htmlStr), opts)
	if err != nil {
		return "", err
	}
	return article.ContentText, nil
}

// extractPlainText 는 script/style 을 제외한 모든 텍스트 노드를 줄 단위로 모은다.
func extractPlainText(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				b.WriteString(text)
				b.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return b.String()
}

// PageTitle 은 <title> 내용을 반환한다. LinkedIn 프로필은
// "이름 - 헤드라인 | LinkedIn" 형식이므로 호출부에서 잘라 쓴다.
func PageTitle(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	var title string
	var f func(*html.Node)
	f = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return title
}

// SplitProfileTitle 은 페이지 타이틀에서 (이름, 헤드라인)을 분리한다.
func SplitProfileTitle(title string) (name, headline string) {
	title = strings.TrimSuffix(title, "| LinkedIn")
	title = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(title), "|"))

	if i := strings.Index(title, " - "); i >= 0 {
		return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+3:])
	}
	return title, ""
}

// TruncateRunes 는 s 를 최대 max 룬으로 자른다. max 가 0 이하면 그대로 반환한다.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
