package webfetch

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// Page is the extracted content of a fetched page.
type Page struct {
	URL         string `json:"url"`
	StatusCode  int    `json:"status_code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Markdown    string `json:"markdown"`
}

// Summary returns at most n runes of the markdown body.
func (p *Page) Summary(n int) string {
	md := strings.TrimSpace(p.Markdown)
	if n <= 0 || utf8.RuneCountInString(md) <= n {
		return md
	}
	runes := []rune(md)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// ParsePage extracts the title, meta description and markdown body from HTML.
func ParsePage(body []byte) (*Page, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &Page{}
	var content *html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if page.Title == "" {
					page.Title = strings.TrimSpace(extractText(n))
				}
			case "meta":
				if strings.EqualFold(attr(n, "name"), "description") && page.Description == "" {
					page.Description = strings.TrimSpace(attr(n, "content"))
				}
			case "main":
				content = n
			case "body":
				if content == nil {
					content = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if content != nil {
		md, err := htmltomarkdown.ConvertString(renderNode(content))
		if err != nil {
			return nil, fmt.Errorf("failed to convert page to markdown: %w", err)
		}
		page.Markdown = strings.TrimSpace(md)
	}
	return page, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return sb.String()
}

func renderNode(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}
