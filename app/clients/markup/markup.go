// Package markup has helpers for reading text out of parsed dictionary pages
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// IsText reports whether selection wraps a text node
func IsText(s *goquery.Selection) bool {
	return s.Length() > 0 && s.Nodes[0].Type == html.TextNode
}

// OwnText joins text nodes that are direct children of the first selected element
func OwnText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	var b strings.Builder
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// FirstText returns the first non-blank direct text child of the first selected element
func FirstText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		if text := strings.TrimSpace(c.Data); text != "" {
			return text
		}
	}
	return ""
}
