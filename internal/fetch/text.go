package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLToText parses an HTML fragment and returns its readable text.
// Block elements become line breaks; script and style content is dropped.
func HTMLToText(html string) (string, error) {
	if !strings.Contains(html, "<") {
		return cleanWhitespace(html), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, li, div, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(doc.Text()), nil
}

// cleanWhitespace trims each line and drops empty ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
