package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// blockSelector lists the elements whose text becomes one output line each.
const blockSelector = "h1,h2,h3,h4,h5,h6,p,li,th,td,pre,blockquote"

type Parser struct{}

// TextLines uses go-readability to isolate the main article of an HTML page
// and returns its title plus the text of each content block, one per line.
// When readability finds no article the whole document body is used.
func (p *Parser) TextLines(rawURL, html string) ([]string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", rawURL, err)
	}

	var lines []string
	content := html

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(html), parsedURL)
	if err == nil && strings.TrimSpace(article.Content) != "" {
		if title := normalizeText(article.Title); title != "" {
			lines = append(lines, title)
		}
		content = article.Content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	blocks := doc.Find(blockSelector).FilterFunction(func(i int, s *goquery.Selection) bool {
		// Nested blocks (li > p, td > p) would otherwise be counted twice.
		return s.Find(blockSelector).Length() == 0
	})
	blocks.Each(func(i int, s *goquery.Selection) {
		if text := normalizeText(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})

	if len(blocks.Nodes) == 0 {
		doc.Find("script,style,noscript").Remove()
		if text := normalizeText(doc.Find("body").Text()); text != "" {
			lines = append(lines, text)
		}
	}

	return lines, nil
}

// normalizeText collapses every run of whitespace, newlines included, into
// a single space.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
