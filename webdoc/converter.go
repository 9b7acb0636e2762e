// Package webdoc turns raw HTML from a Webpage source entity into the
// plain text the analyze pipeline chunks and extracts over. It isolates
// the article body with go-readability, then renders that body to
// markdown so headings and link text survive into the indexable text.
package webdoc

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
)

var excessiveLinesRe = regexp.MustCompile(`\n{4,}`)

// Document is the result of extracting a Webpage source entity's article
// content: Text feeds the analyzer, Title is recorded on the output
// entity, Markdown is kept for callers that want the formatted rendering.
type Document struct {
	Title    string
	Text     string
	Markdown string
}

// Converter isolates article content from a full HTML page and renders it
// to markdown.
type Converter struct {
	md *md.Converter
}

// NewConverter builds a Converter with GitHub-flavored markdown output.
func NewConverter() *Converter {
	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())
	return &Converter{md: conv}
}

// Extract parses rawHTML (fetched from pageURL, which may be empty) and
// returns its readable article content. An error here means rawHTML could
// not be parsed as HTML at all; readability.FromReader falling back to a
// whole-body extraction is not itself an error.
func (c *Converter) Extract(rawHTML, pageURL string) (*Document, error) {
	u, _ := url.Parse(pageURL)
	if u == nil {
		u = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, fmt.Errorf("webdoc: extract article: %w", err)
	}

	markdown, err := c.md.ConvertString(article.Content)
	if err != nil {
		return nil, fmt.Errorf("webdoc: convert to markdown: %w", err)
	}

	return &Document{
		Title:    strings.TrimSpace(article.Title),
		Text:     strings.TrimSpace(article.TextContent),
		Markdown: cleanMarkdown(markdown),
	}, nil
}

// cleanMarkdown collapses the blank-line runs html-to-markdown tends to
// leave behind.
func cleanMarkdown(content string) string {
	content = excessiveLinesRe.ReplaceAllString(content, "\n\n\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
