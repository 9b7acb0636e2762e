package webdoc

import (
	"strings"
	"testing"
)

func TestConverterExtract(t *testing.T) {
	html := `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<nav>Navigation</nav>
<article>
<h1>Main Heading</h1>
<p>This is a paragraph about Jane Smith and her company.</p>
<ul>
<li>Item 1</li>
<li>Item 2</li>
</ul>
</article>
<footer>Footer</footer>
</body>
</html>`

	conv := NewConverter()
	doc, err := conv.Extract(html, "https://example.com/article")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !strings.Contains(doc.Text, "Jane Smith") {
		t.Errorf("Text = %q, want it to contain %q", doc.Text, "Jane Smith")
	}
	if !strings.Contains(doc.Markdown, "Item 1") {
		t.Error("Markdown should contain list item text")
	}
}

func TestConverterExtractInvalidHTML(t *testing.T) {
	conv := NewConverter()
	// Malformed input still parses under the HTML5 error-recovery rules;
	// readability simply finds no article content.
	doc, err := conv.Extract("<<<not html", "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if doc == nil {
		t.Fatal("expected a non-nil document")
	}
}

func TestCleanMarkdown(t *testing.T) {
	input := "Line 1\n\n\n\n\n\nLine 2   \nLine 3"
	got := cleanMarkdown(input)

	if strings.Contains(got, "\n\n\n\n") {
		t.Error("cleanMarkdown should collapse runs of 4+ newlines")
	}
	for _, line := range strings.Split(got, "\n") {
		if strings.HasSuffix(line, " ") {
			t.Errorf("cleanMarkdown left a trailing space: %q", line)
		}
	}
}
