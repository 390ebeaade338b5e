package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestExtractTextPrefersArticleParagraphs(t *testing.T) {
	doc := docFromHTML(t, `
		<html><body>
			<nav><p>Menu item</p></nav>
			<article><p>First paragraph.</p><p>Second paragraph.</p></article>
			<footer><p>Copyright</p></footer>
		</body></html>`)

	text := extractText(doc)
	if text != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("text = %q", text)
	}
}

func TestExtractTextFallsBackToAllParagraphs(t *testing.T) {
	doc := docFromHTML(t, `
		<html><body>
			<script>var x = 1;</script>
			<div><p>Loose paragraph one.</p></div>
			<div><p>Loose paragraph two.</p></div>
		</body></html>`)

	text := extractText(doc)
	if !strings.Contains(text, "Loose paragraph one.") || !strings.Contains(text, "Loose paragraph two.") {
		t.Errorf("text = %q", text)
	}
	if strings.Contains(text, "var x") {
		t.Error("script content leaked into extracted text")
	}
}

func TestExtractTextTruncatesLongArticles(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 5000)
	doc := docFromHTML(t, "<html><body><article><p>"+long+"</p></article></body></html>")

	text := extractText(doc)
	if len([]rune(text)) > maxArticleRunes {
		t.Errorf("text length = %d runes, want at most %d", len([]rune(text)), maxArticleRunes)
	}
}

func TestExtractTextEmptyDocument(t *testing.T) {
	doc := docFromHTML(t, "<html><body><div>no paragraphs here</div></body></html>")
	if text := extractText(doc); text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}
