package scrape

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"newsdesk-backend/pkg/apperrors"

	"github.com/PuerkitoBio/goquery"
)

const maxArticleRunes = 20000

// Result is one fetched article. Err is set when the URL could not be
// fetched or yielded no readable text.
type Result struct {
	URL     string
	Title   string
	Content string
	Err     error
}

// Scraper fetches article pages and extracts their readable text.
type Scraper struct {
	client *http.Client
}

func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ScrapeArticles fetches each URL in order. Per-URL failures are recorded on
// the corresponding Result rather than aborting the batch.
func (s *Scraper) ScrapeArticles(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))
	for i, url := range urls {
		results[i] = s.scrapeOne(ctx, url)
		if results[i].Err != nil {
			log.Printf("[Scraper] Failed to scrape %s: %v", url, results[i].Err)
		}
	}
	return results
}

// ScrapeArticle fetches a single URL and fails with a ScrapeFailedError.
func (s *Scraper) ScrapeArticle(ctx context.Context, url string) (*Result, error) {
	result := s.scrapeOne(ctx, url)
	if result.Err != nil {
		return nil, &apperrors.ScrapeFailedError{URL: url, Err: result.Err}
	}
	return &result, nil
}

func (s *Scraper) scrapeOne(ctx context.Context, url string) Result {
	result := Result{URL: url}

	doc, err := s.fetchDocument(ctx, url)
	if err != nil {
		result.Err = err
		return result
	}

	result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	result.Content = extractText(doc)
	if result.Content == "" {
		result.Err = fmt.Errorf("no readable text found")
	}
	return result
}

func (s *Scraper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; newsdesk/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// extractText prefers <article> paragraphs, falling back to all <p> tags.
func extractText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, aside").Remove()

	var parts []string
	collect := func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			parts = append(parts, text)
		}
	}

	doc.Find("article p").Each(collect)
	if len(parts) == 0 {
		doc.Find("p").Each(collect)
	}

	content := strings.Join(parts, "\n\n")
	runes := []rune(content)
	if len(runes) > maxArticleRunes {
		content = string(runes[:maxArticleRunes])
	}
	return content
}
