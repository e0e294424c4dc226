// Package scrape fetches article pages and extracts readable content for
// digest generation.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/takumin/newsbrief/internal/domain/digest"
)

const (
	maxContentChars = 10000
	maxBodyBytes    = 2 << 20
	maxWorkers      = 5

	userAgent    = "Mozilla/5.0 (compatible; newsbrief/1.0)"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// FetchContent downloads one article page and returns its main content as
// markdown text, capped at maxContentChars.
func FetchContent(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	removeChrome(doc)

	node := findArticleNode(doc)
	markdownBytes, err := htmltomarkdown.ConvertNode(node)
	if err != nil {
		return "", fmt.Errorf("failed to convert content to markdown: %w", err)
	}

	content := strings.TrimSpace(string(markdownBytes))
	if len(content) > maxContentChars {
		cut := maxContentChars
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut] + "... [content truncated]"
	}
	return content, nil
}

// FetchAll fetches content for every article in parallel with a bounded
// worker pool. Fetch failures degrade to the article's own title and
// snippet; the result slice is index-aligned with the input.
func FetchAll(ctx context.Context, client *http.Client, articles []digest.Article, perFetchTimeout time.Duration) []string {
	contents := make([]string, len(articles))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, article := range articles {
		wg.Add(1)
		go func(i int, article digest.Article) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if strings.TrimSpace(article.Link) == "" {
				contents[i] = fallbackContent(article)
				return
			}

			fetchCtx := ctx
			if perFetchTimeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, perFetchTimeout)
				defer cancel()
			}

			content, err := FetchContent(fetchCtx, client, article.Link)
			if err != nil || strings.TrimSpace(content) == "" {
				contents[i] = fallbackContent(article)
				return
			}
			contents[i] = content
		}(i, article)
	}

	wg.Wait()
	return contents
}

func fallbackContent(article digest.Article) string {
	return strings.TrimSpace(strings.TrimSpace(article.Title) + ". " + strings.TrimSpace(article.Snippet))
}

// Fetcher implements the usecase.ContentFetcher interface.
type Fetcher struct {
	Client  *http.Client
	Timeout time.Duration
}

// FetchAll fetches article contents with the configured client and
// per-article timeout.
func (f Fetcher) FetchAll(ctx context.Context, articles []digest.Article) []string {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return FetchAll(ctx, f.Client, articles, timeout)
}
