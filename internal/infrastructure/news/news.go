// Package news searches Google News RSS for recent articles on a topic.
package news

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/takumin/newsbrief/internal/domain/digest"
	"github.com/takumin/newsbrief/internal/infrastructure/scrape"
)

const (
	searchFeedURL    = "https://news.google.com/rss/search"
	feedAcceptHeader = "application/atom+xml, application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"
)

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// ParserFunc is exposed for testing.
// It allows mocking the feed parsing logic.
var ParserFunc = defaultParser

func defaultParser(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "newsbrief/1.0"
	fp.Client = &http.Client{Transport: acceptTransport{base: http.DefaultTransport}}
	return fp.ParseURLWithContext(feedURL, ctx)
}

// SearchURL builds the Google News RSS search URL for a topic.
func SearchURL(topic string) string {
	q := url.Values{}
	q.Set("q", topic)
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")
	return searchFeedURL + "?" + q.Encode()
}

// Search returns up to maxArticles recent articles matching the topic.
func Search(ctx context.Context, topic string, maxArticles int) ([]digest.Article, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.New("search topic is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if maxArticles <= 0 {
		maxArticles = 15
	}

	parsed, err := ParserFunc(ctx, SearchURL(topic))
	if err != nil {
		return nil, err
	}

	articles := make([]digest.Article, 0, maxArticles)
	for _, item := range parsed.Items {
		if len(articles) >= maxArticles {
			break
		}
		title, source := splitSource(item.Title)
		if source == "" && item.Custom != nil {
			source = item.Custom["source"]
		}
		articles = append(articles, digest.Article{
			Title:     title,
			Link:      item.Link,
			Source:    source,
			Published: normalizePublished(item),
			Snippet:   scrape.Text(item.Description),
		})
	}
	return articles, nil
}

// splitSource strips the " - Source" suffix Google News appends to item
// titles.
func splitSource(title string) (string, string) {
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
	}
	return strings.TrimSpace(title), ""
}

// normalizePublished formats an item's timestamp as RFC3339 UTC, or keeps
// the raw string when unparseable.
func normalizePublished(item *gofeed.Item) string {
	ts := item.PublishedParsed
	if ts == nil {
		ts = item.UpdatedParsed
	}
	if ts == nil {
		if item.Published != "" {
			return item.Published
		}
		return item.Updated
	}
	return ts.UTC().Format(time.RFC3339)
}

// Searcher implements the usecase.ArticleSearcher interface.
type Searcher struct{}

// Search searches Google News for the topic.
func (Searcher) Search(ctx context.Context, topic string, maxArticles int) ([]digest.Article, error) {
	return Search(ctx, topic, maxArticles)
}
