package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/takumin/newsbrief/internal/domain/digest"
)

const (
	maxSelectedArticles   = 5
	maxPromptContentChars = 5000
)

// TextGenerator abstracts a text-generating AI client.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ArticleSearcher finds recent articles for a topic.
type ArticleSearcher interface {
	Search(ctx context.Context, topic string, maxArticles int) ([]digest.Article, error)
}

// ContentFetcher loads full article content, index-aligned with the input.
type ContentFetcher interface {
	FetchAll(ctx context.Context, articles []digest.Article) []string
}

// GeneratedDigest is the outcome of one digest generation run.
type GeneratedDigest struct {
	Topic             string
	Articles          []digest.Article
	SelectedArticles  []int
	OverallSummary    string
	ArticleHighlights string
	Mock              bool
}

// GenerateService searches for articles and produces an AI digest for a
// topic. Without a configured TextGenerator it falls back to a mock digest
// built from the article metadata.
type GenerateService struct {
	Searcher     ArticleSearcher
	Fetcher      ContentFetcher
	Generator    TextGenerator
	MaxArticles  int
	FetchContent bool
	Now          func() time.Time
}

// Build runs the full pipeline: search, optional content fetch, generation.
func (s *GenerateService) Build(ctx context.Context, topic string) (GeneratedDigest, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return GeneratedDigest{}, errors.New("topic is required")
	}
	if s.Searcher == nil {
		return GeneratedDigest{}, errors.New("article searcher is not configured")
	}

	maxArticles := s.MaxArticles
	if maxArticles <= 0 {
		maxArticles = 15
	}

	articles, err := s.Searcher.Search(ctx, topic, maxArticles)
	if err != nil {
		return GeneratedDigest{}, fmt.Errorf("article search failed: %w", err)
	}
	if len(articles) == 0 {
		return GeneratedDigest{}, fmt.Errorf("no articles found for %q", topic)
	}

	var contents []string
	if s.FetchContent && s.Fetcher != nil {
		contents = s.Fetcher.FetchAll(ctx, articles)
	}

	if s.Generator == nil {
		return s.mockDigest(topic, articles), nil
	}

	generated, err := s.generate(ctx, topic, articles, contents)
	if err != nil {
		// Generation failures degrade to the mock digest so the
		// service keeps answering.
		return s.mockDigest(topic, articles), nil
	}
	return generated, nil
}

func (s *GenerateService) generate(ctx context.Context, topic string, articles []digest.Article, contents []string) (GeneratedDigest, error) {
	raw, err := s.Generator.Generate(ctx, buildDigestPrompt(topic, articles, contents))
	if err != nil {
		return GeneratedDigest{}, err
	}

	selected, summary, highlights := parseDigestOutput(raw)
	if summary == "" && highlights == "" {
		return GeneratedDigest{}, errors.New("ai output had no usable sections")
	}
	return GeneratedDigest{
		Topic:             topic,
		Articles:          articles,
		SelectedArticles:  selected,
		OverallSummary:    summary,
		ArticleHighlights: highlights,
	}, nil
}

func buildDigestPrompt(topic string, articles []digest.Article, contents []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Task: Create a Structured News Summary on %q\n\n", topic)
	fmt.Fprintf(&b, "I'm providing you with %d news articles related to %s.\n\n", len(articles), topic)
	b.WriteString("## Your Tasks:\n")
	fmt.Fprintf(&b, "1. Identify which articles are most relevant to the topic %q\n", topic)
	fmt.Fprintf(&b, "2. Select up to %d most relevant, recent and informative articles in English\n", maxSelectedArticles)
	b.WriteString("3. Create a structured summary with an overall summary and per-article highlights\n")
	b.WriteString("4. Format your response as structured data that I can parse\n\n")
	b.WriteString("## Articles:\n")

	for i, article := range articles {
		content := "No content available"
		if i < len(contents) && strings.TrimSpace(contents[i]) != "" {
			content = limitText(contents[i], maxPromptContentChars)
		}
		fmt.Fprintf(&b, "\n----- Article %d -----\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", article.Title)
		fmt.Fprintf(&b, "Source: %s\n", article.Source)
		fmt.Fprintf(&b, "URL: %s\n", article.Link)
		if article.Published != "" {
			fmt.Fprintf(&b, "Published: %s\n", article.Published)
		}
		fmt.Fprintf(&b, "Snippet: %s\n\nContent:\n%s\n\n----------------------\n", article.Snippet, content)
	}

	b.WriteString(`
## Response Format:
Provide your response in the following structured format:

<selected_articles>
List the IDs of the relevant articles you selected, in order of relevance.
Example: [3, 7, 2, 9, 1]
</selected_articles>

<overall_summary>
A 3-4 sentence high-level summary explaining the latest news on this topic.
</overall_summary>

<article_highlights>
For each selected article provide the title, the source, the URL, and a
4-5 sentence detailed summary of its key points. Include a line of the
form "**Published:** <timestamp>" using the article's Published value.
Format this as a numbered list with clear headings for each article.
</article_highlights>
`)
	return b.String()
}

var (
	selectedSectionRe   = regexp.MustCompile(`(?s)<selected_articles>(.*?)</selected_articles>`)
	summarySectionRe    = regexp.MustCompile(`(?s)<overall_summary>(.*?)</overall_summary>`)
	highlightsSectionRe = regexp.MustCompile(`(?s)<article_highlights>(.*?)</article_highlights>`)
	articleIDRe         = regexp.MustCompile(`\d+`)
)

func parseDigestOutput(raw string) (selected []int, summary, highlights string) {
	if m := selectedSectionRe.FindStringSubmatch(raw); m != nil {
		for _, tok := range articleIDRe.FindAllString(m[1], -1) {
			if id, err := strconv.Atoi(tok); err == nil {
				selected = append(selected, id)
			}
		}
	}
	if m := summarySectionRe.FindStringSubmatch(raw); m != nil {
		summary = strings.TrimSpace(m[1])
	}
	if m := highlightsSectionRe.FindStringSubmatch(raw); m != nil {
		highlights = strings.TrimSpace(m[1])
	}
	return selected, summary, highlights
}

func (s *GenerateService) mockDigest(topic string, articles []digest.Article) GeneratedDigest {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	count := len(articles)
	if count > maxSelectedArticles {
		count = maxSelectedArticles
	}
	selected := make([]int, count)
	for i := range selected {
		selected[i] = i + 1
	}

	sources := make([]string, 0, 3)
	for _, article := range articles {
		if len(sources) == 3 {
			break
		}
		if article.Source != "" {
			sources = append(sources, article.Source)
		}
	}
	if len(sources) == 0 {
		sources = []string{"various sources"}
	}

	summary := fmt.Sprintf(
		"As of %s, the latest news on %s indicates significant developments across several areas. "+
			"Recent reports from %s highlight important trends and updates that are shaping this field. "+
			"The most relevant information comes from articles covering different aspects of %s, "+
			"providing a comprehensive overview of the current situation.",
		now().Format("January 2, 2006"), topic, strings.Join(sources, ", "), topic)

	var b strings.Builder
	fmt.Fprintf(&b, "# Top Articles on %s\n\n", strings.ToUpper(topic))
	for i := 0; i < count; i++ {
		article := articles[i]
		title := article.Title
		if title == "" {
			title = fmt.Sprintf("Article %d", i+1)
		}
		source := article.Source
		if source == "" {
			source = "Unknown source"
		}
		link := article.Link
		if link == "" {
			link = "#"
		}
		snippet := article.Snippet
		if snippet == "" {
			snippet = "No preview available"
		}

		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, title)
		fmt.Fprintf(&b, "**Source:** %s\n\n", source)
		fmt.Fprintf(&b, "**Published:** %s\n\n", isoPublished(article.Published, now()))
		fmt.Fprintf(&b, "**URL:** [%s](%s)\n\n", link, link)
		fmt.Fprintf(&b, "**Summary:** %s\n\n", snippet)
		if i < count-1 {
			b.WriteString("---\n\n")
		}
	}

	return GeneratedDigest{
		Topic:             topic,
		Articles:          articles,
		SelectedArticles:  selected,
		OverallSummary:    summary,
		ArticleHighlights: b.String(),
		Mock:              true,
	}
}

// isoPublished normalizes a published value to RFC3339 UTC with a Z
// suffix, substituting now when the value is missing or unparseable.
func isoPublished(published string, now time.Time) string {
	published = strings.TrimSpace(published)
	if published == "" {
		return now.UTC().Format(time.RFC3339)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, published); err == nil {
			return ts.UTC().Format(time.RFC3339)
		}
	}
	if !strings.ContainsAny(published, "Z+") {
		return published + "Z"
	}
	return published
}

func limitText(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
