// Package digest defines the core data model for topic digest requests.
package digest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Request is one topic submission sent to the digest API.
// It is created per submission and discarded once the call resolves.
type Request struct {
	Topic            string `json:"topic"`
	GenerateAIDigest bool   `json:"generate_ai_digest"`
}

// Validate reports whether the request can be submitted at all.
// Validation failures are not retried.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("topic is empty")
	}
	return nil
}

// Article is one news article as received from the server.
// Order of articles is relevance order and is never reshuffled.
type Article struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source,omitempty"`
	Published string `json:"published,omitempty"`
	Snippet   string `json:"snippet,omitempty"`
}

// Shape identifies which AI digest variant a response carries.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeStructured
	ShapePlain
)

// AIDigest is the AI-generated portion of a digest response, resolved
// into exactly one shape at ingestion. A structured digest carries an
// overall summary and/or markdown article highlights; a plain digest is
// a single markdown string.
type AIDigest struct {
	Shape             Shape
	OverallSummary    string
	ArticleHighlights string
	Plain             string
}

// FailureKind classifies why a submission did not produce a digest.
type FailureKind int

const (
	FailureTimeout FailureKind = iota + 1
	FailureNetwork
	FailureServer
	FailureClient
	FailureApplication
)

func (k FailureKind) String() string {
	switch k {
	case FailureTimeout:
		return "timeout"
	case FailureNetwork:
		return "network"
	case FailureServer:
		return "server"
	case FailureClient:
		return "client"
	case FailureApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Failure describes a failed submission.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Result is the single outcome of one submission: either a successful
// payload or a classified failure, never both.
type Result struct {
	Articles []Article
	Digest   *AIDigest // nil when the response carried no AI digest
	Failure  *Failure  // nil on success
}

// Succeeded reports whether the submission produced a digest payload.
func (r Result) Succeeded() bool {
	return r.Failure == nil
}

// Fail builds a failure result.
func Fail(kind FailureKind, message string) Result {
	return Result{Failure: &Failure{Kind: kind, Message: message}}
}

// Statuses the server may report on a semantically valid response.
const (
	StatusGenerated = "digest_generated"
	StatusSent      = "digest_sent"
	StatusReceived  = "received"
)

func knownStatus(s string) bool {
	switch s {
	case StatusGenerated, StatusSent, StatusReceived:
		return true
	}
	return false
}

// wirePayload mirrors the response body of POST /api/digest. Articles is
// kept raw so a malformed article list degrades to an empty one instead
// of failing the whole response.
type wirePayload struct {
	Status   string          `json:"status"`
	Articles json.RawMessage `json:"articles"`
	AIDigest *wireAIDigest   `json:"ai_digest"`
	Digest   string          `json:"digest"`
	Error    string          `json:"error"`
}

type wireAIDigest struct {
	OverallSummary    string `json:"overall_summary"`
	ArticleHighlights string `json:"article_highlights"`
	Digest            string `json:"digest"`
}

// ParsePayload turns a 2xx response body into a Result. A body that does
// not parse, or whose status is not one of the known-good values, is an
// application-level failure carrying the server-supplied message when one
// is present.
func ParsePayload(body []byte) Result {
	var payload wirePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Fail(FailureApplication, "invalid response payload")
	}

	if !knownStatus(payload.Status) {
		message := strings.TrimSpace(payload.Error)
		if message == "" {
			message = fmt.Sprintf("unexpected response status %q", payload.Status)
		}
		return Fail(FailureApplication, message)
	}

	return Result{
		Articles: parseArticles(payload.Articles),
		Digest:   resolveDigest(payload),
	}
}

func parseArticles(raw json.RawMessage) []Article {
	if len(raw) == 0 {
		return nil
	}
	var articles []Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil
	}
	return articles
}

// resolveDigest picks the digest shape once at ingestion. Structured wins
// when the response carries a summary or highlights; a plain digest string
// may appear either at the top level or nested under ai_digest.
func resolveDigest(payload wirePayload) *AIDigest {
	if payload.AIDigest != nil {
		summary := strings.TrimSpace(payload.AIDigest.OverallSummary)
		highlights := strings.TrimSpace(payload.AIDigest.ArticleHighlights)
		if summary != "" || highlights != "" {
			return &AIDigest{
				Shape:             ShapeStructured,
				OverallSummary:    summary,
				ArticleHighlights: highlights,
			}
		}
		if plain := strings.TrimSpace(payload.AIDigest.Digest); plain != "" {
			return &AIDigest{Shape: ShapePlain, Plain: plain}
		}
	}
	if plain := strings.TrimSpace(payload.Digest); plain != "" {
		return &AIDigest{Shape: ShapePlain, Plain: plain}
	}
	return nil
}
