package presenter

import "github.com/takumin/newsbrief/internal/domain/digest"

// The four fixed user-facing status lines. Client and application
// failures share the generic fallback.
const (
	StatusTimeout = "The request timed out. Please try a more specific topic."
	StatusNetwork = "Network error. Check your connection and try again."
	StatusServer  = "The digest service had a problem. Please try again later."
	StatusGeneric = "Could not generate a digest. Please try again."
)

// UIState is everything the rendering layer needs after a submission
// resolves. It is rebuilt wholesale from each result; nothing carries
// over between submissions.
type UIState struct {
	Failed   bool
	Status   string // user-facing failure line, empty on success
	Articles []digest.Article
	Digest   *digest.AIDigest
	Pager    Pager
}

// Apply turns a resolved result into UI-facing state. On success the
// article order is preserved and the pager resets to page one; on
// failure the results view is suppressed entirely.
func Apply(result digest.Result) UIState {
	if !result.Succeeded() {
		return UIState{
			Failed: true,
			Status: failureStatus(result.Failure.Kind),
			Pager:  NewPager(0),
		}
	}
	return UIState{
		Articles: result.Articles,
		Digest:   result.Digest,
		Pager:    NewPager(len(result.Articles)),
	}
}

func failureStatus(kind digest.FailureKind) string {
	switch kind {
	case digest.FailureTimeout:
		return StatusTimeout
	case digest.FailureNetwork:
		return StatusNetwork
	case digest.FailureServer:
		return StatusServer
	default:
		return StatusGeneric
	}
}

// ShowResults reports whether the article list should be visible at all.
func (s UIState) ShowResults() bool {
	return !s.Failed && len(s.Articles) > 0
}

// VisibleArticles returns the slice of articles on the current page.
func (s UIState) VisibleArticles() []digest.Article {
	start, end := s.Pager.Bounds()
	return s.Articles[start:end]
}
