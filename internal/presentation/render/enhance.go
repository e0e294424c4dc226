package render

import (
	"regexp"
	"strings"
	"time"
)

// publishedMarker is the literal prefix the digest backend emits in front
// of article timestamps inside markdown highlights.
const publishedMarker = "**Published:**"

var (
	// 2025-04-03T12:00:00Z and friends, optionally date-only or zone-less.
	isoTimestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?)?(Z|[+-]\d{2}:?\d{2})?$`)
	// Apr 3, 2025 with an optional stray UTC offset glued on by the backend.
	humanDateRe = regexp.MustCompile(`^([A-Z][A-Za-z]+ \d{1,2}, \d{4})([+-]\d{2}:\d{2})?$`)
)

// segment is one tokenized slice of the digest markdown. Marker segments
// carry the raw value text following the Published prefix up to the end of
// its line; everything else passes through verbatim.
type segment struct {
	text   string
	marker bool
	value  string
}

// EnhanceDigest rewrites `**Published:** <value>` markers in a markdown
// highlights block: ISO-like timestamps become relative/absolute human
// dates, human-formatted dates lose any trailing UTC offset, and anything
// unrecognized is left exactly as written. Text outside markers is never
// touched, so input without markers passes through as the identity.
func EnhanceDigest(markdown string, now time.Time) string {
	var b strings.Builder
	for _, seg := range tokenize(markdown) {
		if !seg.marker {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(rewriteMarker(seg.value, now))
	}
	return b.String()
}

func tokenize(markdown string) []segment {
	var segs []segment
	rest := markdown
	for {
		i := strings.Index(rest, publishedMarker)
		if i < 0 {
			segs = append(segs, segment{text: rest})
			return segs
		}
		segs = append(segs, segment{text: rest[:i]})
		rest = rest[i+len(publishedMarker):]

		value := rest
		if end := strings.IndexByte(rest, '\n'); end >= 0 {
			value = rest[:end]
			rest = rest[end:]
		} else {
			rest = ""
		}
		segs = append(segs, segment{marker: true, value: value})
	}
}

// rewriteMarker re-emits one marker. raw is the text after the prefix,
// leading whitespace included, so an untouched marker reproduces its
// original bytes.
func rewriteMarker(raw string, now time.Time) string {
	value := strings.TrimSpace(raw)

	if m := humanDateRe.FindStringSubmatch(value); m != nil {
		return publishedMarker + " " + m[1]
	}

	if isoTimestampRe.MatchString(value) {
		if humanized := RelativeOrAbsolute(value, now); humanized != "" {
			return publishedMarker + " " + humanized
		}
	}

	return publishedMarker + raw
}
