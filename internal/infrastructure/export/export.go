// Package export writes digests to standalone HTML files.
package export

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/takumin/newsbrief/internal/presentation/render"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; font-family: Georgia, serif; line-height: 1.6; color: #222; }
h1, h2 { line-height: 1.25; }
a { color: #c2458c; }
hr { border: none; border-top: 1px solid #ddd; margin: 1.5rem 0; }
</style>
</head>
<body>
%s
</body>
</html>
`

// Exporter renders digest markdown to HTML files in a target directory.
type Exporter struct {
	Dir string
	Now func() time.Time
}

// Export converts the digest markdown to HTML and writes it to a
// timestamped file named after the topic. Relative timestamps in
// Published markers are resolved before conversion. Returns the written
// path.
func (e Exporter) Export(topic, markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("nothing to export")
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	enhanced := render.EnhanceDigest(markdown, now())

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(enhanced), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	title := strings.TrimSpace(topic)
	if title == "" {
		title = "digest"
	}
	name := fmt.Sprintf("%s-%s.html", slugify(title), now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	page := fmt.Sprintf(pageTemplate, html.EscapeString(title), buf.String())
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if s == "" {
		return "digest"
	}
	if len(s) > 48 {
		s = strings.Trim(s[:48], "-")
	}
	return s
}
