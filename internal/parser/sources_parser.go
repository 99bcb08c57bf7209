package parser

import (
	"strings"
)

// UntitledSource is used when a source line has no title
const UntitledSource = "Untitled Source"

// Source is a reference returned alongside research results
type Source struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Publication string `json:"publication,omitempty"`
}

// ParseSources parses one source per line in the form
// "Title | URL | Publication". Lines with fewer than two fields are skipped.
func ParseSources(text string) []Source {
	sources := []Source{}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		src := Source{
			Title: parts[0],
			URL:   NormalizeURL(parts[1]),
		}
		if src.Title == "" {
			src.Title = UntitledSource
		}
		if len(parts) > 2 {
			src.Publication = parts[2]
		}
		sources = append(sources, src)
	}
	return sources
}

// NormalizeURL adds an https:// scheme to bare URLs
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}
