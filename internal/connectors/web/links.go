package web

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

var (
	anchorPattern = regexp.MustCompile(`(?is)<a\s[^>]*href\s*=\s*["']([^"']+)["'][^>]*>(.*?)</a>`)
	innerTags     = regexp.MustCompile(`<[^>]+>`)
)

// extractLinks returns the page's anchors in document order with
// targets resolved against the page URL. Script, mail, and
// fragment-only targets are skipped.
func extractLinks(body, pageURL string) []domain.Link {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var links []domain.Link
	for _, m := range anchorPattern.FindAllStringSubmatch(body, -1) {
		href := strings.TrimSpace(m[1])
		if skipHref(href) {
			continue
		}

		if base != nil {
			ref, err := url.Parse(href)
			if err != nil {
				continue
			}
			href = base.ResolveReference(ref).String()
		}

		text := html.UnescapeString(innerTags.ReplaceAllString(m[2], " "))
		links = append(links, domain.Link{
			Text: strings.Join(strings.Fields(text), " "),
			HRef: href,
		})
	}
	return links
}

func skipHref(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return true
	}
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}
