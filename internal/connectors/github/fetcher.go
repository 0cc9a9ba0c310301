package github

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// repoPathPattern matches /owner/repo and /owner/repo/blob/ref/path.
// Other GitHub pages (trees, issues, profiles) deliberately fall
// through to a plain HTTP fetch.
var repoPathPattern = regexp.MustCompile(`^/([^/]+)/([^/]+?)(?:\.git)?(?:/blob/([^/]+)/(.+))?$`)

// repoRef identifies repository content named by a GitHub URL. An
// empty Path means the repository itself, served by its README.
type repoRef struct {
	Owner string
	Repo  string
	Ref   string
	Path  string
}

// Fetcher retrieves GitHub repository content through the API
// instead of scraping the HTML pages.
type Fetcher struct {
	client *Client
}

// NewFetcher creates a fetcher backed by the given API client.
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

// Matches reports whether the URL names GitHub repository content
// this fetcher can serve. A nil fetcher matches nothing.
func (f *Fetcher) Matches(rawURL string) bool {
	if f == nil {
		return false
	}
	_, ok := parseRepoURL(rawURL)
	return ok
}

// Fetch returns the content and MIME type for a repository URL. Bare
// repository URLs resolve to the README.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, string, error) {
	ref, ok := parseRepoURL(rawURL)
	if !ok {
		return "", "", fmt.Errorf("%w: not a GitHub repository URL: %s", domain.ErrInvalidInput, rawURL)
	}

	if ref.Path == "" {
		content, err := f.client.Readme(ctx, ref.Owner, ref.Repo)
		if err != nil {
			return "", "", err
		}
		return content, "text/markdown", nil
	}

	content, err := f.client.FileContent(ctx, ref.Owner, ref.Repo, ref.Path, ref.Ref)
	if err != nil {
		return "", "", err
	}
	return content, contentTypeForPath(ref.Path), nil
}

// Title derives a display title from a repository URL.
func (f *Fetcher) Title(rawURL string) string {
	ref, ok := parseRepoURL(rawURL)
	if !ok {
		return rawURL
	}
	if ref.Path == "" {
		return ref.Owner + "/" + ref.Repo
	}
	return fmt.Sprintf("%s/%s: %s", ref.Owner, ref.Repo, ref.Path)
}

func parseRepoURL(rawURL string) (repoRef, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return repoRef{}, false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "github.com" {
		return repoRef{}, false
	}

	m := repoPathPattern.FindStringSubmatch(strings.TrimSuffix(u.Path, "/"))
	if m == nil {
		return repoRef{}, false
	}
	return repoRef{Owner: m[1], Repo: m[2], Ref: m[3], Path: m[4]}, true
}

func contentTypeForPath(path string) string {
	path = strings.ToLower(path)
	switch {
	case strings.HasSuffix(path, ".md"), strings.HasSuffix(path, ".markdown"):
		return "text/markdown"
	case strings.HasSuffix(path, ".html"), strings.HasSuffix(path, ".htm"):
		return "text/html"
	default:
		return "text/plain"
	}
}
