// Package github fetches repository content through the GitHub API,
// with dual-strategy rate limiting so bulk fetches stay inside the
// API quota.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

const clientTimeout = 30 * time.Second

// Client wraps the GitHub API client with rate limiting. An empty
// token yields an unauthenticated client, which GitHub caps at 60
// requests per hour.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClient creates a GitHub API client. The token may be empty.
func NewClient(ctx context.Context, token string) *Client {
	var hc *http.Client
	if token == "" {
		hc = &http.Client{Timeout: clientTimeout}
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
		hc.Timeout = clientTimeout
	}

	return &Client{
		gh:          gh.NewClient(hc),
		rateLimiter: NewRateLimiter(),
	}
}

// Readme returns the decoded README of a repository.
func (c *Client) Readme(ctx context.Context, owner, repo string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	readme, resp, err := c.gh.Repositories.GetReadme(ctx, owner, repo, nil)
	c.updateRateLimit(resp)
	if err != nil {
		return "", wrapError(err, fmt.Sprintf("%s/%s readme", owner, repo))
	}

	content, err := readme.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode readme content: %w", err)
	}
	return content, nil
}

// FileContent returns the decoded content of a file at a ref. An
// empty ref means the repository's default branch.
func (c *Client) FileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	var opts *gh.RepositoryContentGetOptions
	if ref != "" {
		opts = &gh.RepositoryContentGetOptions{Ref: ref}
	}

	file, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	c.updateRateLimit(resp)
	if err != nil {
		return "", wrapError(err, fmt.Sprintf("%s/%s/%s", owner, repo, path))
	}
	if file == nil {
		return "", fmt.Errorf("%w: %s/%s/%s is a directory", domain.ErrInvalidInput, owner, repo, path)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode file content: %w", err)
	}
	return content, nil
}

func (c *Client) updateRateLimit(resp *gh.Response) {
	if resp != nil {
		c.rateLimiter.UpdateFromResponse(resp.Response)
	}
}

// wrapError translates GitHub API failures into domain errors.
func wrapError(err error, subject string) error {
	var rle *gh.RateLimitError
	if errors.As(err, &rle) {
		return fmt.Errorf("%w: rate limited fetching %s (resets %s)",
			domain.ErrFetchFailed, subject, rle.Rate.Reset.Time.Format(time.RFC3339))
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		if ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, subject)
		}
		return fmt.Errorf("%w: %s: %s", domain.ErrFetchFailed, subject, ghErr.Message)
	}

	return fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, subject, err)
}
