package core

import (
	"context"
	"net/http"

	"github.com/google/go-github/v82/github"
)

// GitHubChecker answers repository existence lookups through the public
// GitHub API without authentication. Private repositories report as absent,
// which is why a miss is only ever a warning upstream.
type GitHubChecker struct {
	client *github.Client
}

// NewGitHubChecker creates an anonymous GitHub API client.
func NewGitHubChecker() *GitHubChecker {
	return &GitHubChecker{client: github.NewClient(nil)}
}

func (c *GitHubChecker) Exists(ctx context.Context, owner, name string) (bool, error) {
	_, resp, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
