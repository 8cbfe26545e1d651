// Package github fetches pull request metadata and diffs from the
// GitHub API so checks can run without a local checkout.
package github

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	github "github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"

	"github.com/prguard/prguard/internal/logger"
)

// PullRequest is the subset of PR metadata the checks need.
type PullRequest struct {
	Owner      string
	Repo       string
	Number     int
	Title      string
	Body       string
	HeadSHA    string
	BaseBranch string
	HeadBranch string
}

// Client wraps the GitHub API for fetching pull requests.
type Client struct {
	gh  *github.Client
	log *logger.Logger
}

// NewClient creates a client. An empty token gives unauthenticated
// access, which works for public repositories at a low rate limit.
func NewClient(ctx context.Context, token, baseURL string) (*Client, error) {
	gh := github.NewClient(nil)
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		gh = github.NewClient(oauth2.NewClient(ctx, src))
	}

	if baseURL != "" {
		enterprise, err := gh.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise endpoint: %w", err)
		}
		gh = enterprise
	}

	return &Client{
		gh:  gh,
		log: logger.Default().WithPrefix("GITHUB"),
	}, nil
}

// GetPullRequest fetches PR metadata.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request %s/%s#%d: %w", owner, repo, number, err)
	}

	c.log.Debug("fetched PR %s/%s#%d: %s", owner, repo, number, pr.GetTitle())

	return &PullRequest{
		Owner:      owner,
		Repo:       repo,
		Number:     number,
		Title:      pr.GetTitle(),
		Body:       pr.GetBody(),
		HeadSHA:    pr.GetHead().GetSHA(),
		BaseBranch: pr.GetBase().GetRef(),
		HeadBranch: pr.GetHead().GetRef(),
	}, nil
}

// GetDiff fetches the raw unified diff for a pull request.
func (c *Client) GetDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	diff, _, err := c.gh.PullRequests.GetRaw(ctx, owner, repo, number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", fmt.Errorf("fetching diff for %s/%s#%d: %w", owner, repo, number, err)
	}
	return diff, nil
}

// prRefPattern matches "owner/repo#123".
var prRefPattern = regexp.MustCompile(`^([\w.-]+)/([\w.-]+)#(\d+)$`)

// ParsePRRef parses an "owner/repo#number" reference.
func ParsePRRef(ref string) (owner, repo string, number int, err error) {
	m := prRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", "", 0, fmt.Errorf("invalid pull request reference %q, expected owner/repo#number", ref)
	}
	number, err = strconv.Atoi(m[3])
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid pull request number in %q: %w", ref, err)
	}
	return m[1], m[2], number, nil
}
