package github

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v60/github"
)

// API is the capability surface the pipeline needs from GitHub. Every
// call is authenticated with a token scoped to the given installation.
// Stages depend on narrower views of this interface; Client implements
// all of it.
type API interface {
	CreateComment(ctx context.Context, owner, repo string, number int, body string, installationID int64) (*gh.IssueComment, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int, installationID int64) (*gh.PullRequest, error)
	GetPullRequestBody(ctx context.Context, owner, repo string, number int, installationID int64) (title, body string, err error)
	GetPullRequestDiff(ctx context.Context, owner, repo string, number int, installationID int64) (string, error)
	GetCombinedPRContent(ctx context.Context, owner, repo string, number int, installationID int64) (string, error)
	ClosePullRequest(ctx context.Context, owner, repo string, number int, installationID int64) (*gh.PullRequest, error)
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string, installationID int64) ([]*gh.Label, error)
	RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string, installationID int64) (*gh.PullRequest, error)
}

// Client implements API using GitHub App installation tokens. One
// go-github client is cached per installation; its ghinstallation
// transport holds the installation token until the token's own expiry,
// so repeated calls do not re-exchange the signed App assertion.
type Client struct {
	appID      int64
	privateKey []byte
	baseURL    string

	mu      sync.Mutex
	clients map[int64]*gh.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL (GHE, tests).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// New creates a client for the given App identity.
func New(appID int64, privateKey []byte, opts ...Option) *Client {
	c := &Client{
		appID:      appID,
		privateKey: privateKey,
		clients:    make(map[int64]*gh.Client),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// client returns the cached installation-scoped client, minting the
// transport on first use.
func (c *Client) client(installationID int64) (*gh.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.clients[installationID]; ok {
		return cached, nil
	}

	itr, err := ghinstallation.New(http.DefaultTransport, c.appID, installationID, c.privateKey)
	if err != nil {
		return nil, fmt.Errorf("creating installation transport: %w", err)
	}

	client := gh.NewClient(&http.Client{Transport: itr})
	if c.baseURL != "" {
		itr.BaseURL = c.baseURL
		client.BaseURL, err = client.BaseURL.Parse(c.baseURL + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing base URL: %w", err)
		}
	}

	c.clients[installationID] = client
	return client, nil
}

// CreateComment posts body as an issue comment on the pull request.
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string, installationID int64) (*gh.IssueComment, error) {
	client, err := c.client(installationID)
	if err != nil {
		return nil, err
	}
	comment, _, err := client.Issues.CreateComment(ctx, owner, repo, number, &gh.IssueComment{
		Body: gh.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// GetPullRequest fetches a pull request by number.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int, installationID int64) (*gh.PullRequest, error) {
	client, err := c.client(installationID)
	if err != nil {
		return nil, err
	}
	pr, _, err := client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request: %w", err)
	}
	return pr, nil
}

// GetPullRequestBody returns the PR title and body. A null or omitted
// body comes back as "".
func (c *Client) GetPullRequestBody(ctx context.Context, owner, repo string, number int, installationID int64) (string, string, error) {
	pr, err := c.GetPullRequest(ctx, owner, repo, number, installationID)
	if err != nil {
		return "", "", err
	}
	return pr.GetTitle(), pr.GetBody(), nil
}

// GetPullRequestDiff fetches the unified diff using the diff media type.
func (c *Client) GetPullRequestDiff(ctx context.Context, owner, repo string, number int, installationID int64) (string, error) {
	client, err := c.client(installationID)
	if err != nil {
		return "", err
	}
	diff, _, err := client.PullRequests.GetRaw(ctx, owner, repo, number, gh.RawOptions{Type: gh.Diff})
	if err != nil {
		return "", fmt.Errorf("fetching diff: %w", err)
	}
	return diff, nil
}

// GetCombinedPRContent renders the PR's title, body, and diff as one
// markdown block, ready to drop into a prompt.
func (c *Client) GetCombinedPRContent(ctx context.Context, owner, repo string, number int, installationID int64) (string, error) {
	title, body, err := c.GetPullRequestBody(ctx, owner, repo, number, installationID)
	if err != nil {
		return "", err
	}
	diff, err := c.GetPullRequestDiff(ctx, owner, repo, number, installationID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("### PR Title:\n%s\n\n### PR Body:\n%s\n\n### PR Diff:\n%s", title, body, diff), nil
}

// ClosePullRequest sets the pull request state to closed.
func (c *Client) ClosePullRequest(ctx context.Context, owner, repo string, number int, installationID int64) (*gh.PullRequest, error) {
	client, err := c.client(installationID)
	if err != nil {
		return nil, err
	}
	pr, _, err := client.PullRequests.Edit(ctx, owner, repo, number, &gh.PullRequest{
		State: gh.String("closed"),
	})
	if err != nil {
		return nil, fmt.Errorf("closing pull request: %w", err)
	}
	return pr, nil
}

// AddLabels attaches labels to the pull request.
func (c *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string, installationID int64) ([]*gh.Label, error) {
	client, err := c.client(installationID)
	if err != nil {
		return nil, err
	}
	added, _, err := client.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
	if err != nil {
		return nil, fmt.Errorf("adding labels: %w", err)
	}
	return added, nil
}

// RequestReviewers asks the given users to review the pull request.
func (c *Client) RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string, installationID int64) (*gh.PullRequest, error) {
	client, err := c.client(installationID)
	if err != nil {
		return nil, err
	}
	pr, _, err := client.PullRequests.RequestReviewers(ctx, owner, repo, number, gh.ReviewersRequest{
		Reviewers: reviewers,
	})
	if err != nil {
		return nil, fmt.Errorf("requesting reviewers: %w", err)
	}
	return pr, nil
}
