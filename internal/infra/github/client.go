// Package github implements the code host port on top of the GitHub
// API. Pipelines map to Actions workflow runs.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v66/github"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/retry"
)

// Ensure Client implements domain.CodeHost.
var _ domain.CodeHost = (*Client)(nil)

// Client adapts go-github to the CodeHost port.
type Client struct {
	api   *gh.Client
	owner string
	repo  string
}

// NewClient creates a Client authenticated with a personal access token.
func NewClient(cfg domain.GitHubConfig) *Client {
	api := gh.NewClient(nil)
	if cfg.Token != "" {
		api = api.WithAuthToken(cfg.Token)
	}
	return &Client{api: api, owner: cfg.Owner, repo: cfg.Repository}
}

// Kind identifies the host.
func (c *Client) Kind() string { return "github" }

// ListMergeRequests returns recent pull requests, newest first.
func (c *Client) ListMergeRequests(ctx context.Context) ([]domain.MergeRequest, error) {
	var raw []*gh.PullRequest
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		var callErr error
		raw, _, callErr = c.api.PullRequests.List(ctx, c.owner, c.repo, &gh.PullRequestListOptions{
			State:       "all",
			Sort:        "created",
			Direction:   "desc",
			ListOptions: gh.ListOptions{PerPage: 50},
		})
		return mapError(callErr)
	})
	if err != nil {
		return nil, fmt.Errorf("list pull requests: %w", err)
	}

	mrs := make([]domain.MergeRequest, 0, len(raw))
	for _, pr := range raw {
		mrs = append(mrs, domain.MergeRequest{
			ID:           pr.GetNumber(),
			Title:        pr.GetTitle(),
			State:        convertState(pr),
			SourceBranch: pr.GetHead().GetRef(),
			TargetBranch: pr.GetBase().GetRef(),
			URL:          pr.GetHTMLURL(),
			UpdatedAt:    pr.GetUpdatedAt().Time,
		})
	}
	return mrs, nil
}

// ListPipelines returns recent Actions workflow runs, newest first.
func (c *Client) ListPipelines(ctx context.Context) ([]domain.Pipeline, error) {
	var runs *gh.WorkflowRuns
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		var callErr error
		runs, _, callErr = c.api.Actions.ListRepositoryWorkflowRuns(ctx, c.owner, c.repo, &gh.ListWorkflowRunsOptions{
			ListOptions: gh.ListOptions{PerPage: 50},
		})
		return mapError(callErr)
	})
	if err != nil {
		return nil, fmt.Errorf("list workflow runs: %w", err)
	}

	pipelines := make([]domain.Pipeline, 0, len(runs.WorkflowRuns))
	for _, run := range runs.WorkflowRuns {
		pipelines = append(pipelines, domain.Pipeline{
			BuildNumber: run.GetRunNumber(),
			Branch:      run.GetHeadBranch(),
			URL:         run.GetHTMLURL(),
		})
	}
	return pipelines, nil
}

// convertState maps a pull request onto a merge state. The list
// endpoint does not populate Merged, so MergedAt decides.
func convertState(pr *gh.PullRequest) domain.MergeState {
	switch {
	case pr.MergedAt != nil:
		return domain.MergeStateMerged
	case pr.GetState() == "open":
		return domain.MergeStateOpen
	default:
		return domain.MergeStateDeclined
	}
}

// mapError wraps a GitHub API error with the matching domain sentinel.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: github returned %d", domain.ErrAuthentication, respErr.Response.StatusCode)
		case http.StatusNotFound:
			return fmt.Errorf("%w: github returned 404", domain.ErrNotFound)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: github returned 429", domain.ErrRateLimited)
		}
		if respErr.Response.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: github returned %d", domain.ErrTransient, respErr.Response.StatusCode)
		}
		return err
	}

	return fmt.Errorf("%w: %v", domain.ErrTransient, err)
}
