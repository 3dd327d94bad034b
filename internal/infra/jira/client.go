// Package jira implements the issue tracker port on top of the Jira
// REST API v2.
package jira

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jiralib "github.com/andygrunwald/go-jira"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/retry"
)

// searchFields are the only issue fields a run ever reads.
var searchFields = []string{"summary", "status", "issuetype", "reporter", "assignee", "labels", "updated"}

// Ensure Client implements domain.IssueTracker.
var _ domain.IssueTracker = (*Client)(nil)

// Client adapts go-jira to the IssueTracker port.
type Client struct {
	api     *jiralib.Client
	baseURL string
}

// NewClient creates a Client with basic (username + API token) auth.
func NewClient(cfg domain.JiraConfig) (*Client, error) {
	tp := jiralib.BasicAuthTransport{
		Username: cfg.Username,
		Password: cfg.Token,
	}
	api, err := jiralib.NewClient(tp.Client(), cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create jira client: %w", err)
	}
	return &Client{api: api, baseURL: cfg.BaseURL}, nil
}

// SearchIssues runs a JQL query and returns at most maxResults issues.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) ([]domain.Issue, error) {
	var raw []jiralib.Issue
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		var resp *jiralib.Response
		var callErr error
		raw, resp, callErr = c.api.Issue.SearchWithContext(ctx, jql, &jiralib.SearchOptions{
			MaxResults: maxResults,
			Fields:     searchFields,
		})
		return mapResponse(resp, callErr)
	})
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	issues := make([]domain.Issue, 0, len(raw))
	for i := range raw {
		issues = append(issues, c.convertIssue(&raw[i]))
	}
	return issues, nil
}

// AddComment adds a comment to an issue.
func (c *Client) AddComment(ctx context.Context, key, body string) error {
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		_, resp, callErr := c.api.Issue.AddCommentWithContext(ctx, key, &jiralib.Comment{Body: body})
		return mapResponse(resp, callErr)
	})
	if err != nil {
		return fmt.Errorf("add comment to %s: %w", key, err)
	}
	return nil
}

// AddLabel adds a label to an issue.
func (c *Client) AddLabel(ctx context.Context, key, label string) error {
	data := map[string]interface{}{
		"update": map[string]interface{}{
			"labels": []map[string]interface{}{
				{"add": label},
			},
		},
	}
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		resp, callErr := c.api.Issue.UpdateIssueWithContext(ctx, key, data)
		return mapResponse(resp, callErr)
	})
	if err != nil {
		return fmt.Errorf("add label to %s: %w", key, err)
	}
	return nil
}

// convertIssue converts a Jira issue to the domain model.
func (c *Client) convertIssue(issue *jiralib.Issue) domain.Issue {
	result := domain.Issue{
		Key: issue.Key,
		URL: c.baseURL + "/browse/" + issue.Key,
	}
	if issue.Fields == nil {
		return result
	}

	result.Summary = issue.Fields.Summary
	result.Type = issue.Fields.Type.Name
	result.Labels = issue.Fields.Labels
	result.UpdatedAt = time.Time(issue.Fields.Updated)
	if issue.Fields.Status != nil {
		result.Status = issue.Fields.Status.Name
		result.Done = issue.Fields.Status.StatusCategory.Key == "done"
	}
	if issue.Fields.Reporter != nil {
		result.Reporter = issue.Fields.Reporter.DisplayName
	}
	if issue.Fields.Assignee != nil {
		result.Assignee = issue.Fields.Assignee.DisplayName
	}
	return result
}

// mapResponse wraps a Jira API error with the matching domain sentinel.
func mapResponse(resp *jiralib.Response, err error) error {
	if err == nil {
		return nil
	}
	if resp == nil {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: jira returned %d", domain.ErrAuthentication, resp.StatusCode)
	case http.StatusNotFound:
		return fmt.Errorf("%w: jira returned 404", domain.ErrNotFound)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: jira returned 429", domain.ErrRateLimited)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: jira returned %d", domain.ErrTransient, resp.StatusCode)
	}
	return err
}
