// Package bitbucket implements the code host port on top of the
// Bitbucket Cloud 2.0 REST API.
package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/retry"
)

// pageLen is the page size requested from the API. One page of recent
// activity is enough for a run; the commands operate on a small window.
const pageLen = 50

// Ensure Client implements domain.CodeHost.
var _ domain.CodeHost = (*Client)(nil)

// Client is a thin authenticated Bitbucket Cloud API client.
type Client struct {
	httpClient *http.Client
	apiBase    string
	webBase    string
	workspace  string
	repository string
	token      string
}

// NewClient creates a Client with bearer token auth.
func NewClient(cfg domain.BitbucketConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiBase:    strings.TrimSuffix(cfg.APIBaseURL, "/"),
		webBase:    strings.TrimSuffix(cfg.WebBaseURL, "/"),
		workspace:  cfg.Workspace,
		repository: cfg.Repository,
		token:      cfg.Token,
	}
}

// Kind identifies the host.
func (c *Client) Kind() string { return "bitbucket" }

// pullRequest mirrors the fields we care about from the API response.
type pullRequest struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	State  string `json:"state"` // OPEN, MERGED, DECLINED, SUPERSEDED
	Source struct {
		Branch struct {
			Name string `json:"name"`
		} `json:"branch"`
	} `json:"source"`
	Destination struct {
		Branch struct {
			Name string `json:"name"`
		} `json:"branch"`
	} `json:"destination"`
	Links struct {
		HTML struct {
			Href string `json:"href"`
		} `json:"html"`
	} `json:"links"`
	UpdatedOn time.Time `json:"updated_on"`
}

// pipeline mirrors the fields we care about from the API response.
type pipeline struct {
	BuildNumber int `json:"build_number"`
	Target      struct {
		RefName string `json:"ref_name"`
	} `json:"target"`
}

// ListMergeRequests returns recent pull requests, newest first.
func (c *Client) ListMergeRequests(ctx context.Context) ([]domain.MergeRequest, error) {
	params := url.Values{}
	params.Set("sort", "-created_on")
	params.Set("pagelen", fmt.Sprint(pageLen))
	// All states; reconciliation needs merged and declined ones too.
	params.Add("state", "OPEN")
	params.Add("state", "MERGED")
	params.Add("state", "DECLINED")

	var raw []pullRequest
	if err := c.getValues(ctx, "pullrequests", params, &raw); err != nil {
		return nil, fmt.Errorf("list pull requests: %w", err)
	}

	mrs := make([]domain.MergeRequest, 0, len(raw))
	for _, pr := range raw {
		mrs = append(mrs, domain.MergeRequest{
			ID:           pr.ID,
			Title:        pr.Title,
			State:        convertState(pr.State),
			SourceBranch: pr.Source.Branch.Name,
			TargetBranch: pr.Destination.Branch.Name,
			URL:          pr.Links.HTML.Href,
			UpdatedAt:    pr.UpdatedOn,
		})
	}
	return mrs, nil
}

// ListPipelines returns recent CI pipelines, newest first.
func (c *Client) ListPipelines(ctx context.Context) ([]domain.Pipeline, error) {
	params := url.Values{}
	params.Set("sort", "-created_on")
	params.Set("pagelen", fmt.Sprint(pageLen))

	var raw []pipeline
	if err := c.getValues(ctx, "pipelines", params, &raw); err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}

	pipelines := make([]domain.Pipeline, 0, len(raw))
	for _, p := range raw {
		pipelines = append(pipelines, domain.Pipeline{
			BuildNumber: p.BuildNumber,
			Branch:      p.Target.RefName,
			URL:         fmt.Sprintf("%s/pipelines/results/%d", c.webBase, p.BuildNumber),
		})
	}
	return pipelines, nil
}

// getValues fetches one page of a paginated collection endpoint and
// decodes its "values" array into out.
func (c *Client) getValues(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s/repositories/%s/%s/%s/?%s",
		c.apiBase, c.workspace, c.repository, endpoint, params.Encode())

	return retry.Do(ctx, retry.DefaultBackoff, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrTransient, err)
		}
		defer resp.Body.Close()

		if err := mapStatus(resp.StatusCode); err != nil {
			return err
		}

		var page struct {
			Values json.RawMessage `json:"values"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
		return json.Unmarshal(page.Values, out)
	})
}

// mapStatus wraps an API status code with the matching domain sentinel.
func mapStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: bitbucket returned %d", domain.ErrAuthentication, code)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: bitbucket returned 404", domain.ErrNotFound)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: bitbucket returned 429", domain.ErrRateLimited)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: bitbucket returned %d", domain.ErrTransient, code)
	default:
		return fmt.Errorf("bitbucket returned unexpected status %d", code)
	}
}

// convertState maps Bitbucket PR states onto merge states.
func convertState(state string) domain.MergeState {
	switch state {
	case "OPEN":
		return domain.MergeStateOpen
	case "MERGED":
		return domain.MergeStateMerged
	default:
		// DECLINED and SUPERSEDED both mean the change was abandoned.
		return domain.MergeStateDeclined
	}
}
